package services

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/rohits-web03/lumina/internal/repositories"
)

var (
	// ErrNotFound hides whether a row is missing or owned by another user.
	ErrNotFound = repositories.ErrNotFound
	// ErrConflict reports a uniqueness clash such as a taken username.
	ErrConflict     = repositories.ErrDuplicate
	ErrUnauthorized = errors.New("unauthorized")
	// ErrValidation also covers values the store rejects as malformed.
	ErrValidation = repositories.ErrInvalid
	// ErrUpstream wraps failures of the outbound notification capability.
	ErrUpstream = errors.New("upstream failure")
)

// checkLen rejects values wider than their column. Widths count characters.
func checkLen(field, value string, limit int) error {
	if utf8.RuneCountInString(value) > limit {
		return fmt.Errorf("%w: %s must be at most %d characters", ErrValidation, field, limit)
	}
	return nil
}
