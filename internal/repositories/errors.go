package repositories

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	// ErrNotFound covers both missing rows and rows owned by someone else.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique constraint rejects a write.
	ErrDuplicate = errors.New("duplicate record")
	// ErrInvalid is returned when the store rejects a value, e.g. one too long for its column.
	ErrInvalid = errors.New("validation failed")
)

// SQLSTATE 22001 string_data_right_truncation. gorm's postgres dialector leaves it untranslated.
const pgValueTooLong = "22001"

func translate(err error) error {
	var pgErr *pgconn.PgError
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	case errors.As(err, &pgErr) && pgErr.Code == pgValueTooLong:
		return fmt.Errorf("%w: value too long", ErrInvalid)
	default:
		return err
	}
}
