package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rohits-web03/lumina/internal/models"
	"github.com/rohits-web03/lumina/internal/repositories"
)

// NormalizeTagName trims and lowercases a free-text tag.
func NormalizeTagName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// NormalizeTagNames normalises names, drops empty ones and keeps the first
// occurrence of each result in input order.
func NormalizeTagNames(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		clean := NormalizeTagName(name)
		if clean == "" {
			continue
		}
		if _, dup := seen[clean]; dup {
			continue
		}
		seen[clean] = struct{}{}
		out = append(out, clean)
	}
	return out
}

// ReconcileTags resolves names to shared tag rows, creating missing ones.
func ReconcileTags(ctx context.Context, tags *repositories.TagRepository, names []string) ([]models.Tag, error) {
	normalized := NormalizeTagNames(names)
	for _, name := range normalized {
		if err := checkLen("tag", name, models.MaxTagLen); err != nil {
			return nil, err
		}
	}
	resolved := make([]models.Tag, 0, len(normalized))
	for _, name := range normalized {
		tag, err := tags.GetOrCreate(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("tag %q: %w", name, err)
		}
		resolved = append(resolved, *tag)
	}
	return resolved, nil
}
