package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

// Owned is the data access path for user-owned rows. Every query it builds
// carries the user_id predicate; a row that fails it is reported as
// ErrNotFound, never as forbidden.
type Owned[T any] struct {
	db         *gorm.DB
	dateColumn string
	searchCols []string
	preload    []string
}

func (r Owned[T]) scoped(ctx context.Context, userID uint) *gorm.DB {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	for _, p := range r.preload {
		q = q.Preload(p)
	}
	return q
}

func (r Owned[T]) List(ctx context.Context, userID uint) ([]T, error) {
	rows := []T{}
	if err := r.scoped(ctx, userID).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list: %w", err)
	}
	return rows, nil
}

func (r Owned[T]) Get(ctx context.Context, userID, id uint) (*T, error) {
	var row T
	if err := r.scoped(ctx, userID).Where("id = ?", id).First(&row).Error; err != nil {
		return nil, translate(err)
	}
	return &row, nil
}

// Between returns rows whose date column falls in [from, to).
func (r Owned[T]) Between(ctx context.Context, userID uint, from, to time.Time) ([]T, error) {
	rows := []T{}
	err := r.scoped(ctx, userID).
		Where(r.dateColumn+" >= ? AND "+r.dateColumn+" < ?", from, to).
		Order(r.dateColumn + " ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list by date: %w", err)
	}
	return rows, nil
}

// Search does a case-insensitive substring match over the searchable columns.
func (r Owned[T]) Search(ctx context.Context, userID uint, query string) ([]T, error) {
	rows := []T{}
	pattern := "%" + escapeLike(strings.ToLower(query)) + "%"

	clauses := make([]string, 0, len(r.searchCols))
	args := make([]any, 0, len(r.searchCols))
	for _, col := range r.searchCols {
		clauses = append(clauses, "LOWER("+col+") LIKE ? ESCAPE '\\'")
		args = append(args, pattern)
	}

	err := r.scoped(ctx, userID).
		Where("("+strings.Join(clauses, " OR ")+")", args...).
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	return rows, nil
}

func (r Owned[T]) Create(ctx context.Context, row *T) error {
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return fmt.Errorf("create: %w", translate(err))
	}
	return nil
}

// Save writes back a row previously loaded through Get.
func (r Owned[T]) Save(ctx context.Context, row *T) error {
	q := r.db.WithContext(ctx)
	if len(r.preload) > 0 {
		q = q.Omit(r.preload...)
	}
	if err := q.Save(row).Error; err != nil {
		return fmt.Errorf("save: %w", translate(err))
	}
	return nil
}

func (r Owned[T]) Delete(ctx context.Context, userID, id uint) error {
	res := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, id).Delete(new(T))
	if res.Error != nil {
		return fmt.Errorf("delete: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteAllFor removes every row owned by userID.
func (r Owned[T]) DeleteAllFor(ctx context.Context, userID uint) error {
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(new(T)).Error; err != nil {
		return fmt.Errorf("delete all: %w", err)
	}
	return nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
