package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/rohits-web03/lumina/internal/models"
	"gorm.io/gorm"
)

// TodoRepository handles CRUD for todos.
type TodoRepository struct {
	Owned[models.Todo]
}

func newTodoRepository(db *gorm.DB) *TodoRepository {
	return &TodoRepository{Owned[models.Todo]{
		db:         db,
		dateColumn: "entry_datetime",
		searchCols: []string{"title", "description"},
	}}
}

// ListStale returns the user's open todos entered before cutoff.
func (r *TodoRepository) ListStale(ctx context.Context, userID uint, cutoff time.Time) ([]models.Todo, error) {
	var todos []models.Todo
	err := r.scoped(ctx, userID).
		Where("status = ? AND entry_datetime < ?", false, cutoff).
		Order("id ASC").
		Find(&todos).Error
	if err != nil {
		return nil, fmt.Errorf("list stale todos: %w", err)
	}
	return todos, nil
}

// CountOpen counts the user's incomplete todos.
func (r *TodoRepository) CountOpen(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Todo{}).
		Where("user_id = ? AND status = ?", userID, false).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count open todos: %w", err)
	}
	return count, nil
}
