package repositories

import (
	"github.com/rohits-web03/lumina/internal/models"
	"gorm.io/gorm"
)

// GoalRepository handles CRUD for goals.
type GoalRepository struct {
	Owned[models.Goal]
}

func newGoalRepository(db *gorm.DB) *GoalRepository {
	return &GoalRepository{Owned[models.Goal]{
		db:         db,
		dateColumn: "created_at",
		searchCols: []string{"title", "description"},
	}}
}
