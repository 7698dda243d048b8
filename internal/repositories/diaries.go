package repositories

import (
	"github.com/rohits-web03/lumina/internal/models"
	"gorm.io/gorm"
)

// DiaryRepository handles CRUD for diary entries.
type DiaryRepository struct {
	Owned[models.Diary]
}

func newDiaryRepository(db *gorm.DB) *DiaryRepository {
	return &DiaryRepository{Owned[models.Diary]{
		db:         db,
		dateColumn: "entry_datetime",
		searchCols: []string{"title", "content"},
	}}
}
