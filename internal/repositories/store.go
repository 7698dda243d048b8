package repositories

import (
	"context"

	"gorm.io/gorm"
)

// Store groups the repositories over one gorm handle, which may be a transaction.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Transaction runs fn against a Store bound to a single transaction.
// Every write made through tx commits together or not at all.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

func (s *Store) Users() *UserRepository    { return &UserRepository{db: s.db} }
func (s *Store) Todos() *TodoRepository    { return newTodoRepository(s.db) }
func (s *Store) Diaries() *DiaryRepository { return newDiaryRepository(s.db) }
func (s *Store) Notes() *NoteRepository    { return newNoteRepository(s.db) }
func (s *Store) Tags() *TagRepository      { return &TagRepository{db: s.db} }
func (s *Store) Goals() *GoalRepository    { return newGoalRepository(s.db) }
