package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/rohits-web03/lumina/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// NoteRepository handles CRUD for notes and their tag links.
type NoteRepository struct {
	Owned[models.Note]
}

func newNoteRepository(db *gorm.DB) *NoteRepository {
	return &NoteRepository{Owned[models.Note]{
		db:         db,
		dateColumn: "created_at",
		searchCols: []string{"title", "content"},
		preload:    []string{"Tags"},
	}}
}

// ReplaceTags swaps the note's tag set. An empty set detaches every tag.
func (r *NoteRepository) ReplaceTags(ctx context.Context, note *models.Note, tags []models.Tag) error {
	assoc := r.db.WithContext(ctx).Model(note).Association("Tags")
	var err error
	if len(tags) == 0 {
		err = assoc.Clear()
	} else {
		err = assoc.Replace(tags)
	}
	if err != nil {
		return fmt.Errorf("replace note tags: %w", err)
	}
	note.Tags = tags
	return nil
}

// Delete detaches the note from its tags before removing it. Tags survive.
func (r *NoteRepository) Delete(ctx context.Context, userID, id uint) error {
	note, err := r.Get(ctx, userID, id)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Model(note).Association("Tags").Clear(); err != nil {
		return fmt.Errorf("detach note tags: %w", err)
	}
	return r.Owned.Delete(ctx, userID, id)
}

// DeleteAllFor detaches and removes every note owned by userID.
func (r *NoteRepository) DeleteAllFor(ctx context.Context, userID uint) error {
	owned := r.db.WithContext(ctx).Model(&models.Note{}).Select("id").Where("user_id = ?", userID)
	if err := r.db.WithContext(ctx).Exec("DELETE FROM note_tags WHERE note_id IN (?)", owned).Error; err != nil {
		return fmt.Errorf("detach note tags: %w", err)
	}
	return r.Owned.DeleteAllFor(ctx, userID)
}

// TagRepository manages the shared tag namespace.
type TagRepository struct {
	db *gorm.DB
}

func (r *TagRepository) FindByName(ctx context.Context, name string) (*models.Tag, error) {
	var tag models.Tag
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&tag).Error; err != nil {
		return nil, translate(err)
	}
	return &tag, nil
}

// GetOrCreate returns the tag with the given normalised name, inserting it
// when absent. A concurrent insert of the same name is absorbed by the
// unique index and the row is looked up again.
func (r *TagRepository) GetOrCreate(ctx context.Context, name string) (*models.Tag, error) {
	tag, err := r.FindByName(ctx, name)
	switch {
	case err == nil:
		return tag, nil
	case !errors.Is(err, ErrNotFound):
		return nil, fmt.Errorf("find tag: %w", err)
	}

	err = r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
		Create(&models.Tag{Name: name}).Error
	if err != nil {
		return nil, fmt.Errorf("create tag: %w", translate(err))
	}

	tag, err = r.FindByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("reload tag: %w", err)
	}
	return tag, nil
}

func (r *TagRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Tag{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
