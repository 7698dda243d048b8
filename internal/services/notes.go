package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rohits-web03/lumina/internal/models"
	"github.com/rohits-web03/lumina/internal/repositories"
)

type NoteInput struct {
	Title      string
	Content    string
	IsPinned   bool
	IsArchived bool
	// Tags is nil when the caller did not send a tag list. On update nil
	// leaves tags alone and an empty slice clears them.
	Tags []string
}

// NoteService wraps notes and their shared tags.
type NoteService struct {
	store *repositories.Store
	clock Clock
}

func NewNoteService(store *repositories.Store, clock Clock) *NoteService {
	return &NoteService{store: store, clock: clock}
}

func (s *NoteService) List(ctx context.Context, user *models.User) ([]models.Note, error) {
	return s.store.Notes().List(ctx, user.ID)
}

func (s *NoteService) Get(ctx context.Context, user *models.User, id uint) (*models.Note, error) {
	return s.store.Notes().Get(ctx, user.ID, id)
}

func (s *NoteService) Search(ctx context.Context, user *models.User, query string) ([]models.Note, error) {
	return s.store.Notes().Search(ctx, user.ID, query)
}

func (s *NoteService) OnDate(ctx context.Context, user *models.User, day time.Time) ([]models.Note, error) {
	start := s.clock.Day(day)
	return s.store.Notes().Between(ctx, user.ID, start, start.AddDate(0, 0, 1))
}

func (s *NoteService) Create(ctx context.Context, user *models.User, input NoteInput) (*models.Note, error) {
	if err := validateNote(input); err != nil {
		return nil, err
	}
	var note *models.Note
	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		tags, err := ReconcileTags(ctx, tx.Tags(), input.Tags)
		if err != nil {
			return err
		}
		note = &models.Note{
			UserID:     user.ID,
			Title:      input.Title,
			Content:    input.Content,
			IsPinned:   input.IsPinned,
			IsArchived: input.IsArchived,
			CreatedAt:  s.clock.now(),
			Tags:       tags,
		}
		return tx.Notes().Create(ctx, note)
	})
	if err != nil {
		return nil, err
	}
	return note, nil
}

func (s *NoteService) Update(ctx context.Context, user *models.User, id uint, input NoteInput) (*models.Note, error) {
	if err := validateNote(input); err != nil {
		return nil, err
	}
	var note *models.Note
	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		var err error
		note, err = tx.Notes().Get(ctx, user.ID, id)
		if err != nil {
			return err
		}
		now := s.clock.now()
		note.Title = input.Title
		note.Content = input.Content
		note.IsPinned = input.IsPinned
		note.IsArchived = input.IsArchived
		note.EditedAt = &now
		if err := tx.Notes().Save(ctx, note); err != nil {
			return err
		}

		if input.Tags == nil {
			return nil
		}
		tags, err := ReconcileTags(ctx, tx.Tags(), input.Tags)
		if err != nil {
			return err
		}
		return tx.Notes().ReplaceTags(ctx, note, tags)
	})
	if err != nil {
		return nil, err
	}
	return note, nil
}

func (s *NoteService) Delete(ctx context.Context, user *models.User, id uint) error {
	return s.store.Transaction(ctx, func(tx *repositories.Store) error {
		return tx.Notes().Delete(ctx, user.ID, id)
	})
}

func validateNote(input NoteInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	return checkLen("title", input.Title, models.MaxTitleLen)
}
