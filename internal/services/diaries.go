package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rohits-web03/lumina/internal/models"
	"github.com/rohits-web03/lumina/internal/repositories"
)

type DiaryInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// DiaryService wraps diary entries.
type DiaryService struct {
	store *repositories.Store
	clock Clock
}

func NewDiaryService(store *repositories.Store, clock Clock) *DiaryService {
	return &DiaryService{store: store, clock: clock}
}

func (s *DiaryService) List(ctx context.Context, user *models.User) ([]models.Diary, error) {
	return s.store.Diaries().List(ctx, user.ID)
}

func (s *DiaryService) Get(ctx context.Context, user *models.User, id uint) (*models.Diary, error) {
	return s.store.Diaries().Get(ctx, user.ID, id)
}

func (s *DiaryService) Search(ctx context.Context, user *models.User, query string) ([]models.Diary, error) {
	return s.store.Diaries().Search(ctx, user.ID, query)
}

func (s *DiaryService) OnDate(ctx context.Context, user *models.User, day time.Time) ([]models.Diary, error) {
	start := s.clock.Day(day)
	return s.store.Diaries().Between(ctx, user.ID, start, start.AddDate(0, 0, 1))
}

func (s *DiaryService) Create(ctx context.Context, user *models.User, input DiaryInput) (*models.Diary, error) {
	if err := validateDiary(input); err != nil {
		return nil, err
	}
	diary := &models.Diary{
		UserID:        user.ID,
		Title:         input.Title,
		Content:       input.Content,
		EntryDatetime: s.clock.now(),
	}
	if err := s.store.Diaries().Create(ctx, diary); err != nil {
		return nil, err
	}
	return diary, nil
}

func (s *DiaryService) Update(ctx context.Context, user *models.User, id uint, input DiaryInput) (*models.Diary, error) {
	if err := validateDiary(input); err != nil {
		return nil, err
	}
	var diary *models.Diary
	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		var err error
		diary, err = tx.Diaries().Get(ctx, user.ID, id)
		if err != nil {
			return err
		}
		now := s.clock.now()
		diary.Title = input.Title
		diary.Content = input.Content
		diary.Edited = true
		diary.EditedDatetime = &now
		return tx.Diaries().Save(ctx, diary)
	})
	if err != nil {
		return nil, err
	}
	return diary, nil
}

func (s *DiaryService) Delete(ctx context.Context, user *models.User, id uint) error {
	return s.store.Diaries().Delete(ctx, user.ID, id)
}

func validateDiary(input DiaryInput) error {
	if strings.TrimSpace(input.Content) == "" {
		return fmt.Errorf("%w: content is required", ErrValidation)
	}
	return checkLen("title", input.Title, models.MaxTitleLen)
}
