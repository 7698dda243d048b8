package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rohits-web03/lumina/internal/models"
	"github.com/rohits-web03/lumina/internal/repositories"
)

type GoalInput struct {
	Title       string
	Description string
	TargetDate  *time.Time
}

// GoalService wraps goals. Update is a full replacement of the editable fields.
type GoalService struct {
	store *repositories.Store
	clock Clock
}

func NewGoalService(store *repositories.Store, clock Clock) *GoalService {
	return &GoalService{store: store, clock: clock}
}

func (s *GoalService) List(ctx context.Context, user *models.User) ([]models.Goal, error) {
	return s.store.Goals().List(ctx, user.ID)
}

func (s *GoalService) Get(ctx context.Context, user *models.User, id uint) (*models.Goal, error) {
	return s.store.Goals().Get(ctx, user.ID, id)
}

func (s *GoalService) Search(ctx context.Context, user *models.User, query string) ([]models.Goal, error) {
	return s.store.Goals().Search(ctx, user.ID, query)
}

func (s *GoalService) OnDate(ctx context.Context, user *models.User, day time.Time) ([]models.Goal, error) {
	start := s.clock.Day(day)
	return s.store.Goals().Between(ctx, user.ID, start, start.AddDate(0, 0, 1))
}

func (s *GoalService) Create(ctx context.Context, user *models.User, input GoalInput) (*models.Goal, error) {
	if err := validateGoal(input); err != nil {
		return nil, err
	}
	goal := &models.Goal{
		UserID:      user.ID,
		Title:       input.Title,
		Description: input.Description,
		TargetDate:  input.TargetDate,
		CreatedAt:   s.clock.now(),
	}
	if err := s.store.Goals().Create(ctx, goal); err != nil {
		return nil, err
	}
	return goal, nil
}

// Update replaces title, description and target date; an omitted target date clears it.
func (s *GoalService) Update(ctx context.Context, user *models.User, id uint, input GoalInput) (*models.Goal, error) {
	if err := validateGoal(input); err != nil {
		return nil, err
	}
	return s.mutate(ctx, user, id, func(goal *models.Goal, now time.Time) {
		goal.Title = input.Title
		goal.Description = input.Description
		goal.TargetDate = input.TargetDate
		goal.UpdatedAt = &now
	})
}

func (s *GoalService) Complete(ctx context.Context, user *models.User, id uint) (*models.Goal, error) {
	return s.mutate(ctx, user, id, func(goal *models.Goal, now time.Time) {
		goal.Complete(now)
		goal.UpdatedAt = &now
	})
}

func (s *GoalService) Delete(ctx context.Context, user *models.User, id uint) error {
	return s.store.Goals().Delete(ctx, user.ID, id)
}

func (s *GoalService) mutate(ctx context.Context, user *models.User, id uint, apply func(*models.Goal, time.Time)) (*models.Goal, error) {
	var goal *models.Goal
	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		var err error
		goal, err = tx.Goals().Get(ctx, user.ID, id)
		if err != nil {
			return err
		}
		apply(goal, s.clock.now())
		return tx.Goals().Save(ctx, goal)
	})
	if err != nil {
		return nil, err
	}
	return goal, nil
}

func validateGoal(input GoalInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	return checkLen("title", input.Title, models.MaxTitleLen)
}
