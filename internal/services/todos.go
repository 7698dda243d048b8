package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rohits-web03/lumina/internal/models"
	"github.com/rohits-web03/lumina/internal/repositories"
)

// TodoInput represents data required to create or replace a todo.
type TodoInput struct {
	Title       string
	Description *string
	Priority    string
	// Date, when set, places the todo on that calendar day at the current time of day.
	Date *time.Time
}

// TodoService wraps todo-related business logic.
type TodoService struct {
	store    *repositories.Store
	clock    Clock
	rollover *RolloverEngine
}

func NewTodoService(store *repositories.Store, clock Clock, rollover *RolloverEngine) *TodoService {
	return &TodoService{store: store, clock: clock, rollover: rollover}
}

func (s *TodoService) List(ctx context.Context, user *models.User) ([]models.Todo, error) {
	return s.store.Todos().List(ctx, user.ID)
}

func (s *TodoService) Get(ctx context.Context, user *models.User, id uint) (*models.Todo, error) {
	return s.store.Todos().Get(ctx, user.ID, id)
}

func (s *TodoService) Search(ctx context.Context, user *models.User, query string) ([]models.Todo, error) {
	return s.store.Todos().Search(ctx, user.ID, query)
}

// OnDate lists todos entered on day. Reading today may first roll stale todos forward.
func (s *TodoService) OnDate(ctx context.Context, user *models.User, day time.Time) ([]models.Todo, error) {
	start := s.clock.Day(day)
	var todos []models.Todo
	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		if s.rollover.ShouldRollOnRead(user, day) {
			if _, err := s.rollover.Run(ctx, tx.Todos(), user.ID); err != nil {
				return err
			}
		}
		var err error
		todos, err = tx.Todos().Between(ctx, user.ID, start, start.AddDate(0, 0, 1))
		return err
	})
	if err != nil {
		return nil, err
	}
	return todos, nil
}

// Rollover moves the user's stale open todos to today and returns them.
func (s *TodoService) Rollover(ctx context.Context, user *models.User) ([]models.Todo, error) {
	var moved []models.Todo
	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		var err error
		moved, err = s.rollover.Run(ctx, tx.Todos(), user.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return moved, nil
}

func (s *TodoService) Create(ctx context.Context, user *models.User, input TodoInput) (*models.Todo, error) {
	if err := validateTodo(&input); err != nil {
		return nil, err
	}

	entry := s.clock.now()
	if input.Date != nil {
		entry = s.clock.onDay(s.clock.Day(*input.Date), entry)
	}

	todo := &models.Todo{
		UserID:        user.ID,
		Title:         input.Title,
		Description:   input.Description,
		Priority:      input.Priority,
		EntryDatetime: entry,
	}
	if err := s.store.Todos().Create(ctx, todo); err != nil {
		return nil, err
	}
	return todo, nil
}

// Update replaces title, description and priority and stamps the edit.
func (s *TodoService) Update(ctx context.Context, user *models.User, id uint, input TodoInput) (*models.Todo, error) {
	if err := validateTodo(&input); err != nil {
		return nil, err
	}
	return s.mutate(ctx, user, id, func(todo *models.Todo, now time.Time) {
		todo.Title = input.Title
		todo.Description = input.Description
		todo.Priority = input.Priority
		todo.MarkEdited(now)
	})
}

// SetStatus completes or reopens a todo, keeping completed_datetime in step.
func (s *TodoService) SetStatus(ctx context.Context, user *models.User, id uint, done bool) (*models.Todo, error) {
	return s.mutate(ctx, user, id, func(todo *models.Todo, now time.Time) {
		todo.SetStatus(done, now)
		todo.MarkEdited(now)
	})
}

func (s *TodoService) Delete(ctx context.Context, user *models.User, id uint) error {
	return s.store.Todos().Delete(ctx, user.ID, id)
}

func (s *TodoService) mutate(ctx context.Context, user *models.User, id uint, apply func(*models.Todo, time.Time)) (*models.Todo, error) {
	var todo *models.Todo
	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		var err error
		todo, err = tx.Todos().Get(ctx, user.ID, id)
		if err != nil {
			return err
		}
		apply(todo, s.clock.now())
		return tx.Todos().Save(ctx, todo)
	})
	if err != nil {
		return nil, err
	}
	return todo, nil
}

func validateTodo(input *TodoInput) error {
	input.Title = strings.TrimSpace(input.Title)
	if input.Title == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	if strings.TrimSpace(input.Priority) == "" {
		input.Priority = models.PriorityMedium
	}
	if err := checkLen("title", input.Title, models.MaxTitleLen); err != nil {
		return err
	}
	return checkLen("priority", input.Priority, models.MaxPriorityLen)
}
