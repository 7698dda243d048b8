package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rohits-web03/lumina/internal/models"
	"github.com/rohits-web03/lumina/internal/repositories"
)

// RolloverEngine advances open todos left on past days to today.
//
// A todo is eligible when it is open and its entry date is before today.
// Advancing keeps the original time of day and stamps the todo as edited, so
// a second run in the same instant finds nothing left to move.
type RolloverEngine struct {
	clock Clock
	// OnRead enables the rollover performed before a read of today's todos
	// for users who opted in. Explicit rollover is unaffected.
	OnRead bool
}

func NewRolloverEngine(clock Clock, onRead bool) *RolloverEngine {
	return &RolloverEngine{clock: clock, OnRead: onRead}
}

// Eligible reports whether todo would be moved by a rollover run at now.
func (e *RolloverEngine) Eligible(todo models.Todo, now time.Time) bool {
	return !todo.Status && todo.EntryDatetime.Before(e.clock.startOfDay(now))
}

// ShouldRollOnRead decides whether reading todos for day triggers a rollover for user.
func (e *RolloverEngine) ShouldRollOnRead(user *models.User, day time.Time) bool {
	return e.OnRead && user.Rollover && e.clock.Day(day).Equal(e.clock.today())
}

// Run moves every eligible todo of userID to today and returns the moved rows.
func (e *RolloverEngine) Run(ctx context.Context, todos *repositories.TodoRepository, userID uint) ([]models.Todo, error) {
	now := e.clock.now()
	today := e.clock.startOfDay(now)

	stale, err := todos.ListStale(ctx, userID, today)
	if err != nil {
		return nil, err
	}

	moved := make([]models.Todo, 0, len(stale))
	for _, todo := range stale {
		if !e.Eligible(todo, now) {
			continue
		}
		todo.EntryDatetime = e.clock.onDay(today, todo.EntryDatetime)
		todo.MarkEdited(now)
		if err := todos.Save(ctx, &todo); err != nil {
			return nil, fmt.Errorf("roll todo %d: %w", todo.ID, err)
		}
		moved = append(moved, todo)
	}
	return moved, nil
}
