package services

import (
	"context"
	"testing"
	"time"

	"github.com/rohits-web03/lumina/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTodoCreate(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	u := env.register(t, "alice")

	todo, err := env.todos.Create(ctx, u, TodoInput{Title: "  write report  "})
	require.NoError(t, err)
	assert.Equal(t, "write report", todo.Title)
	assert.Equal(t, models.PriorityMedium, todo.Priority)
	assert.True(t, todo.EntryDatetime.Equal(fixedNow))
	assert.False(t, todo.Status)
	assert.Nil(t, todo.CompletedDatetime)

	planned, err := env.todos.Create(ctx, u, TodoInput{
		Title:    "dentist",
		Priority: models.PriorityHigh,
		Date:     datePtr(time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)),
	})
	require.NoError(t, err)
	assert.True(t, planned.EntryDatetime.Equal(time.Date(2026, 10, 20, 14, 30, 0, 0, time.UTC)),
		"a dated todo keeps the current time of day")

	_, err = env.todos.Create(ctx, u, TodoInput{Title: " "})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestTodoStatusKeepsCompletionInStep(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	u := env.register(t, "bob")

	todo, err := env.todos.Create(ctx, u, TodoInput{Title: "ship"})
	require.NoError(t, err)

	done, err := env.todos.SetStatus(ctx, u, todo.ID, true)
	require.NoError(t, err)
	assert.True(t, done.Status)
	require.NotNil(t, done.CompletedDatetime)
	assert.True(t, done.CompletedDatetime.Equal(fixedNow))
	assert.True(t, done.Edited)

	reopened, err := env.todos.SetStatus(ctx, u, todo.ID, false)
	require.NoError(t, err)
	assert.False(t, reopened.Status)
	assert.Nil(t, reopened.CompletedDatetime)

	stored, err := env.todos.Get(ctx, u, todo.ID)
	require.NoError(t, err)
	assert.False(t, stored.Status)
	assert.Nil(t, stored.CompletedDatetime)
}

func TestTodoUpdateMarksEdited(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	u := env.register(t, "carol")

	todo, err := env.todos.Create(ctx, u, TodoInput{Title: "draft"})
	require.NoError(t, err)
	assert.False(t, todo.Edited)

	desc := "second pass"
	updated, err := env.todos.Update(ctx, u, todo.ID, TodoInput{Title: "final", Description: &desc, Priority: models.PriorityLow})
	require.NoError(t, err)
	assert.Equal(t, "final", updated.Title)
	require.NotNil(t, updated.Description)
	assert.Equal(t, desc, *updated.Description)
	assert.Equal(t, models.PriorityLow, updated.Priority)
	assert.True(t, updated.Edited)
	require.NotNil(t, updated.EditedDatetime)
	assert.True(t, updated.EntryDatetime.Equal(todo.EntryDatetime), "entry datetime is not touched by edits")
}

func TestRolloverMovesStaleOpenTodos(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	u := env.register(t, "dave")

	yesterday := fixedNow.AddDate(0, 0, -1)
	lastWeek := fixedNow.AddDate(0, 0, -7)

	a, err := env.todos.Create(ctx, u, TodoInput{Title: "a", Date: &yesterday})
	require.NoError(t, err)
	b, err := env.todos.Create(ctx, u, TodoInput{Title: "b", Date: &lastWeek})
	require.NoError(t, err)
	finished, err := env.todos.Create(ctx, u, TodoInput{Title: "done", Date: &yesterday})
	require.NoError(t, err)
	_, err = env.todos.SetStatus(ctx, u, finished.ID, true)
	require.NoError(t, err)
	future, err := env.todos.Create(ctx, u, TodoInput{Title: "later", Date: datePtr(fixedNow.AddDate(0, 0, 3))})
	require.NoError(t, err)

	moved, err := env.todos.Rollover(ctx, u)
	require.NoError(t, err)
	require.Len(t, moved, 2)

	ids := []uint{moved[0].ID, moved[1].ID}
	assert.ElementsMatch(t, []uint{a.ID, b.ID}, ids)
	for _, todo := range moved {
		assert.True(t, todo.EntryDatetime.Equal(time.Date(2026, 10, 16, 14, 30, 0, 0, time.UTC)))
		assert.True(t, todo.Edited)
		require.NotNil(t, todo.EditedDatetime)
		assert.True(t, todo.EditedDatetime.Equal(fixedNow))
	}

	again, err := env.todos.Rollover(ctx, u)
	require.NoError(t, err)
	assert.Empty(t, again, "rollover is idempotent within a day")

	stillDone, err := env.todos.Get(ctx, u, finished.ID)
	require.NoError(t, err)
	assert.True(t, stillDone.EntryDatetime.Equal(finished.EntryDatetime))

	stillFuture, err := env.todos.Get(ctx, u, future.ID)
	require.NoError(t, err)
	assert.True(t, stillFuture.EntryDatetime.Equal(future.EntryDatetime))
}

func TestRolloverOnRead(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	u := env.register(t, "erin")

	yesterday := fixedNow.AddDate(0, 0, -1)
	_, err := env.todos.Create(ctx, u, TodoInput{Title: "carry", Date: &yesterday})
	require.NoError(t, err)

	t.Run("disabled preference leaves todos in place", func(t *testing.T) {
		today, err := env.todos.OnDate(ctx, u, fixedNow)
		require.NoError(t, err)
		assert.Empty(t, today)
	})

	u, err = env.users.SetRollover(ctx, u, true)
	require.NoError(t, err)

	t.Run("past date read does not roll", func(t *testing.T) {
		past, err := env.todos.OnDate(ctx, u, yesterday)
		require.NoError(t, err)
		assert.Len(t, past, 1)
	})

	t.Run("today read rolls first", func(t *testing.T) {
		today, err := env.todos.OnDate(ctx, u, fixedNow)
		require.NoError(t, err)
		require.Len(t, today, 1)
		assert.Equal(t, "carry", today[0].Title)
		assert.True(t, today[0].Edited)

		past, err := env.todos.OnDate(ctx, u, yesterday)
		require.NoError(t, err)
		assert.Empty(t, past)
	})
}

func TestRolloverOnReadSwitchedOff(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.todos = NewTodoService(env.store, env.clock, NewRolloverEngine(env.clock, false))
	u := env.register(t, "fay")
	u, err := env.users.SetRollover(ctx, u, true)
	require.NoError(t, err)

	yesterday := fixedNow.AddDate(0, 0, -1)
	_, err = env.todos.Create(ctx, u, TodoInput{Title: "stay", Date: &yesterday})
	require.NoError(t, err)

	today, err := env.todos.OnDate(ctx, u, fixedNow)
	require.NoError(t, err)
	assert.Empty(t, today)

	moved, err := env.todos.Rollover(ctx, u)
	require.NoError(t, err)
	assert.Len(t, moved, 1, "explicit rollover still works")
}

func TestRolloverEligible(t *testing.T) {
	engine := NewRolloverEngine(Clock{Now: func() time.Time { return fixedNow }, Location: time.UTC}, true)

	cases := []struct {
		name string
		todo models.Todo
		want bool
	}{
		{"open yesterday", models.Todo{EntryDatetime: fixedNow.AddDate(0, 0, -1)}, true},
		{"open just before midnight", models.Todo{EntryDatetime: time.Date(2026, 10, 15, 23, 59, 59, 0, time.UTC)}, true},
		{"open earlier today", models.Todo{EntryDatetime: time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)}, false},
		{"completed yesterday", models.Todo{Status: true, EntryDatetime: fixedNow.AddDate(0, 0, -1)}, false},
		{"open tomorrow", models.Todo{EntryDatetime: fixedNow.AddDate(0, 0, 1)}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, engine.Eligible(tc.todo, fixedNow))
		})
	}
}

func TestTodosAreIsolatedPerUser(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	owner := env.register(t, "gus")
	other := env.register(t, "hal")

	todo, err := env.todos.Create(ctx, owner, TodoInput{Title: "private plan"})
	require.NoError(t, err)

	_, err = env.todos.Get(ctx, other, todo.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = env.todos.Update(ctx, other, todo.ID, TodoInput{Title: "hijack"})
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = env.todos.SetStatus(ctx, other, todo.ID, true)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, env.todos.Delete(ctx, other, todo.ID), ErrNotFound)

	found, err := env.todos.Search(ctx, other, "private")
	require.NoError(t, err)
	assert.Empty(t, found)

	found, err = env.todos.Search(ctx, owner, "PRIVATE")
	require.NoError(t, err)
	assert.Len(t, found, 1)

	require.NoError(t, env.todos.Delete(ctx, owner, todo.ID))
	_, err = env.todos.Get(ctx, owner, todo.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
