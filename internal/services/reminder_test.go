package services

import (
	"context"
	"strings"
	"testing"

	"github.com/rohits-web03/lumina/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (e *testEnv) optIn(t *testing.T, u *models.User) {
	t.Helper()
	u.EmailValidated = true
	u.NotificationsEnabled = true
	require.NoError(t, e.store.Users().Save(context.Background(), u))
}

type blockingNotifier struct {
	entered chan struct{}
	release chan struct{}
}

func (b *blockingNotifier) Send(ctx context.Context, _, _, _ string) error {
	b.entered <- struct{}{}
	<-b.release
	return nil
}

func TestSweepNotifiesUsersWithOpenTodos(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	busy := env.register(t, "busy")
	idle := env.register(t, "idle")
	quiet := env.register(t, "quiet")
	env.optIn(t, busy)
	env.optIn(t, idle)

	for _, title := range []string{"one", "two"} {
		_, err := env.todos.Create(ctx, busy, TodoInput{Title: title})
		require.NoError(t, err)
	}
	done, err := env.todos.Create(ctx, idle, TodoInput{Title: "finished"})
	require.NoError(t, err)
	_, err = env.todos.SetStatus(ctx, idle, done.ID, true)
	require.NoError(t, err)
	_, err = env.todos.Create(ctx, quiet, TodoInput{Title: "not opted in"})
	require.NoError(t, err)

	result, err := env.reminder.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, SweepResult{Checked: 2, Notified: 1}, result)

	require.Len(t, env.notifier.sent, 1)
	mail := env.notifier.sent[0]
	assert.Equal(t, busy.Email, mail.To)
	assert.Contains(t, mail.Body, "busy")
	assert.Contains(t, mail.Body, "<b>2</b>")
	assert.Contains(t, mail.Body, "https://lumina.test")
}

func TestSweepContinuesAfterSendFailure(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	var names = []string{"u1", "u2", "u3"}
	for _, name := range names {
		u := env.register(t, name)
		env.optIn(t, u)
		_, err := env.todos.Create(ctx, u, TodoInput{Title: "pending"})
		require.NoError(t, err)
	}
	env.notifier.failFor["u2@example.com"] = true

	result, err := env.reminder.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Checked)
	assert.Equal(t, 2, result.Notified)
	assert.Equal(t, 1, result.Failed)

	var recipients []string
	for _, m := range env.notifier.sent {
		recipients = append(recipients, m.To)
	}
	assert.ElementsMatch(t, []string{"u1@example.com", "u3@example.com"}, recipients)
}

func TestSweepSkipsWhileAnotherIsRunning(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	u := env.register(t, "slow")
	env.optIn(t, u)
	_, err := env.todos.Create(ctx, u, TodoInput{Title: "pending"})
	require.NoError(t, err)

	blocker := &blockingNotifier{entered: make(chan struct{}), release: make(chan struct{})}
	reminder := NewReminderService(env.store, blocker, "")

	first := make(chan SweepResult, 1)
	go func() {
		res, _ := reminder.Sweep(ctx)
		first <- res
	}()
	<-blocker.entered

	second, err := reminder.Sweep(ctx)
	require.NoError(t, err)
	assert.True(t, second.Skipped)

	close(blocker.release)
	res := <-first
	assert.False(t, res.Skipped)
	assert.Equal(t, 1, res.Notified)
}

func TestMessagesEscapeUserInput(t *testing.T) {
	_, body := reminderMessage("<script>", 3, "https://app.test/?a=1&b=2")
	assert.NotContains(t, body, "<script>")
	assert.True(t, strings.Contains(body, "&lt;script&gt;"))
	assert.Contains(t, body, "a=1&amp;b=2")

	subject, body := verificationMessage("123456")
	assert.Equal(t, "Lumina Verification Code", subject)
	assert.Contains(t, body, "123456")
}
