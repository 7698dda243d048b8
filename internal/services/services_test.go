package services

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rohits-web03/lumina/internal/auth"
	"github.com/rohits-web03/lumina/internal/models"
	"github.com/rohits-web03/lumina/internal/repositories"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 10, 16, 14, 30, 0, 0, time.UTC)

type sentMail struct {
	To, Subject, Body string
}

type fakeNotifier struct {
	mu      sync.Mutex
	sent    []sentMail
	failFor map[string]bool
}

func (f *fakeNotifier) Send(_ context.Context, to, subject, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failFor[to] {
		return errors.New("mailbox unavailable")
	}
	f.sent = append(f.sent, sentMail{To: to, Subject: subject, Body: body})
	return nil
}

func (f *fakeNotifier) last() sentMail {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sent[len(f.sent)-1]
}

var codePattern = regexp.MustCompile(`\d{6}`)

type testEnv struct {
	store    *repositories.Store
	clock    Clock
	now      *time.Time
	notifier *fakeNotifier
	users    *UserService
	todos    *TodoService
	diaries  *DiaryService
	notes    *NoteService
	goals    *GoalService
	reminder *ReminderService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := repositories.OpenMemory("svc_" + name)
	require.NoError(t, err)
	t.Cleanup(func() { repositories.Close(db) })

	store := repositories.NewStore(db)
	now := fixedNow
	clock := Clock{Now: func() time.Time { return now }, Location: time.UTC}
	issuer, err := auth.NewTokenIssuer("test-secret", "HS256", 30*time.Minute)
	require.NoError(t, err)
	notifier := &fakeNotifier{failFor: map[string]bool{}}

	return &testEnv{
		store:    store,
		clock:    clock,
		now:      &now,
		notifier: notifier,
		users:    NewUserService(store, issuer, notifier),
		todos:    NewTodoService(store, clock, NewRolloverEngine(clock, true)),
		diaries:  NewDiaryService(store, clock),
		notes:    NewNoteService(store, clock),
		goals:    NewGoalService(store, clock),
		reminder: NewReminderService(store, notifier, "https://lumina.test"),
	}
}

func (e *testEnv) register(t *testing.T, username string) *models.User {
	t.Helper()
	u, err := e.users.Register(context.Background(), RegisterInput{
		Username: username,
		Password: "pw-" + username,
		Email:    username + "@example.com",
	})
	require.NoError(t, err)
	return u
}

func datePtr(t time.Time) *time.Time { return &t }
