package repositories

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rohits-web03/lumina/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := OpenMemory(name)
	require.NoError(t, err)
	t.Cleanup(func() { Close(db) })
	return NewStore(db)
}

func seedUser(t *testing.T, s *Store, username string) *models.User {
	t.Helper()
	u := &models.User{Username: username, Email: username + "@example.com", Password: "x", Role: models.RoleUser}
	require.NoError(t, s.Users().Create(context.Background(), u))
	return u
}

func TestOwnedScopesEveryOperation(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	alice := seedUser(t, s, "alice")
	bob := seedUser(t, s, "bob")

	todo := &models.Todo{UserID: alice.ID, Title: "buy milk", Priority: models.PriorityLow, EntryDatetime: time.Now().UTC()}
	require.NoError(t, s.Todos().Create(ctx, todo))

	t.Run("owner sees row", func(t *testing.T) {
		got, err := s.Todos().Get(ctx, alice.ID, todo.ID)
		require.NoError(t, err)
		assert.Equal(t, "buy milk", got.Title)
	})

	t.Run("other user gets not found", func(t *testing.T) {
		_, err := s.Todos().Get(ctx, bob.ID, todo.ID)
		assert.ErrorIs(t, err, ErrNotFound)

		err = s.Todos().Delete(ctx, bob.ID, todo.ID)
		assert.ErrorIs(t, err, ErrNotFound)

		list, err := s.Todos().List(ctx, bob.ID)
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("row survives foreign delete", func(t *testing.T) {
		list, err := s.Todos().List(ctx, alice.ID)
		require.NoError(t, err)
		assert.Len(t, list, 1)
	})
}

func TestOwnedSearchAndBetween(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	u := seedUser(t, s, "carol")

	day := time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)
	entries := []*models.Diary{
		{UserID: u.ID, Title: "Morning Run", Content: "5k", EntryDatetime: day},
		{UserID: u.ID, Title: "Work", Content: "shipped the RELEASE", EntryDatetime: day.Add(10 * time.Hour)},
		{UserID: u.ID, Title: "Next day", Content: "rest 100%", EntryDatetime: day.AddDate(0, 0, 1)},
	}
	for _, e := range entries {
		require.NoError(t, s.Diaries().Create(ctx, e))
	}

	found, err := s.Diaries().Search(ctx, u.ID, "release")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Work", found[0].Title)

	found, err = s.Diaries().Search(ctx, u.ID, "RUN")
	require.NoError(t, err)
	assert.Len(t, found, 1)

	found, err = s.Diaries().Search(ctx, u.ID, "%")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Next day", found[0].Title)

	start := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	onDay, err := s.Diaries().Between(ctx, u.ID, start, start.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Len(t, onDay, 2)
}

func TestTagGetOrCreateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	first, err := s.Tags().GetOrCreate(ctx, "work")
	require.NoError(t, err)
	second, err := s.Tags().GetOrCreate(ctx, "work")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	count, err := s.Tags().Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestTagGetOrCreateLosesRace(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	// Another writer inserts the same name between our lookup and our insert.
	raced := false
	err := s.db.Callback().Create().Before("gorm:create").Register("test:concurrent_tag", func(tx *gorm.DB) {
		if raced || tx.Statement.Table != "tags" {
			return
		}
		raced = true
		_, err := tx.Statement.ConnPool.ExecContext(tx.Statement.Context, "INSERT INTO tags (name) VALUES (?)", "work")
		require.NoError(t, err)
	})
	require.NoError(t, err)

	tag, err := s.Tags().GetOrCreate(ctx, "work")
	require.NoError(t, err)
	assert.True(t, raced)
	assert.Equal(t, "work", tag.Name)
	assert.NotZero(t, tag.ID)

	count, err := s.Tags().Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestNoteDeleteKeepsSharedTags(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	u := seedUser(t, s, "dave")

	tag, err := s.Tags().GetOrCreate(ctx, "ideas")
	require.NoError(t, err)

	note := &models.Note{UserID: u.ID, Title: "t", Content: "c", CreatedAt: time.Now().UTC(), Tags: []models.Tag{*tag}}
	require.NoError(t, s.Notes().Create(ctx, note))

	got, err := s.Notes().Get(ctx, u.ID, note.ID)
	require.NoError(t, err)
	require.Len(t, got.Tags, 1)

	require.NoError(t, s.Notes().Delete(ctx, u.ID, note.ID))

	_, err = s.Notes().Get(ctx, u.ID, note.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.Tags().FindByName(ctx, "ideas")
	assert.NoError(t, err)
}

func TestUserUniqueness(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	seedUser(t, s, "erin")

	dup := &models.User{Username: "erin", Email: "other@example.com", Password: "x", Role: models.RoleUser}
	err := s.Users().Create(ctx, dup)
	assert.ErrorIs(t, err, ErrDuplicate)

	exists, err := s.Users().Exists(ctx, "email", "erin@example.com", 0)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestTransactionRollsBack(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	u := seedUser(t, s, "frank")

	err := s.Transaction(ctx, func(tx *Store) error {
		if err := tx.Goals().Create(ctx, &models.Goal{UserID: u.ID, Title: "g", Description: "d"}); err != nil {
			return err
		}
		return assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)

	goals, err := s.Goals().List(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, goals)
}
