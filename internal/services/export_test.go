package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type memoryObjects struct {
	objects map[string][]byte
	failPut bool
}

func (m *memoryObjects) Put(_ context.Context, key string, body []byte, _ string) error {
	if m.failPut {
		return errors.New("bucket unavailable")
	}
	m.objects[key] = body
	return nil
}

func (m *memoryObjects) PresignGet(_ context.Context, key string, expires time.Duration) (string, error) {
	return "https://objects.test/" + key + "?ttl=" + expires.String(), nil
}

func seedArchive(t *testing.T, env *testEnv) *testEnv {
	t.Helper()
	ctx := context.Background()
	u := env.register(t, "writer")

	desc := "with charts"
	todo, err := env.todos.Create(ctx, u, TodoInput{Title: "quarterly report", Description: &desc})
	require.NoError(t, err)
	_, err = env.todos.SetStatus(ctx, u, todo.ID, true)
	require.NoError(t, err)
	_, err = env.diaries.Create(ctx, u, DiaryInput{Title: "Friday", Content: "Shipped it."})
	require.NoError(t, err)
	_, err = env.notes.Create(ctx, u, NoteInput{Title: "ideas", Content: "more tests", Tags: []string{"Work"}})
	require.NoError(t, err)
	_, err = env.goals.Create(ctx, u, GoalInput{Title: "learn go", Description: "properly"})
	require.NoError(t, err)
	return env
}

func TestExportRender(t *testing.T) {
	ctx := context.Background()
	env := seedArchive(t, newTestEnv(t))
	u, err := env.store.Users().FindByUsername(ctx, "writer")
	require.NoError(t, err)
	exports := NewExportService(env.store, nil, env.clock)

	t.Run("markdown by default", func(t *testing.T) {
		file, err := exports.Render(ctx, u, "")
		require.NoError(t, err)
		assert.Equal(t, "lumina-20261016-143000.md", file.Filename)
		body := string(file.Body)
		assert.True(t, strings.HasPrefix(body, "# Lumina export for writer"))
		assert.Contains(t, body, "- [x] quarterly report (medium, 2026-10-16)")
		assert.Contains(t, body, "### 2026-10-16: Friday")
		assert.Contains(t, body, "Tags: work")
		assert.Contains(t, body, "- [ ] learn go: properly")
	})

	t.Run("yaml", func(t *testing.T) {
		file, err := exports.Render(ctx, u, "YAML")
		require.NoError(t, err)
		assert.Equal(t, "application/yaml", file.ContentType)

		var decoded map[string]any
		require.NoError(t, yaml.Unmarshal(file.Body, &decoded))
		assert.Equal(t, "writer", decoded["user"])
		assert.Len(t, decoded["todos"], 1)
		assert.Len(t, decoded["notes"], 1)
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := exports.Render(ctx, u, "pdf")
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestExportPublish(t *testing.T) {
	ctx := context.Background()
	env := seedArchive(t, newTestEnv(t))
	u, err := env.store.Users().FindByUsername(ctx, "writer")
	require.NoError(t, err)

	t.Run("without object storage", func(t *testing.T) {
		exports := NewExportService(env.store, nil, env.clock)
		assert.False(t, exports.CanPublish())
		_, err := exports.Publish(ctx, u, FormatMarkdown)
		assert.ErrorIs(t, err, ErrUpstream)
	})

	t.Run("uploads and links", func(t *testing.T) {
		objects := &memoryObjects{objects: map[string][]byte{}}
		exports := NewExportService(env.store, objects, env.clock)
		require.True(t, exports.CanPublish())

		link, err := exports.Publish(ctx, u, FormatYAML)
		require.NoError(t, err)
		assert.Equal(t, "lumina-20261016-143000.yaml", link.Filename)
		assert.True(t, link.ExpiresAt.Equal(fixedNow.Add(15*time.Minute)))
		require.Len(t, objects.objects, 1)
		for key := range objects.objects {
			assert.True(t, strings.HasPrefix(key, "exports/"))
			assert.True(t, strings.HasSuffix(key, "/"+link.Filename))
			assert.Contains(t, link.URL, key)
		}
	})

	t.Run("upload failure", func(t *testing.T) {
		exports := NewExportService(env.store, &memoryObjects{objects: map[string][]byte{}, failPut: true}, env.clock)
		_, err := exports.Publish(ctx, u, FormatMarkdown)
		assert.ErrorIs(t, err, ErrUpstream)
	})
}
