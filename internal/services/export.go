package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rohits-web03/lumina/internal/models"
	"github.com/rohits-web03/lumina/internal/repositories"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

const exportLinkTTL = 15 * time.Minute

// Export formats.
const (
	FormatMarkdown = "md"
	FormatYAML     = "yaml"
)

// ObjectStore is where published archives are kept.
type ObjectStore interface {
	Put(ctx context.Context, key string, body []byte, contentType string) error
	PresignGet(ctx context.Context, key string, expires time.Duration) (string, error)
}

// ExportFile is a rendered archive ready to be served or uploaded.
type ExportFile struct {
	Filename    string
	ContentType string
	Body        []byte
}

// ExportLink points at a published archive.
type ExportLink struct {
	URL       string    `json:"url"`
	Filename  string    `json:"filename"`
	ExpiresAt time.Time `json:"expires_at"`
}

type archive struct {
	User        string        `yaml:"user"`
	GeneratedAt time.Time     `yaml:"generated_at"`
	Todos       []archiveTodo `yaml:"todos"`
	Diaries     []archiveText `yaml:"diaries"`
	Notes       []archiveNote `yaml:"notes"`
	Goals       []archiveGoal `yaml:"goals"`
}

type archiveTodo struct {
	Title       string     `yaml:"title"`
	Description string     `yaml:"description,omitempty"`
	Priority    string     `yaml:"priority"`
	Done        bool       `yaml:"done"`
	Entry       time.Time  `yaml:"entry"`
	CompletedAt *time.Time `yaml:"completed_at,omitempty"`
}

type archiveText struct {
	Title   string    `yaml:"title"`
	Content string    `yaml:"content"`
	Entry   time.Time `yaml:"entry"`
}

type archiveNote struct {
	Title    string    `yaml:"title"`
	Content  string    `yaml:"content"`
	Pinned   bool      `yaml:"pinned"`
	Archived bool      `yaml:"archived"`
	Tags     []string  `yaml:"tags,omitempty"`
	Created  time.Time `yaml:"created"`
}

type archiveGoal struct {
	Title       string     `yaml:"title"`
	Description string     `yaml:"description"`
	Completed   bool       `yaml:"completed"`
	TargetDate  *time.Time `yaml:"target_date,omitempty"`
}

// ExportService renders everything a user owns into a single document.
type ExportService struct {
	store   *repositories.Store
	objects ObjectStore
	clock   Clock
}

// NewExportService builds the service. objects may be nil, in which case Publish is unavailable.
func NewExportService(store *repositories.Store, objects ObjectStore, clock Clock) *ExportService {
	return &ExportService{store: store, objects: objects, clock: clock}
}

// CanPublish reports whether archives can be uploaded to object storage.
func (s *ExportService) CanPublish() bool {
	return s.objects != nil
}

func (s *ExportService) Render(ctx context.Context, user *models.User, format string) (*ExportFile, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = FormatMarkdown
	}
	if format != FormatMarkdown && format != FormatYAML {
		return nil, fmt.Errorf("%w: unsupported export format %q", ErrValidation, format)
	}

	a, err := s.collect(ctx, user)
	if err != nil {
		return nil, err
	}

	stamp := a.GeneratedAt.Format("20060102-150405")
	if format == FormatYAML {
		body, err := yaml.Marshal(a)
		if err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		return &ExportFile{Filename: "lumina-" + stamp + ".yaml", ContentType: "application/yaml", Body: body}, nil
	}
	return &ExportFile{Filename: "lumina-" + stamp + ".md", ContentType: "text/markdown; charset=utf-8", Body: renderMarkdown(a)}, nil
}

// Publish renders the archive, uploads it and returns a short-lived download link.
func (s *ExportService) Publish(ctx context.Context, user *models.User, format string) (*ExportLink, error) {
	if s.objects == nil {
		return nil, fmt.Errorf("%w: object storage is not configured", ErrUpstream)
	}
	file, err := s.Render(ctx, user, format)
	if err != nil {
		return nil, err
	}
	key := fmt.Sprintf("exports/%d/%s/%s", user.ID, uuid.NewString(), file.Filename)
	if err := s.objects.Put(ctx, key, file.Body, file.ContentType); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	url, err := s.objects.PresignGet(ctx, key, exportLinkTTL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return &ExportLink{URL: url, Filename: file.Filename, ExpiresAt: s.clock.now().Add(exportLinkTTL)}, nil
}

func (s *ExportService) collect(ctx context.Context, user *models.User) (*archive, error) {
	var (
		todos   []models.Todo
		diaries []models.Diary
		notes   []models.Note
		goals   []models.Goal
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { todos, err = s.store.Todos().List(gctx, user.ID); return })
	g.Go(func() (err error) { diaries, err = s.store.Diaries().List(gctx, user.ID); return })
	g.Go(func() (err error) { notes, err = s.store.Notes().List(gctx, user.ID); return })
	g.Go(func() (err error) { goals, err = s.store.Goals().List(gctx, user.ID); return })
	if err := g.Wait(); err != nil {
		return nil, err
	}

	a := &archive{User: user.Username, GeneratedAt: s.clock.now()}
	for _, t := range todos {
		at := archiveTodo{Title: t.Title, Priority: t.Priority, Done: t.Status, Entry: t.EntryDatetime, CompletedAt: t.CompletedDatetime}
		if t.Description != nil {
			at.Description = *t.Description
		}
		a.Todos = append(a.Todos, at)
	}
	for _, d := range diaries {
		a.Diaries = append(a.Diaries, archiveText{Title: d.Title, Content: d.Content, Entry: d.EntryDatetime})
	}
	for _, n := range notes {
		an := archiveNote{Title: n.Title, Content: n.Content, Pinned: n.IsPinned, Archived: n.IsArchived, Created: n.CreatedAt}
		for _, tag := range n.Tags {
			an.Tags = append(an.Tags, tag.Name)
		}
		a.Notes = append(a.Notes, an)
	}
	for _, gl := range goals {
		a.Goals = append(a.Goals, archiveGoal{Title: gl.Title, Description: gl.Description, Completed: gl.IsCompleted, TargetDate: gl.TargetDate})
	}
	return a, nil
}

func renderMarkdown(a *archive) []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "# Lumina export for %s\n\n_Generated %s_\n", a.User, a.GeneratedAt.Format(time.RFC1123))

	b.WriteString("\n## Todos\n\n")
	for _, t := range a.Todos {
		box := " "
		if t.Done {
			box = "x"
		}
		fmt.Fprintf(&b, "- [%s] %s (%s, %s)\n", box, t.Title, t.Priority, t.Entry.Format("2006-01-02"))
		if t.Description != "" {
			fmt.Fprintf(&b, "  %s\n", t.Description)
		}
	}

	b.WriteString("\n## Diary\n")
	for _, d := range a.Diaries {
		fmt.Fprintf(&b, "\n### %s: %s\n\n%s\n", d.Entry.Format("2006-01-02"), d.Title, d.Content)
	}

	b.WriteString("\n## Notes\n")
	for _, n := range a.Notes {
		fmt.Fprintf(&b, "\n### %s\n\n", n.Title)
		if len(n.Tags) > 0 {
			fmt.Fprintf(&b, "Tags: %s\n\n", strings.Join(n.Tags, ", "))
		}
		fmt.Fprintf(&b, "%s\n", n.Content)
	}

	b.WriteString("\n## Goals\n\n")
	for _, g := range a.Goals {
		box := " "
		if g.Completed {
			box = "x"
		}
		fmt.Fprintf(&b, "- [%s] %s", box, g.Title)
		if g.TargetDate != nil {
			fmt.Fprintf(&b, " (target %s)", g.TargetDate.Format("2006-01-02"))
		}
		fmt.Fprintf(&b, ": %s\n", g.Description)
	}
	return b.Bytes()
}
