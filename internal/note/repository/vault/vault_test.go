package vault

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"inkscan/internal/note/repository"
)

// Mock logger for testing
type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Debugf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) Info(ctx context.Context, args ...any)                   {}
func (m *mockLogger) Infof(ctx context.Context, format string, args ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, args ...any)                   {}
func (m *mockLogger) Warnf(ctx context.Context, format string, args ...any)   {}
func (m *mockLogger) Error(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Errorf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, args ...any)                 {}
func (m *mockLogger) DPanicf(ctx context.Context, format string, args ...any) {}
func (m *mockLogger) Panic(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Panicf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Fatalf(ctx context.Context, format string, args ...any)  {}

func fixedNow(t *testing.T, day string) func() {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", day)
	if err != nil {
		t.Fatalf("bad day %q: %v", day, err)
	}
	orig := timeNow
	timeNow = func() time.Time { return parsed }
	return func() { timeNow = orig }
}

func TestCreateNote_WritesFrontmatterFile(t *testing.T) {
	restore := fixedNow(t, "2024-05-01")
	defer restore()

	dir := t.TempDir()
	repo := New(dir, &mockLogger{})

	note, err := repo.CreateNote(context.Background(), repository.CreateNoteOptions{
		Title:       "Team Standup Notes",
		Content:     "### Transcript\n\nDiscussed the release.",
		Tags:        []string{"work", "standup"},
		SourceImage: "/scans/page-001.png",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasPrefix(note.ID, "2024-05-01-team-standup-notes-") {
		t.Errorf("unexpected note ID: %s", note.ID)
	}
	if note.Path != note.ID+".md" {
		t.Errorf("expected path %s.md, got %s", note.ID, note.Path)
	}

	raw, err := os.ReadFile(filepath.Join(dir, note.Path))
	if err != nil {
		t.Fatalf("note file not written: %v", err)
	}
	content := string(raw)

	if !strings.HasPrefix(content, "---\n") {
		t.Errorf("expected frontmatter block, got: %q", content[:20])
	}
	for _, want := range []string{
		"title: Team Standup Notes",
		"- work",
		"- standup",
		"source_image: /scans/page-001.png",
		"### Transcript",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("file missing %q", want)
		}
	}
	if !strings.HasSuffix(content, "Discussed the release.\n") {
		t.Errorf("body not terminated with newline: %q", content[len(content)-30:])
	}

	// No temp files left behind.
	entries, _ := os.ReadDir(dir)
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".tmp-") {
			t.Errorf("leftover temp file: %s", e.Name())
		}
	}
}

func TestCreateNote_RoundTrip(t *testing.T) {
	restore := fixedNow(t, "2024-05-01")
	defer restore()

	dir := t.TempDir()
	repo := New(dir, &mockLogger{})

	created, err := repo.CreateNote(context.Background(), repository.CreateNoteOptions{
		Title:   "Reading List",
		Content: "### Summary\n\nBooks to read.\n\n### Tasks\n\n- [ ] Buy the first one",
		Tags:    []string{"books"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := repo.GetNote(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("GetNote failed: %v", err)
	}

	if got.ID != created.ID {
		t.Errorf("ID mismatch: %s vs %s", got.ID, created.ID)
	}
	if got.Title != "Reading List" {
		t.Errorf("unexpected title: %s", got.Title)
	}
	if got.Content != created.Content+"\n" && got.Content != created.Content {
		t.Errorf("content mismatch:\n%q\nvs\n%q", got.Content, created.Content)
	}
	if len(got.Tags) != 1 || got.Tags[0] != "books" {
		t.Errorf("unexpected tags: %v", got.Tags)
	}
	if !got.CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("created_at mismatch: %v vs %v", got.CreatedAt, created.CreatedAt)
	}
}

func TestGetNote_NotFound(t *testing.T) {
	repo := New(t.TempDir(), &mockLogger{})

	if _, err := repo.GetNote(context.Background(), "2024-01-01-missing-X"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got: %v", err)
	}

	// IDs are filename stems; traversal attempts are rejected outright.
	if _, err := repo.GetNote(context.Background(), "../etc/passwd"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound for traversal, got: %v", err)
	}
}

func TestListNotes(t *testing.T) {
	dir := t.TempDir()
	repo := New(dir, &mockLogger{})
	ctx := context.Background()

	days := []struct {
		day   string
		title string
		tags  []string
	}{
		{"2024-05-01", "Oldest", []string{"work"}},
		{"2024-05-02", "Middle", nil},
		{"2024-05-03", "Newest", []string{"Work"}},
	}
	for _, d := range days {
		restore := fixedNow(t, d.day)
		if _, err := repo.CreateNote(ctx, repository.CreateNoteOptions{Title: d.title, Content: "body", Tags: d.tags}); err != nil {
			restore()
			t.Fatalf("create %s: %v", d.title, err)
		}
		restore()
	}

	t.Run("newest first", func(t *testing.T) {
		notes, err := repo.ListNotes(ctx, repository.ListNotesOptions{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(notes) != 3 {
			t.Fatalf("expected 3 notes, got %d", len(notes))
		}
		if notes[0].Title != "Newest" || notes[2].Title != "Oldest" {
			t.Errorf("unexpected order: %s, %s, %s", notes[0].Title, notes[1].Title, notes[2].Title)
		}
	})

	t.Run("tag filter is case-insensitive", func(t *testing.T) {
		notes, err := repo.ListNotes(ctx, repository.ListNotesOptions{Tag: "work"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(notes) != 2 {
			t.Fatalf("expected 2 tagged notes, got %d", len(notes))
		}
	})

	t.Run("limit and offset", func(t *testing.T) {
		notes, err := repo.ListNotes(ctx, repository.ListNotesOptions{Limit: 1, Offset: 1})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(notes) != 1 || notes[0].Title != "Middle" {
			t.Errorf("unexpected page: %+v", notes)
		}
	})

	t.Run("empty root", func(t *testing.T) {
		empty := New(filepath.Join(dir, "does-not-exist"), &mockLogger{})
		notes, err := empty.ListNotes(ctx, repository.ListNotesOptions{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(notes) != 0 {
			t.Errorf("expected no notes, got %d", len(notes))
		}
	})
}

func TestGetNote_FileWithoutFrontmatter(t *testing.T) {
	dir := t.TempDir()
	repo := New(dir, &mockLogger{})

	raw := "# Plain Markdown\n\nNo frontmatter here.\n"
	if err := os.WriteFile(filepath.Join(dir, "legacy-note.md"), []byte(raw), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	got, err := repo.GetNote(context.Background(), "legacy-note")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != "legacy-note" {
		t.Errorf("expected stem as ID, got %s", got.ID)
	}
	if got.Content != raw {
		t.Errorf("body altered: %q", got.Content)
	}
}

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Team Standup!! Notes", "team-standup-notes"},
		{"  spaced  out  ", "spaced-out"},
		{"", "note"},
		{"***", "note"},
		{"Café ☕ Menu", "caf-menu"},
	}
	for _, tc := range cases {
		if got := slugify(tc.in); got != tc.want {
			t.Errorf("slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}

	long := slugify(strings.Repeat("very long title ", 10))
	if len(long) > maxSlugLen {
		t.Errorf("slug not truncated: %d chars", len(long))
	}
	if strings.HasSuffix(long, "-") {
		t.Errorf("truncated slug ends with hyphen: %q", long)
	}
}
