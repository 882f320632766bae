package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"inkscan/internal/model"
	"inkscan/internal/note"
	"inkscan/internal/taskline"
	"inkscan/internal/trigger"
	"inkscan/pkg/datemath"
)

// testEnv wires a full use case over mocks. The dispatcher runs with a
// high rate budget so tests never wait on the limiter.
type testEnv struct {
	repo     *mockRepository
	gemini   *mockGeminiClient
	indexer  *mockIndexer
	notifier *mockNotifier
	uc       *implUseCase
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := &mockLogger{}
	parser, err := datemath.NewParser("UTC")
	if err != nil {
		t.Fatalf("NewParser: %v", err)
	}
	extractor := taskline.NewExtractor(parser, nil)

	env := &testEnv{
		repo:     &mockRepository{},
		gemini:   &mockGeminiClient{},
		indexer:  &mockIndexer{},
		notifier: &mockNotifier{},
	}

	manager := createManagerFromGeminiClient(env.gemini, logger)
	table := trigger.DefaultTable()
	dispatcher := trigger.New(
		logger,
		table,
		NewLLMExecutor(manager),
		NewTaskFiler(logger, env.repo, extractor),
		nil,
		trigger.Config{TasksToNotes: true, RatePerMinute: 60000},
	)

	env.uc = New(logger, env.repo, manager, dispatcher, table, extractor, nil, env.indexer, env.notifier, "UTC")
	return env
}

// fixedNow pins timeNow for the duration of a test.
func fixedNow(t *testing.T, ts time.Time) {
	t.Helper()
	orig := timeNow
	timeNow = func() time.Time { return ts }
	t.Cleanup(func() { timeNow = orig })
}

const pageMarkdown = `### Transcript
Quarterly planning session, lots of whiteboard photos.
Budget still unclear.

### Summary
Planning session for the Q3 roadmap.

### Tasks
- [ ] !! Call the vendor DUE: tomorrow #work
- [ ] Draft the agenda

### Detected Tags
planning, roadmap`

func TestProcessMarkdown(t *testing.T) {
	ctx := context.Background()
	sc := model.Scope{UserID: "u1", Source: "api"}
	// 2024-05-01 is a Wednesday.
	fixedNow(t, time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC))

	t.Run("Empty Document", func(t *testing.T) {
		env := newTestEnv(t)
		_, err := env.uc.ProcessMarkdown(ctx, sc, note.ProcessMarkdownInput{Markdown: "   \n"})
		if !errors.Is(err, note.ErrEmptyDocument) {
			t.Fatalf("expected ErrEmptyDocument, got %v", err)
		}
	})

	t.Run("Normalizes Tasks In Place", func(t *testing.T) {
		env := newTestEnv(t)
		out, err := env.uc.ProcessMarkdown(ctx, sc, note.ProcessMarkdownInput{Markdown: pageMarkdown})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.TasksExtracted != 2 {
			t.Errorf("expected 2 tasks extracted, got %d", out.TasksExtracted)
		}
		if len(out.Tasks) != 2 || out.Tasks[0].Text != "Call the vendor" {
			t.Errorf("expected task records on the output, got %+v", out.Tasks)
		}
		if len(env.repo.created) != 1 {
			t.Fatalf("expected 1 note created, got %d", len(env.repo.created))
		}

		content := env.repo.created[0].Content
		want := "- [ ] 🔼 Call the vendor 📅 2024-05-02 ➕ 2024-05-01 #work"
		if !strings.Contains(content, want) {
			t.Errorf("normalized task line missing:\nwant %q\ngot:\n%s", want, content)
		}
		if !strings.Contains(content, "- [ ] Draft the agenda ➕ 2024-05-01") {
			t.Errorf("plain task line missing, got:\n%s", content)
		}
		if strings.Contains(content, "DUE: tomorrow") {
			t.Errorf("raw date marker survived normalization:\n%s", content)
		}
		if !strings.Contains(content, "Quarterly planning session") {
			t.Errorf("transcript body lost during rewrite:\n%s", content)
		}
	})

	t.Run("Derives Title And Tags", func(t *testing.T) {
		env := newTestEnv(t)
		out, err := env.uc.ProcessMarkdown(ctx, sc, note.ProcessMarkdownInput{Markdown: pageMarkdown})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Note.Title != "Planning session for the Q3 roadmap." {
			t.Errorf("unexpected title %q", out.Note.Title)
		}
		opts := env.repo.created[0]
		if len(opts.Tags) != 2 || opts.Tags[0] != "planning" || opts.Tags[1] != "roadmap" {
			t.Errorf("unexpected tags %v", opts.Tags)
		}
	})

	t.Run("Explicit Title Wins", func(t *testing.T) {
		env := newTestEnv(t)
		out, err := env.uc.ProcessMarkdown(ctx, sc, note.ProcessMarkdownInput{
			Title:    "Meeting Notes",
			Markdown: pageMarkdown,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Note.Title != "Meeting Notes" {
			t.Errorf("expected explicit title, got %q", out.Note.Title)
		}
	})

	t.Run("Sentinel Tasks Section Skipped", func(t *testing.T) {
		env := newTestEnv(t)
		md := "### Transcript\nJust thoughts.\n\n### Tasks\nnone identified.\n"
		out, err := env.uc.ProcessMarkdown(ctx, sc, note.ProcessMarkdownInput{Markdown: md})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.TasksExtracted != 0 {
			t.Errorf("expected 0 tasks, got %d", out.TasksExtracted)
		}
		if got := env.repo.created[0].Content; !strings.Contains(got, "none identified.") {
			t.Errorf("sentinel body should pass through unchanged:\n%s", got)
		}
	})

	t.Run("Dispatches Triggers From Transcript", func(t *testing.T) {
		env := newTestEnv(t)
		env.gemini.response = textResponse("A concise summary.")
		md := "### Transcript\nNotes so far. <u>Summarize</u>: the budget discussion.\n\n### Summary\nBudget talk."
		out, err := env.uc.ProcessMarkdown(ctx, sc, note.ProcessMarkdownInput{Markdown: md})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.TriggersFound != 1 || out.ActionsSucceeded != 1 || out.ActionsFailed != 0 {
			t.Errorf("unexpected stats: %+v", out)
		}

		content := env.repo.created[0].Content
		if !strings.Contains(content, trigger.MergedHeading) {
			t.Errorf("merged heading missing:\n%s", content)
		}
		if !strings.Contains(content, "### Summarize Results") {
			t.Errorf("result heading missing:\n%s", content)
		}
		if !strings.Contains(content, "A concise summary.") {
			t.Errorf("executor output missing:\n%s", content)
		}
	})

	t.Run("Trigger Failure Is Not Fatal", func(t *testing.T) {
		env := newTestEnv(t)
		env.gemini.err = errors.New("cause_provider_down")
		md := "### Transcript\n<u>Research</u>: quantum batteries.\n"
		out, err := env.uc.ProcessMarkdown(ctx, sc, note.ProcessMarkdownInput{Markdown: md})
		if err != nil {
			t.Fatalf("pipeline should survive a failing action, got %v", err)
		}
		if out.ActionsFailed != 1 || out.ActionsSucceeded != 0 {
			t.Errorf("unexpected stats: %+v", out)
		}
		if !strings.Contains(env.repo.created[0].Content, trigger.FailedPlaceholder) {
			t.Errorf("failure placeholder missing:\n%s", env.repo.created[0].Content)
		}
	})

	t.Run("Tasks Trigger Files Into Second Note", func(t *testing.T) {
		env := newTestEnv(t)
		md := "### Transcript\n<u>Tasks</u>:\n- buy milk by tomorrow\n- call mom\n"
		out, err := env.uc.ProcessMarkdown(ctx, sc, note.ProcessMarkdownInput{Markdown: md})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.TasksFiled != 2 {
			t.Errorf("expected 2 filed tasks, got %d", out.TasksFiled)
		}
		// Filed note first, then the page note.
		if len(env.repo.created) != 2 {
			t.Fatalf("expected 2 notes, got %d", len(env.repo.created))
		}
		if env.repo.created[0].Title != "Filed Tasks 2024-05-01" {
			t.Errorf("unexpected filed note title %q", env.repo.created[0].Title)
		}
		if !strings.Contains(env.repo.created[0].Content, "buy milk 📅 2024-05-02") {
			t.Errorf("filed note content wrong:\n%s", env.repo.created[0].Content)
		}
	})

	t.Run("Repository Error Propagates", func(t *testing.T) {
		env := newTestEnv(t)
		env.repo.createErr = errors.New("cause_disk_full")
		_, err := env.uc.ProcessMarkdown(ctx, sc, note.ProcessMarkdownInput{Markdown: pageMarkdown})
		if err == nil || !strings.Contains(err.Error(), "cause_disk_full") {
			t.Fatalf("expected repo error, got %v", err)
		}
	})

	t.Run("Post Steps Run Best Effort", func(t *testing.T) {
		env := newTestEnv(t)
		env.notifier.err = errors.New("cause_telegram_down")
		out, err := env.uc.ProcessMarkdown(ctx, sc, note.ProcessMarkdownInput{Markdown: pageMarkdown})
		if err != nil {
			t.Fatalf("failing notifier must not fail the pipeline: %v", err)
		}
		if len(env.indexer.embedded) != 1 || env.indexer.embedded[0] != out.Note.ID {
			t.Errorf("expected embed of %s, got %v", out.Note.ID, env.indexer.embedded)
		}
		if len(env.notifier.texts) != 1 {
			t.Fatalf("expected 1 notification attempt, got %d", len(env.notifier.texts))
		}
		if !strings.Contains(env.notifier.texts[0], "via api") {
			t.Errorf("notification should carry the source, got %q", env.notifier.texts[0])
		}
	})
}
