package trigger_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"inkscan/internal/trigger"
)

// mock dependencies

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

type mockExecutor struct {
	prompts []string
	failOn  string // substring that makes Execute fail
}

func (m *mockExecutor) Execute(ctx context.Context, prompt string) (string, error) {
	m.prompts = append(m.prompts, prompt)
	if m.failOn != "" && strings.Contains(prompt, m.failOn) {
		return "", errors.New("llm unavailable")
	}
	return "AI RESPONSE", nil
}

type mockFiler struct {
	filed int
	fail  bool
	got   string
}

func (m *mockFiler) File(ctx context.Context, listContent string) (int, error) {
	m.got = listContent
	if m.fail {
		return 0, errors.New("pipeline down")
	}
	return m.filed, nil
}

type mockRelated struct {
	list string
	fail bool
}

func (m *mockRelated) Find(ctx context.Context, content string, tags []string) (string, error) {
	if m.fail {
		return "", errors.New("index down")
	}
	return m.list, nil
}

// fastCfg keeps the rate limiter out of the way in tests.
func fastCfg() trigger.Config {
	return trigger.Config{RatePerMinute: 60000}
}

func TestDispatchMergesBlocks(t *testing.T) {
	exec := &mockExecutor{}
	d := trigger.New(&mockLogger{}, trigger.DefaultTable(), exec, nil, nil, fastCfg())

	doc := "original document"
	triggers := []trigger.Trigger{
		{Keyword: "Summarize", Content: "some notes", ActionID: trigger.ActionSummarize},
		{Keyword: "Define", Content: "widget", ActionID: trigger.ActionDefine},
	}

	out, stats := d.Dispatch(context.Background(), doc, triggers)

	if !strings.HasPrefix(out, doc) {
		t.Errorf("original document must be preserved at the top")
	}
	if !strings.Contains(out, trigger.MergedHeading) {
		t.Errorf("missing merged heading, got:\n%s", out)
	}
	if !strings.Contains(out, "### Summarize Results") || !strings.Contains(out, "### Define Results") {
		t.Errorf("missing per-trigger result headings, got:\n%s", out)
	}
	if stats.Dispatched != 2 || stats.Failed != 0 {
		t.Errorf("stats = %+v, want 2 dispatched", stats)
	}
	if len(exec.prompts) != 2 {
		t.Fatalf("expected 2 executor calls, got %d", len(exec.prompts))
	}
	// emission order is preserved
	if !strings.Contains(exec.prompts[0], "some notes") || !strings.Contains(exec.prompts[1], "widget") {
		t.Errorf("prompts out of order: %v", exec.prompts)
	}
}

func TestDispatchZeroTriggersPassthrough(t *testing.T) {
	d := trigger.New(&mockLogger{}, trigger.DefaultTable(), &mockExecutor{}, nil, nil, fastCfg())

	doc := "untouched"
	out, stats := d.Dispatch(context.Background(), doc, nil)
	if out != doc {
		t.Errorf("document must pass through unchanged, got %q", out)
	}
	if stats.Dispatched != 0 {
		t.Errorf("stats = %+v, want zero", stats)
	}
}

func TestDispatchFailureDoesNotAbortBatch(t *testing.T) {
	exec := &mockExecutor{failOn: "broken topic"}
	d := trigger.New(&mockLogger{}, trigger.DefaultTable(), exec, nil, nil, fastCfg())

	triggers := []trigger.Trigger{
		{Keyword: "Research", Content: "broken topic", ActionID: trigger.ActionResearch},
		{Keyword: "Summarize", Content: "fine", ActionID: trigger.ActionSummarize},
	}

	out, stats := d.Dispatch(context.Background(), "doc", triggers)

	if !strings.Contains(out, "### Research - Processing Failed") {
		t.Errorf("missing failure placeholder, got:\n%s", out)
	}
	if strings.Contains(out, "llm unavailable") {
		t.Errorf("raw error detail must not leak into the document")
	}
	if !strings.Contains(out, "### Summarize Results") {
		t.Errorf("later trigger must still be processed, got:\n%s", out)
	}
	if stats.Failed != 1 || stats.Dispatched != 1 {
		t.Errorf("stats = %+v, want 1 failed / 1 dispatched", stats)
	}
}

func TestDispatchTasksDiversion(t *testing.T) {
	exec := &mockExecutor{}
	filer := &mockFiler{filed: 3}
	cfg := fastCfg()
	cfg.TasksToNotes = true
	d := trigger.New(&mockLogger{}, trigger.DefaultTable(), exec, filer, nil, cfg)

	triggers := []trigger.Trigger{
		{Keyword: "Tasks", Content: "- buy milk\n- call dan", ActionID: trigger.ActionTasks},
	}

	out, stats := d.Dispatch(context.Background(), "doc", triggers)

	if !strings.Contains(out, "Filed 3 task(s).") {
		t.Errorf("missing filed count, got:\n%s", out)
	}
	if stats.TasksFiled != 3 {
		t.Errorf("stats.TasksFiled = %d, want 3", stats.TasksFiled)
	}
	if len(exec.prompts) != 0 {
		t.Errorf("generic executor must not run for a diverted tasks trigger")
	}
	if filer.got != "- buy milk\n- call dan" {
		t.Errorf("filer received %q", filer.got)
	}
}

func TestDispatchTasksWithoutIntegrationUsesExecutor(t *testing.T) {
	exec := &mockExecutor{}
	d := trigger.New(&mockLogger{}, trigger.DefaultTable(), exec, &mockFiler{}, nil, fastCfg())

	triggers := []trigger.Trigger{
		{Keyword: "Tasks", Content: "- a", ActionID: trigger.ActionTasks},
	}
	d.Dispatch(context.Background(), "doc", triggers)

	if len(exec.prompts) != 1 {
		t.Errorf("expected generic path when integration is off, got %d calls", len(exec.prompts))
	}
}

func TestDispatchRelated(t *testing.T) {
	related := &mockRelated{list: "- [[Marine Biology]]\n- [[Diving Log]]"}
	d := trigger.New(&mockLogger{}, trigger.DefaultTable(), &mockExecutor{}, nil, related, fastCfg())

	triggers := []trigger.Trigger{
		{Keyword: "Related", Content: "whale sharks", ActionID: trigger.ActionRelated},
	}
	out, _ := d.Dispatch(context.Background(), "doc", triggers)

	if !strings.Contains(out, "[[Marine Biology]]") {
		t.Errorf("missing related links, got:\n%s", out)
	}
}

func TestDispatchTranslatePrompt(t *testing.T) {
	exec := &mockExecutor{}
	cfg := fastCfg()
	cfg.ResponseLength = "short"
	d := trigger.New(&mockLogger{}, trigger.DefaultTable(), exec, nil, nil, cfg)

	triggers := []trigger.Trigger{
		{Keyword: "Translate to French", Content: "good morning", ActionID: trigger.ActionTranslate},
	}
	d.Dispatch(context.Background(), "doc", triggers)

	if len(exec.prompts) != 1 {
		t.Fatalf("expected 1 executor call, got %d", len(exec.prompts))
	}
	p := exec.prompts[0]
	if !strings.Contains(p, "French") || !strings.Contains(p, "good morning") {
		t.Errorf("translate prompt missing language or content: %q", p)
	}
	if !strings.Contains(p, "Keep the response short.") {
		t.Errorf("length instruction missing: %q", p)
	}
}
