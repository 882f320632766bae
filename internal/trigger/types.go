package trigger

import "context"

// Trigger is one underline-marked keyword plus its trailing content.
// Keyword preserves the span's original casing for display; a translate
// trigger carries the derived keyword "Translate to <Lang>".
type Trigger struct {
	Keyword  string
	Content  string
	ActionID string
}

// Action is one entry of the action table.
type Action struct {
	Keyword             string
	ID                  string
	RequiresListContent bool
	Enabled             bool
	PromptTemplate      string
}

// Executor runs one AI prompt and returns its text response.
type Executor interface {
	Execute(ctx context.Context, prompt string) (string, error)
}

// TaskFiler diverts a tasks trigger into the task pipeline instead of the
// generic AI path. It returns how many tasks were filed.
type TaskFiler interface {
	File(ctx context.Context, listContent string) (int, error)
}

// RelatedFinder resolves a related-notes trigger into a formatted link list.
type RelatedFinder interface {
	Find(ctx context.Context, content string, tags []string) (string, error)
}

// DispatchStats summarizes one dispatch run.
type DispatchStats struct {
	Dispatched int
	Failed     int
	TasksFiled int
}
