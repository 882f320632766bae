package monitor

import (
	"context"

	"inkscan/internal/note"
)

// Lister enumerates the watch folder's immediate children.
type Lister interface {
	List(ctx context.Context) ([]Candidate, error)
}

// Processor runs one discovered file through the scan pipeline.
// note.UseCase satisfies this with ProcessFile.
type Processor interface {
	ProcessFile(ctx context.Context, path string) (note.ProcessOutput, error)
}

// PostAction runs after a file is successfully processed, typically
// moving it out of the watch folder.
type PostAction interface {
	Do(ctx context.Context, path string) error
}

// StateStore persists the processing cutoff between runs.
type StateStore interface {
	Load() (State, error)
	Save(State) error
}

// Notifier pushes a short operator-facing message.
type Notifier interface {
	Notify(ctx context.Context, text string) error
}
