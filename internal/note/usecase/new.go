package usecase

import (
	"context"
	"time"

	"inkscan/internal/model"
	"inkscan/internal/note/repository"
	"inkscan/internal/taskline"
	"inkscan/internal/trigger"
	"inkscan/pkg/gcalendar"
	"inkscan/pkg/llmprovider"
	pkgLog "inkscan/pkg/log"
)

// timeNow is swappable in tests.
var timeNow = func() time.Time {
	return time.Now()
}

// Indexer pushes note embeddings into the vector store.
type Indexer interface {
	EmbedNote(ctx context.Context, n model.Note) error
}

// Notifier delivers a short human notice after a note is processed.
type Notifier interface {
	Notify(ctx context.Context, text string) error
}

type implUseCase struct {
	l          pkgLog.Logger
	repo       repository.NoteRepository
	llm        *llmprovider.Manager
	dispatcher *trigger.Dispatcher
	table      *trigger.Table
	extractor  *taskline.Extractor
	calendar   *gcalendar.Client
	indexer    Indexer
	notifier   Notifier
	timezone   string
}

// New creates a new note UseCase instance. calendar, indexer and notifier
// are optional; the pipeline's post steps skip them when nil.
func New(
	l pkgLog.Logger,
	repo repository.NoteRepository,
	llm *llmprovider.Manager,
	dispatcher *trigger.Dispatcher,
	table *trigger.Table,
	extractor *taskline.Extractor,
	calendar *gcalendar.Client,
	indexer Indexer,
	notifier Notifier,
	timezone string,
) *implUseCase {
	return &implUseCase{
		l:          l,
		repo:       repo,
		llm:        llm,
		dispatcher: dispatcher,
		table:      table,
		extractor:  extractor,
		calendar:   calendar,
		indexer:    indexer,
		notifier:   notifier,
		timezone:   timezone,
	}
}
