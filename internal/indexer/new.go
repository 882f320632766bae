package indexer

import (
	"time"

	"inkscan/internal/note/repository"
	pkgLog "inkscan/pkg/log"
	"inkscan/pkg/qdrant"
	"inkscan/pkg/voyage"
)

const (
	maxRetries     = 3
	initialBackoff = 2 * time.Second
	reindexBatch   = 50
)

// Indexer maintains the vector index behind related-note search. Notes are
// embedded via Voyage and upserted into a Qdrant collection keyed by a
// deterministic UUID derived from the note ID.
type Indexer struct {
	l          pkgLog.Logger
	repo       repository.NoteRepository
	embedder   voyage.IVoyage
	vector     *qdrant.Client
	collection string
	vectorSize int
	backoff    time.Duration
}

// New creates an indexer for the given collection.
func New(l pkgLog.Logger, repo repository.NoteRepository, embedder voyage.IVoyage, vector *qdrant.Client, collection string, vectorSize int) *Indexer {
	return &Indexer{
		l:          l,
		repo:       repo,
		embedder:   embedder,
		vector:     vector,
		collection: collection,
		vectorSize: vectorSize,
		backoff:    initialBackoff,
	}
}

// WithBackoff overrides the retry backoff base.
func (ix *Indexer) WithBackoff(d time.Duration) *Indexer {
	ix.backoff = d
	return ix
}
