package related

import (
	"inkscan/internal/note/repository"
	pkgLog "inkscan/pkg/log"
	"inkscan/pkg/qdrant"
	"inkscan/pkg/voyage"
)

const (
	// defaultLimit caps the links returned for one trigger.
	defaultLimit = 5

	// searchLimit is the per-strategy candidate pool before merging.
	searchLimit = 10
)

// Finder locates stored notes related to a trigger's content. Exact tag
// intersection runs against the note repository; semantic search runs
// against Qdrant when an embedder and vector client are configured.
type Finder struct {
	l          pkgLog.Logger
	repo       repository.NoteRepository
	embedder   voyage.IVoyage
	vector     *qdrant.Client
	collection string
	limit      int
}

// New creates a related-note finder. embedder and vector may be nil, which
// disables the semantic strategy and leaves tag matching only.
func New(l pkgLog.Logger, repo repository.NoteRepository, embedder voyage.IVoyage, vector *qdrant.Client, collection string) *Finder {
	return &Finder{
		l:          l,
		repo:       repo,
		embedder:   embedder,
		vector:     vector,
		collection: collection,
		limit:      defaultLimit,
	}
}
