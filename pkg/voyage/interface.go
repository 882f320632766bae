package voyage

import (
	"context"
)

// IVoyage defines the interface for Voyage AI embeddings. Documents and
// queries are embedded asymmetrically (input_type), which retrieval
// quality depends on. Implementations are safe for concurrent use.
type IVoyage interface {
	// EmbedDocuments embeds note text for indexing
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)

	// EmbedQuery embeds one search query
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}
