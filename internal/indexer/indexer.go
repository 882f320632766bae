package indexer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"inkscan/internal/model"
	"inkscan/internal/note/repository"
	"inkscan/internal/section"
	"inkscan/pkg/qdrant"
)

// EnsureCollection creates the Qdrant collection if it is not there yet.
// Failures only warn; a broken vector store must not block note processing.
func (ix *Indexer) EnsureCollection(ctx context.Context) {
	exists, err := ix.vector.CollectionExists(ctx, ix.collection)
	if err != nil {
		ix.l.Warnf(ctx, "indexer: check collection %s: %v", ix.collection, err)
	} else if exists {
		return
	}

	err = ix.vector.CreateCollection(ctx, ix.collection, qdrant.VectorConfig{
		Size:     ix.vectorSize,
		Distance: "Cosine",
	})
	if err != nil {
		ix.l.Warnf(ctx, "indexer: create collection %s: %v", ix.collection, err)
	}
}

// EmbedNote embeds one note into the vector index with retry and
// exponential backoff. Indexing is best effort; callers log and move on.
func (ix *Indexer) EmbedNote(ctx context.Context, n model.Note) error {
	text := buildEmbeddingText(n)
	backoff := ix.backoff

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		if err := ix.embedOnce(ctx, n, text); err != nil {
			lastErr = err
			ix.l.Warnf(ctx, "indexer: embed note %s failed (retry %d/%d): %v", n.ID, attempt, maxRetries, err)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
			continue
		}
		ix.l.Infof(ctx, "indexer: embedded note %s", n.ID)
		return nil
	}
	return fmt.Errorf("embed note %s after %d retries: %w", n.ID, maxRetries, lastErr)
}

func (ix *Indexer) embedOnce(ctx context.Context, n model.Note, text string) error {
	vectors, err := ix.embedder.EmbedDocuments(ctx, []string{text})
	if err != nil {
		return fmt.Errorf("generate embedding: %w", err)
	}
	if len(vectors) == 0 {
		return fmt.Errorf("embedder returned no vectors")
	}

	point := qdrant.Point{
		ID:     noteIDToUUID(n.ID),
		Vector: vectors[0],
		Payload: map[string]interface{}{
			"note_id":    n.ID,
			"title":      n.Title,
			"tags":       n.Tags,
			"path":       n.Path,
			"created_at": n.CreatedAt.Format(time.RFC3339),
		},
	}

	if err := ix.vector.UpsertPoints(ctx, ix.collection, []qdrant.Point{point}); err != nil {
		return fmt.Errorf("upsert point: %w", err)
	}
	return nil
}

// ReindexAll walks every stored note and re-embeds it. Per-note failures
// are logged and skipped so one bad note cannot stall a full rebuild.
func (ix *Indexer) ReindexAll(ctx context.Context) (int, int, error) {
	var indexed, failed int

	offset := 0
	for {
		notes, err := ix.repo.ListNotes(ctx, repository.ListNotesOptions{
			Limit:  reindexBatch,
			Offset: offset,
		})
		if err != nil {
			return indexed, failed, fmt.Errorf("list notes at offset %d: %w", offset, err)
		}
		if len(notes) == 0 {
			break
		}

		for _, n := range notes {
			if err := ix.EmbedNote(ctx, n); err != nil {
				ix.l.Errorf(ctx, "indexer: reindex %s: %v", n.ID, err)
				failed++
				continue
			}
			indexed++
		}

		if len(notes) < reindexBatch {
			break
		}
		offset += len(notes)
	}

	ix.l.Infof(ctx, "indexer: reindex complete: %d indexed, %d failed", indexed, failed)
	return indexed, failed, nil
}

// buildEmbeddingText keeps the embedding dense: title, tags, and the
// Summary section rather than the full augmented document.
func buildEmbeddingText(n model.Note) string {
	var parts []string
	if n.Title != "" {
		parts = append(parts, n.Title)
	}
	if len(n.Tags) > 0 {
		parts = append(parts, strings.Join(n.Tags, " "))
	}

	doc := section.Parse(n.Content)
	if body, ok := doc.Section(section.Summary); ok {
		parts = append(parts, body)
	} else if body, ok := doc.Section(section.Transcript); ok {
		parts = append(parts, truncate(body, 600))
	} else if n.Content != "" {
		parts = append(parts, truncate(n.Content, 600))
	}
	return strings.Join(parts, "\n")
}

// noteIDToUUID maps arbitrary note IDs onto the UUID point IDs Qdrant
// requires. UUID v5 keeps it deterministic so re-embedding overwrites.
func noteIDToUUID(noteID string) string {
	return uuid.NewSHA1(uuid.NameSpaceDNS, []byte(noteID)).String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
