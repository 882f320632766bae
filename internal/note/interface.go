package note

import (
	"context"

	"inkscan/internal/model"
)

// UseCase defines the business logic interface for the note domain.
type UseCase interface {
	// ProcessMarkdown runs the full pipeline over sectioned Markdown:
	// task extraction, trigger dispatch, vault write, post steps.
	ProcessMarkdown(ctx context.Context, sc model.Scope, input ProcessMarkdownInput) (ProcessOutput, error)

	// ProcessImage transcribes a page photo into sectioned Markdown via the
	// LLM chain, then continues with ProcessMarkdown.
	ProcessImage(ctx context.Context, sc model.Scope, input ProcessImageInput) (ProcessOutput, error)

	// ProcessFile reads an image file from disk and processes it. Used by
	// the folder monitor as its per-file processor.
	ProcessFile(ctx context.Context, path string) (ProcessOutput, error)

	// Detail returns a single note by ID.
	Detail(ctx context.Context, id string) (DetailOutput, error)

	// List returns stored notes with an optional tag filter.
	List(ctx context.Context, input ListInput) (ListOutput, error)
}
