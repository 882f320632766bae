package http

import (
	"errors"

	"inkscan/internal/note"
	pkgErrors "inkscan/pkg/errors"
	"inkscan/pkg/llmprovider"
)

// mapError translates domain/use-case errors into HTTP errors from pkg/errors.
// Use cases wrap provider errors, so matching is by errors.Is.
func (h *handler) mapError(err error) error {
	switch {
	case errors.Is(err, note.ErrEmptyDocument):
		return pkgErrors.NewHTTPError(400, "markdown document is empty")
	case errors.Is(err, note.ErrEmptyImage):
		return pkgErrors.NewHTTPError(400, "image data is empty")
	case errors.Is(err, note.ErrNoteNotFound):
		return pkgErrors.NewHTTPError(404, "note not found")
	case errors.Is(err, note.ErrNoTranscript):
		return pkgErrors.NewHTTPError(422, "transcription produced no transcript section")
	case errors.Is(err, llmprovider.ErrAllProvidersFailed):
		return pkgErrors.NewHTTPError(502, "all transcription providers failed")
	default:
		return pkgErrors.NewHTTPError(500, "internal server error")
	}
}
