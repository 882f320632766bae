package note

import "errors"

// Domain-specific errors for the note package.
var (
	ErrEmptyDocument = errors.New("document is empty")
	ErrEmptyImage    = errors.New("image data is empty")
	ErrNoTranscript  = errors.New("transcription produced no transcript section")
	ErrNoteNotFound  = errors.New("note not found")
)
