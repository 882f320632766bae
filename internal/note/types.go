package note

import (
	"inkscan/internal/model"
	"inkscan/internal/taskline"
)

// ProcessMarkdownInput is the input for processing sectioned Markdown.
type ProcessMarkdownInput struct {
	Title       string // Optional; derived from the Summary section when empty
	Markdown    string // Sectioned Markdown (### Transcript / Summary / Tasks / Detected Tags)
	SourceImage string // Original scan path when the markdown came from an image
}

// ProcessImageInput is the input for processing a page photo.
type ProcessImageInput struct {
	Title      string // Optional; falls back to the source filename, then Summary
	MIMEType   string // e.g. "image/png"
	Data       string // Base64-encoded image bytes
	SourcePath string // Where the image came from, for provenance
}

// ProcessOutput is the result of one pipeline run.
type ProcessOutput struct {
	Note             model.Note
	Tasks            []taskline.Record // Normalized task lines, in document order
	TasksExtracted   int               // Task lines found in the Tasks section
	TasksFiled       int               // Tasks diverted into the filing pipeline by triggers
	TriggersFound    int
	ActionsSucceeded int
	ActionsFailed    int
	CalendarEvents   int // Due-dated tasks mirrored to the calendar
}

// DetailOutput is the result of a single-note lookup.
type DetailOutput struct {
	Note model.Note
}

// ListInput is the input for listing notes.
type ListInput struct {
	Tag    string // Filter by a detected tag (optional)
	Limit  int    // Max results (default 20)
	Offset int    // Pagination offset
}

// ListOutput is the result of listing notes.
type ListOutput struct {
	Notes []model.Note
	Count int
}
