package repository

import "time"

// CreateNoteOptions holds the parameters for storing a processed note.
type CreateNoteOptions struct {
	Title       string    // Note title, used for the filename slug
	Content     string    // Full augmented Markdown body
	Tags        []string  // Bare tag words without '#'
	SourceImage string    // Original scan path, "" when none
	CreatedAt   time.Time // Zero means now
}

// ListNotesOptions holds the parameters for listing stored notes.
type ListNotesOptions struct {
	Tag    string // Filter by a specific tag
	Limit  int    // Max number of results (default 20)
	Offset int    // Pagination offset
}
