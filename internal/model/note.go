package model

import "time"

// Note represents a processed note written to the vault.
type Note struct {
	ID          string    // Stable identifier (vault: filename stem; memos: name field)
	Title       string    // Derived from the Summary section or the source filename
	Path        string    // Vault-relative file path ("" for remote backends)
	Content     string    // Full augmented Markdown content
	Tags        []string  // Detected tags, bare words without '#'
	SourceImage string    // Original scan path when the note came from an image
	CreatedAt   time.Time // Creation time
}
