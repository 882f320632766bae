package repository

import (
	"context"

	"inkscan/internal/model"
)

// NoteRepository is the interface for note storage backends. The vault
// backend writes Markdown files; the memos backend talks to a Memos server.
type NoteRepository interface {
	CreateNote(ctx context.Context, opt CreateNoteOptions) (model.Note, error)
	GetNote(ctx context.Context, id string) (model.Note, error)
	ListNotes(ctx context.Context, opt ListNotesOptions) ([]model.Note, error)
}
