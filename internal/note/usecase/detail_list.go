package usecase

import (
	"context"
	"errors"

	"inkscan/internal/note"
	"inkscan/internal/note/repository"
)

const defaultListLimit = 20

// Detail returns a single note by ID.
func (uc *implUseCase) Detail(ctx context.Context, id string) (note.DetailOutput, error) {
	n, err := uc.repo.GetNote(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return note.DetailOutput{}, note.ErrNoteNotFound
		}
		uc.l.Errorf(ctx, "note.usecase.Detail.repo.GetNote: %v", err)
		return note.DetailOutput{}, err
	}
	return note.DetailOutput{Note: n}, nil
}

// List returns stored notes, newest first, with an optional tag filter.
func (uc *implUseCase) List(ctx context.Context, input note.ListInput) (note.ListOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	notes, err := uc.repo.ListNotes(ctx, repository.ListNotesOptions{
		Tag:    input.Tag,
		Limit:  limit,
		Offset: input.Offset,
	})
	if err != nil {
		uc.l.Errorf(ctx, "note.usecase.List.repo.ListNotes: %v", err)
		return note.ListOutput{}, err
	}

	return note.ListOutput{
		Notes: notes,
		Count: len(notes),
	}, nil
}
