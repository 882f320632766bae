package usecase

import (
	"context"
	"fmt"

	"inkscan/internal/note/repository"
	"inkscan/internal/taskline"
	"inkscan/internal/trigger"
	pkgLog "inkscan/pkg/log"
)

// filedTasksTag marks notes produced by the tasks trigger so they can be
// listed apart from scanned pages.
const filedTasksTag = "tasks"

type taskFiler struct {
	l         pkgLog.Logger
	repo      repository.NoteRepository
	extractor *taskline.Extractor
}

// NewTaskFiler diverts tasks-trigger list content into its own note of
// normalized task lines instead of the generic AI path.
func NewTaskFiler(l pkgLog.Logger, repo repository.NoteRepository, extractor *taskline.Extractor) trigger.TaskFiler {
	return &taskFiler{
		l:         l,
		repo:      repo,
		extractor: extractor,
	}
}

func (f *taskFiler) File(ctx context.Context, listContent string) (int, error) {
	now := timeNow()
	records := f.extractor.Extract(listContent, now)
	if len(records) == 0 {
		return 0, nil
	}

	content := taskline.FormatLines(records, taskline.FormatOptions{
		ShowPriority: true,
		CreatedAt:    now,
	})

	created, err := f.repo.CreateNote(ctx, repository.CreateNoteOptions{
		Title:   fmt.Sprintf("Filed Tasks %s", now.Format("2006-01-02")),
		Content: content,
		Tags:    []string{filedTasksTag},
	})
	if err != nil {
		f.l.Errorf(ctx, "note.usecase.taskFiler.File.repo.CreateNote: %v", err)
		return 0, err
	}

	f.l.Infof(ctx, "note.usecase.taskFiler: filed %d task(s) into note %s", len(records), created.ID)
	return len(records), nil
}
