package usecase

import (
	"context"
	"strings"

	"inkscan/internal/model"
	"inkscan/internal/note"
	"inkscan/internal/note/repository"
	"inkscan/internal/section"
	"inkscan/internal/taskline"
	"inkscan/internal/trigger"
)

// ProcessMarkdown runs the full pipeline over sectioned Markdown.
//
// Order matters: tasks are normalized first so the stored note carries the
// rewritten Tasks section, then triggers are scanned against the original
// Transcript body and their results appended after everything else.
func (uc *implUseCase) ProcessMarkdown(ctx context.Context, sc model.Scope, input note.ProcessMarkdownInput) (note.ProcessOutput, error) {
	if strings.TrimSpace(input.Markdown) == "" {
		return note.ProcessOutput{}, note.ErrEmptyDocument
	}

	now := timeNow()
	doc := section.Parse(input.Markdown)
	out := note.ProcessOutput{}

	working := doc.Raw()
	var records []taskline.Record
	if body, ok := doc.Section(section.Tasks); ok {
		records = uc.extractor.Extract(body, now)
		if len(records) > 0 {
			formatted := taskline.FormatLines(records, taskline.FormatOptions{
				ShowPriority: true,
				CreatedAt:    now,
			})
			working = doc.Rewrite(section.Tasks, formatted)
		}
	}
	out.Tasks = records
	out.TasksExtracted = len(records)

	// Triggers live in the handwriting itself, so only the Transcript
	// section is scanned.
	var triggers []trigger.Trigger
	if transcript, ok := doc.Section(section.Transcript); ok {
		triggers = trigger.Scan(transcript, uc.table)
	}
	out.TriggersFound = len(triggers)

	augmented, stats := uc.dispatcher.Dispatch(ctx, working, triggers)
	out.ActionsSucceeded = stats.Dispatched
	out.ActionsFailed = stats.Failed
	out.TasksFiled = stats.TasksFiled

	title := strings.TrimSpace(input.Title)
	if title == "" {
		title = deriveTitle(doc)
	}

	created, err := uc.repo.CreateNote(ctx, repository.CreateNoteOptions{
		Title:       title,
		Content:     augmented,
		Tags:        detectedTags(doc),
		SourceImage: input.SourceImage,
	})
	if err != nil {
		uc.l.Errorf(ctx, "note.usecase.ProcessMarkdown.repo.CreateNote: %v", err)
		return note.ProcessOutput{}, err
	}
	out.Note = created

	// Post steps are best-effort: the note is already stored, so a failing
	// mirror, embedding or notice only logs.
	out.CalendarEvents = uc.mirrorDueDates(ctx, created, records)
	uc.tryEmbedNote(ctx, created)
	uc.tryNotify(ctx, sc, out)

	uc.l.Infof(ctx, "note.usecase.ProcessMarkdown: stored note %s source=%s tasks=%d triggers=%d",
		created.ID, sc.Source, out.TasksExtracted, out.TriggersFound)

	return out, nil
}

// detectedTags returns the Detected Tags section as bare tag words.
// Section already reports the absence sentinel as missing.
func detectedTags(doc *section.Document) []string {
	body, ok := doc.Section(section.DetectedTags)
	if !ok {
		return nil
	}
	return section.SplitTagList(body)
}
