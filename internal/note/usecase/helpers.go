package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"inkscan/internal/model"
	"inkscan/internal/note"
	"inkscan/internal/section"
	"inkscan/internal/taskline"
	"inkscan/pkg/gcalendar"
)

const (
	maxTitleLen  = 80
	defaultTitle = "Scanned note"
)

// deriveTitle picks the first non-empty Summary line, truncated to a
// filename-friendly length.
func deriveTitle(doc *section.Document) string {
	summary, ok := doc.Section(section.Summary)
	if !ok {
		return defaultTitle
	}
	for _, line := range strings.Split(summary, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(line, "#*- \t"))
		if line == "" {
			continue
		}
		runes := []rune(line)
		if len(runes) > maxTitleLen {
			line = strings.TrimSpace(string(runes[:maxTitleLen]))
		}
		return line
	}
	return defaultTitle
}

// mimeFromExt maps an image file extension to its MIME type.
func mimeFromExt(ext string) string {
	switch strings.ToLower(ext) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	case ".heic":
		return "image/heic"
	default:
		return "image/png"
	}
}

// mirrorDueDates creates one all-day calendar event per due-dated task
// record. Returns how many events were created; failures log and continue.
func (uc *implUseCase) mirrorDueDates(ctx context.Context, n model.Note, records []taskline.Record) int {
	if uc.calendar == nil {
		return 0
	}

	created := 0
	for _, r := range records {
		due, ok := r.Dates[taskline.DateRoleDue]
		if !ok {
			continue
		}
		if uc.eventExists(ctx, r.Text, due) {
			uc.l.Debugf(ctx, "note.usecase.mirrorDueDates: event for %q already on calendar", r.Text)
			continue
		}

		event, err := uc.calendar.CreateEvent(ctx, gcalendar.CreateEventRequest{
			CalendarID:  "primary",
			Summary:     r.Text,
			Description: fmt.Sprintf("From note %q (%s)", n.Title, n.ID),
			StartTime:   due,
			AllDay:      true,
			Timezone:    uc.timezone,
		})
		if err != nil {
			uc.l.Warnf(ctx, "note.usecase.mirrorDueDates: calendar event failed for %q (non-fatal): %v", r.Text, err)
			continue
		}
		created++
		uc.l.Debugf(ctx, "note.usecase.mirrorDueDates: created event %s", event.HTMLLink)
	}
	return created
}

// eventExists reports whether the due date already carries an event with
// this summary, so re-scanning a page does not duplicate calendar entries.
// Lookup failures count as absent.
func (uc *implUseCase) eventExists(ctx context.Context, summary string, due time.Time) bool {
	events, err := uc.calendar.ListEvents(ctx, gcalendar.ListEventsRequest{
		CalendarID: "primary",
		TimeMin:    due,
		TimeMax:    due.AddDate(0, 0, 1),
	})
	if err != nil {
		uc.l.Debugf(ctx, "note.usecase.eventExists: list failed, assuming absent: %v", err)
		return false
	}
	for _, ev := range events {
		if ev.Summary == summary {
			return true
		}
	}
	return false
}

func (uc *implUseCase) tryEmbedNote(ctx context.Context, n model.Note) {
	if uc.indexer == nil {
		return
	}
	if err := uc.indexer.EmbedNote(ctx, n); err != nil {
		uc.l.Warnf(ctx, "note.usecase.tryEmbedNote: embedding failed for %s (non-fatal): %v", n.ID, err)
	}
}

func (uc *implUseCase) tryNotify(ctx context.Context, sc model.Scope, out note.ProcessOutput) {
	if uc.notifier == nil {
		return
	}

	text := fmt.Sprintf("📝 %s\nTasks: %d", out.Note.Title, out.TasksExtracted)
	if out.TriggersFound > 0 {
		text += fmt.Sprintf("\nActions: %d ok, %d failed", out.ActionsSucceeded, out.ActionsFailed)
	}
	if out.CalendarEvents > 0 {
		text += fmt.Sprintf("\nCalendar: %d event(s)", out.CalendarEvents)
	}
	if sc.Source != "" {
		text += fmt.Sprintf("\nvia %s", sc.Source)
	}

	if err := uc.notifier.Notify(ctx, text); err != nil {
		uc.l.Warnf(ctx, "note.usecase.tryNotify: notification failed (non-fatal): %v", err)
	}
}
