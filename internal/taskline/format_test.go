package taskline_test

import (
	"testing"
	"time"

	"inkscan/internal/taskline"
)

func TestFormatFixedOrder(t *testing.T) {
	created := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	r := taskline.Record{
		Text:     "Ship release",
		Priority: taskline.PriorityHigh,
		Tags:     []string{"#release", "#q2"},
		Dates: map[taskline.DateRole]time.Time{
			taskline.DateRoleStart:     time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC),
			taskline.DateRoleScheduled: time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC),
			taskline.DateRoleDue:       time.Date(2024, 5, 4, 0, 0, 0, 0, time.UTC),
		},
	}

	got := taskline.Format(r, taskline.FormatOptions{ShowPriority: true, CreatedAt: created})
	want := "- [ ] ⏫ Ship release 🛫 2024-05-02 ⏳ 2024-05-03 📅 2024-05-04 ➕ 2024-05-01 #release #q2"
	if got != want {
		t.Errorf("Format() =\n%q, want\n%q", got, want)
	}
}

func TestFormatPriorityHidden(t *testing.T) {
	r := taskline.Record{Text: "Quiet task", Priority: taskline.PriorityMedium}

	got := taskline.Format(r, taskline.FormatOptions{ShowPriority: false})
	want := "- [ ] Quiet task"
	if got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
}

func TestFormatPriorityGlyphs(t *testing.T) {
	tests := []struct {
		priority taskline.Priority
		glyph    string
	}{
		{taskline.PriorityHigh, taskline.GlyphPriorityHigh},
		{taskline.PriorityMedium, taskline.GlyphPriorityMedium},
		{taskline.PriorityLow, taskline.GlyphPriorityLow},
	}

	for _, tt := range tests {
		r := taskline.Record{Text: "t", Priority: tt.priority}
		got := taskline.Format(r, taskline.FormatOptions{ShowPriority: true})
		want := "- [ ] " + tt.glyph + " t"
		if got != want {
			t.Errorf("Format(%s) = %q, want %q", tt.priority, got, want)
		}
	}
}

func TestFormatLines(t *testing.T) {
	records := []taskline.Record{
		{Text: "first"},
		{Text: "second"},
	}

	got := taskline.FormatLines(records, taskline.FormatOptions{})
	want := "- [ ] first\n- [ ] second"
	if got != want {
		t.Errorf("FormatLines() = %q, want %q", got, want)
	}
}
