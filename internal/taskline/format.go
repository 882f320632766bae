package taskline

import (
	"strings"

	"inkscan/pkg/datemath"
)

// Format renders one record as a task-tracking markup line. Emission order
// is fixed: checkbox, priority glyph, text, start, scheduled, due, created
// stamp, tags.
func Format(r Record, opt FormatOptions) string {
	parts := []string{"- [ ]"}

	if opt.ShowPriority {
		switch r.Priority {
		case PriorityHigh:
			parts = append(parts, GlyphPriorityHigh)
		case PriorityMedium:
			parts = append(parts, GlyphPriorityMedium)
		case PriorityLow:
			parts = append(parts, GlyphPriorityLow)
		}
	}

	if r.Text != "" {
		parts = append(parts, r.Text)
	}

	if t, ok := r.Dates[DateRoleStart]; ok {
		parts = append(parts, GlyphStart+" "+datemath.FormatISO(t))
	}
	if t, ok := r.Dates[DateRoleScheduled]; ok {
		parts = append(parts, GlyphScheduled+" "+datemath.FormatISO(t))
	}
	if t, ok := r.Dates[DateRoleDue]; ok {
		parts = append(parts, GlyphDue+" "+datemath.FormatISO(t))
	}

	if !opt.CreatedAt.IsZero() {
		parts = append(parts, GlyphCreated+" "+datemath.FormatISO(opt.CreatedAt))
	}

	parts = append(parts, r.Tags...)
	return strings.Join(parts, " ")
}

// FormatLines renders records as one line each, in order.
func FormatLines(records []Record, opt FormatOptions) string {
	lines := make([]string, 0, len(records))
	for _, r := range records {
		lines = append(lines, Format(r, opt))
	}
	return strings.Join(lines, "\n")
}
