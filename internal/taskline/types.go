package taskline

import "time"

// Priority is the extracted urgency level of a task line.
type Priority string

const (
	PriorityNone   Priority = ""
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// DateRole is the semantic meaning of a date attached to a task.
type DateRole string

const (
	DateRoleDue       DateRole = "due"
	DateRoleScheduled DateRole = "scheduled"
	DateRoleStart     DateRole = "start"
)

// Output glyphs. Glyph-to-role mapping and emission order are a wire
// contract with the task-tracking convention other tooling parses;
// do not vary them per record.
const (
	GlyphPriorityHigh   = "⏫"
	GlyphPriorityMedium = "🔼"
	GlyphPriorityLow    = "🔽"
	GlyphStart          = "🛫"
	GlyphScheduled      = "⏳"
	GlyphDue            = "📅"
	GlyphCreated        = "➕"
)

// Record is one normalized task line. Constructed once by the extractor
// and immutable thereafter; text carries no residual priority marker,
// date marker, or hashtag.
type Record struct {
	Text     string
	Priority Priority
	Tags     []string // deduplicated, case-sensitive, leading '#'
	Dates    map[DateRole]time.Time
}

// FormatOptions controls task line rendering.
type FormatOptions struct {
	ShowPriority bool
	CreatedAt    time.Time
}
