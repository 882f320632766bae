package gcalendar

import "time"

// CreateEventRequest is the input for creating a Google Calendar event.
// AllDay events use only the date part of StartTime; task due dates are
// date-only, so the mirror step sets it.
type CreateEventRequest struct {
	CalendarID  string
	Summary     string
	Description string
	StartTime   time.Time
	EndTime     time.Time
	AllDay      bool
	Timezone    string // IANA name, e.g. "Europe/Berlin"
}

// Event is the slice of a calendar event this module cares about.
type Event struct {
	ID          string
	Summary     string
	Description string
	HTMLLink    string
	StartTime   time.Time
	EndTime     time.Time
}

// ListEventsRequest narrows an event listing. Zero TimeMin/TimeMax mean
// an unbounded window; zero MaxResults leaves the API default.
type ListEventsRequest struct {
	CalendarID string
	TimeMin    time.Time
	TimeMax    time.Time
	MaxResults int64
}
