package datemath

import (
	"errors"
	"fmt"
	"time"
)

// ErrUnparseable is returned when no date rule matches the phrase.
// Callers treat it as "no date extracted", never as a fatal error.
var ErrUnparseable = errors.New("unparseable date phrase")

// ISODateFormat is the canonical output format for normalized dates.
const ISODateFormat = "2006-01-02"

// Parser converts natural-language date phrases to absolute time.Time values.
type Parser struct {
	location *time.Location
}

// NewParser creates a new date parser for the given IANA timezone string,
// e.g. "Europe/Berlin".
func NewParser(timezone string) (*Parser, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return &Parser{location: loc}, nil
}

// Normalize converts a date phrase to an absolute date at local midnight.
// Rules are evaluated in a fixed precedence order; the first match wins.
// The reference time is always injected so results are deterministic.
func (p *Parser) Normalize(phrase string, ref time.Time) (time.Time, error) {
	phrase = canon(phrase)
	if phrase == "" {
		return time.Time{}, ErrUnparseable
	}

	ref = ref.In(p.location)
	for _, r := range orderedRules {
		if t, ok := r.apply(p, phrase, ref); ok {
			return p.startOfDay(t), nil
		}
	}
	return time.Time{}, ErrUnparseable
}

// FormatISO renders a normalized date as YYYY-MM-DD.
func FormatISO(t time.Time) string {
	return t.Format(ISODateFormat)
}

// startOfDay returns midnight at the start of the given day in the parser's timezone.
func (p *Parser) startOfDay(t time.Time) time.Time {
	t = t.In(p.location)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, p.location)
}

// EndOfDay returns 23:59:59 at the end of the given start-of-day time.
func (p *Parser) EndOfDay(startOfDay time.Time) time.Time {
	return startOfDay.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
}
