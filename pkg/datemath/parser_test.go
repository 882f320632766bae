package datemath_test

import (
	"errors"
	"testing"
	"time"

	"inkscan/pkg/datemath"
)

func TestNewParser(t *testing.T) {
	_, err := datemath.NewParser("Europe/Berlin")
	if err != nil {
		t.Fatalf("unexpected error creating valid parser: %v", err)
	}

	_, err = datemath.NewParser("Invalid/Timezone")
	if err == nil {
		t.Fatalf("expected error for invalid timezone")
	}
}

func TestNormalize(t *testing.T) {
	parser, _ := datemath.NewParser("UTC")
	ref := time.Date(2024, 5, 1, 15, 30, 0, 0, time.UTC) // Wednesday, May 1, 2024
	day := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}

	tests := []struct {
		name    string
		phrase  string
		want    time.Time
		wantErr bool
	}{
		// literal
		{name: "Today", phrase: "today", want: day(2024, 5, 1)},
		{name: "Tonight", phrase: "tonight", want: day(2024, 5, 1)},
		{name: "Tomorrow", phrase: "tomorrow", want: day(2024, 5, 2)},
		{name: "Yesterday", phrase: "yesterday", want: day(2024, 4, 30)},
		{name: "Mixed case with spaces", phrase: "  ToMoRRow  ", want: day(2024, 5, 2)},

		// next
		{name: "Next Monday from Wednesday", phrase: "next monday", want: day(2024, 5, 6)},
		{name: "Next Wednesday same weekday rolls a week", phrase: "next wednesday", want: day(2024, 5, 8)},
		{name: "Next week", phrase: "next week", want: day(2024, 5, 8)},
		{name: "Next month", phrase: "next month", want: day(2024, 6, 1)},
		{name: "Next year", phrase: "next year", want: day(2025, 5, 1)},

		// "this" resolves within the Monday-started week; past dates are allowed
		{name: "This Monday may be in the past", phrase: "this monday", want: day(2024, 4, 29)},
		{name: "This Friday", phrase: "this friday", want: day(2024, 5, 3)},
		{name: "This weekend is Saturday", phrase: "this weekend", want: day(2024, 5, 4)},

		// offset
		{name: "In 3 days", phrase: "in 3 days", want: day(2024, 5, 4)},
		{name: "In 1 day", phrase: "in 1 day", want: day(2024, 5, 2)},
		{name: "In 2 weeks", phrase: "in 2 weeks", want: day(2024, 5, 15)},
		{name: "In 1 month", phrase: "in 1 month", want: day(2024, 6, 1)},
		{name: "3 days from now", phrase: "3 days from now", want: day(2024, 5, 4)},
		{name: "2 weeks from today", phrase: "2 weeks from today", want: day(2024, 5, 15)},

		// ordinal day/month
		{name: "Day then month ahead of ref", phrase: "1st november", want: day(2024, 11, 1)},
		{name: "Month then day rolls forward a year", phrase: "april 1st", want: day(2025, 4, 1)},
		{name: "Explicit year disables rollover", phrase: "april 1st, 2024", want: day(2024, 4, 1)},
		{name: "Day month year", phrase: "14th february 2025", want: day(2025, 2, 14)},
		{name: "Abbreviated month", phrase: "nov 5th", want: day(2024, 11, 5)},

		// period end
		{name: "End of week is Sunday", phrase: "end of week", want: day(2024, 5, 5)},
		{name: "EOW alias", phrase: "eow", want: day(2024, 5, 5)},
		{name: "End of month", phrase: "end of month", want: day(2024, 5, 31)},
		{name: "End of the month with article", phrase: "end of the month", want: day(2024, 5, 31)},
		{name: "EOM alias", phrase: "eom", want: day(2024, 5, 31)},
		{name: "End of year", phrase: "end of year", want: day(2024, 12, 31)},
		{name: "EOY alias", phrase: "eoy", want: day(2024, 12, 31)},

		// bare weekday: same-day counts
		{name: "Bare Wednesday is today", phrase: "wednesday", want: day(2024, 5, 1)},
		{name: "Bare Friday", phrase: "friday", want: day(2024, 5, 3)},
		{name: "Bare Monday", phrase: "monday", want: day(2024, 5, 6)},

		// explicit formats
		{name: "ISO date", phrase: "2024-12-25", want: day(2024, 12, 25)},
		{name: "US slash date", phrase: "12/25/2024", want: day(2024, 12, 25)},
		{name: "EU slash date", phrase: "25/12/2024", want: day(2024, 12, 25)},
		{name: "Short month name with year", phrase: "Dec 25, 2024", want: day(2024, 12, 25)},
		{name: "Full month name with year", phrase: "December 25, 2024", want: day(2024, 12, 25)},

		// unparseable
		{name: "Vague duration", phrase: "in a few days", wantErr: true},
		{name: "Free text", phrase: "someday soon", wantErr: true},
		{name: "Empty", phrase: "   ", wantErr: true},
		{name: "Unknown weekday", phrase: "next funday", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parser.Normalize(tt.phrase, ref)
			if tt.wantErr {
				if !errors.Is(err, datemath.ErrUnparseable) {
					t.Fatalf("Normalize() error = %v, want ErrUnparseable", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Normalize() unexpected error: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("Normalize() got = %v, want %v", got, tt.want)
			}
		})
	}
}

// Same-weekday "next" always advances a full week.
func TestNormalizeNextMondayOnMonday(t *testing.T) {
	parser, _ := datemath.NewParser("UTC")
	monday := time.Date(2024, 3, 11, 9, 0, 0, 0, time.UTC)

	got, err := parser.Normalize("next Monday", monday)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2024, 3, 18, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

// The parser's timezone decides which calendar day "today" is.
func TestNormalizeTimezoneShift(t *testing.T) {
	parser, err := datemath.NewParser("Asia/Bangkok")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 20:00 UTC is already 03:00 the next day in UTC+7.
	ref := time.Date(2024, 5, 1, 20, 0, 0, 0, time.UTC)
	got, err := parser.Normalize("today", ref)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if datemath.FormatISO(got) != "2024-05-02" {
		t.Errorf("got %s, want 2024-05-02", datemath.FormatISO(got))
	}
}

func TestMatchedRulePrecedence(t *testing.T) {
	parser, _ := datemath.NewParser("UTC")
	ref := time.Date(2024, 5, 1, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		phrase string
		want   string
	}{
		{"today", "literal"},
		{"next monday", "next"},
		{"this friday", "this"},
		{"in 3 days", "offset"},
		{"1st november", "ordinal"},
		{"eom", "period-end"},
		{"monday", "bare-weekday"},
		{"2024-12-25", "explicit"},
		{"gibberish", ""},
	}

	for _, tt := range tests {
		if got := parser.MatchedRule(tt.phrase, ref); got != tt.want {
			t.Errorf("MatchedRule(%q) = %q, want %q", tt.phrase, got, tt.want)
		}
	}
}

func TestFormatISO(t *testing.T) {
	d := time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)
	if got := datemath.FormatISO(d); got != "2024-03-09" {
		t.Errorf("FormatISO() got %s, want 2024-03-09", got)
	}
}

func TestEndOfDay(t *testing.T) {
	parser, _ := datemath.NewParser("UTC")
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	want := time.Date(2024, 5, 1, 23, 59, 59, 0, time.UTC)

	got := parser.EndOfDay(base)
	if !got.Equal(want) {
		t.Errorf("EndOfDay() got = %v, want %v", got, want)
	}
}
