package datemath

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// A rule is one (pattern, extractor) pair of the precedence table.
// apply reports whether the rule matched; the returned time is truncated
// to midnight by the caller.
type rule struct {
	name  string
	apply func(p *Parser, phrase string, ref time.Time) (time.Time, bool)
}

// orderedRules is the precedence table. First match wins, so literal words
// are tried before weekday rules and explicit formats come last.
var orderedRules = []rule{
	{name: "literal", apply: applyLiteral},
	{name: "next", apply: applyNext},
	{name: "this", apply: applyThis},
	{name: "offset", apply: applyOffset},
	{name: "ordinal", apply: applyOrdinal},
	{name: "period-end", apply: applyPeriodEnd},
	{name: "bare-weekday", apply: applyBareWeekday},
	{name: "explicit", apply: applyExplicit},
}

// MatchedRule reports the name of the first rule matching the phrase, or ""
// when none does. Used to assert precedence without inspecting dates.
func (p *Parser) MatchedRule(phrase string, ref time.Time) string {
	phrase = canon(phrase)
	ref = ref.In(p.location)
	for _, r := range orderedRules {
		if _, ok := r.apply(p, phrase, ref); ok {
			return r.name
		}
	}
	return ""
}

// canon lowercases, trims and collapses internal whitespace.
func canon(phrase string) string {
	return strings.Join(strings.Fields(strings.ToLower(phrase)), " ")
}

var weekdays = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

var months = map[string]time.Month{
	"january": time.January, "jan": time.January,
	"february": time.February, "feb": time.February,
	"march": time.March, "mar": time.March,
	"april": time.April, "apr": time.April,
	"may":  time.May,
	"june": time.June, "jun": time.June,
	"july": time.July, "jul": time.July,
	"august": time.August, "aug": time.August,
	"september": time.September, "sep": time.September, "sept": time.September,
	"october": time.October, "oct": time.October,
	"november": time.November, "nov": time.November,
	"december": time.December, "dec": time.December,
}

var (
	offsetInRe   = regexp.MustCompile(`^in (\d+) (day|days|week|weeks|month|months)$`)
	offsetFromRe = regexp.MustCompile(`^(\d+) (day|days|week|weeks|month|months) from (?:now|today)$`)
	dayMonthRe   = regexp.MustCompile(`^(\d{1,2})(?:st|nd|rd|th)? ([a-z]+\.?)(?:,? (\d{4}))?$`)
	monthDayRe   = regexp.MustCompile(`^([a-z]+\.?) (\d{1,2})(?:st|nd|rd|th)?(?:,? (\d{4}))?$`)
)

// explicitLayouts are tried strictly, in order, as the final rule.
var explicitLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"02/01/2006",
	"Jan 2, 2006",
	"January 2, 2006",
}

func applyLiteral(_ *Parser, phrase string, ref time.Time) (time.Time, bool) {
	switch phrase {
	case "today", "tonight":
		return ref, true
	case "tomorrow":
		return ref.AddDate(0, 0, 1), true
	case "yesterday":
		return ref.AddDate(0, 0, -1), true
	}
	return time.Time{}, false
}

func applyNext(_ *Parser, phrase string, ref time.Time) (time.Time, bool) {
	if !strings.HasPrefix(phrase, "next ") {
		return time.Time{}, false
	}
	rest := strings.TrimPrefix(phrase, "next ")

	switch rest {
	case "week":
		return ref.AddDate(0, 0, 7), true
	case "month":
		return ref.AddDate(0, 1, 0), true
	case "year":
		return ref.AddDate(1, 0, 0), true
	}

	target, ok := weekdays[rest]
	if !ok {
		return time.Time{}, false
	}
	// "next Monday" said on a Monday means the following Monday, not today.
	daysUntil := int(target - ref.Weekday())
	if daysUntil <= 0 {
		daysUntil += 7
	}
	return ref.AddDate(0, 0, daysUntil), true
}

func applyThis(_ *Parser, phrase string, ref time.Time) (time.Time, bool) {
	if !strings.HasPrefix(phrase, "this ") {
		return time.Time{}, false
	}
	rest := strings.TrimPrefix(phrase, "this ")

	// The current week starts Monday. "this <weekday>" resolves within that
	// week with no forward-rollover guard: the result may be earlier than
	// ref. Intentional, covered by tests.
	monday := ref.AddDate(0, 0, -((int(ref.Weekday()) + 6) % 7))
	if rest == "weekend" {
		return monday.AddDate(0, 0, 5), true
	}
	target, ok := weekdays[rest]
	if !ok {
		return time.Time{}, false
	}
	return monday.AddDate(0, 0, (int(target)+6)%7), true
}

func applyOffset(_ *Parser, phrase string, ref time.Time) (time.Time, bool) {
	m := offsetInRe.FindStringSubmatch(phrase)
	if m == nil {
		m = offsetFromRe.FindStringSubmatch(phrase)
	}
	if m == nil {
		return time.Time{}, false
	}

	amount, _ := strconv.Atoi(m[1])
	switch {
	case strings.HasPrefix(m[2], "day"):
		return ref.AddDate(0, 0, amount), true
	case strings.HasPrefix(m[2], "week"):
		return ref.AddDate(0, 0, amount*7), true
	default:
		return ref.AddDate(0, amount, 0), true
	}
}

func applyOrdinal(p *Parser, phrase string, ref time.Time) (time.Time, bool) {
	var (
		day, year int
		month     time.Month
		ok        bool
	)

	if m := dayMonthRe.FindStringSubmatch(phrase); m != nil {
		// "1st november" / "1st november 2026"
		month, ok = months[strings.TrimSuffix(m[2], ".")]
		if !ok {
			return time.Time{}, false
		}
		day, _ = strconv.Atoi(m[1])
		if m[3] != "" {
			year, _ = strconv.Atoi(m[3])
		}
	} else if m := monthDayRe.FindStringSubmatch(phrase); m != nil {
		// "november 1st" / "november 1st, 2026"
		month, ok = months[strings.TrimSuffix(m[1], ".")]
		if !ok {
			return time.Time{}, false
		}
		day, _ = strconv.Atoi(m[2])
		if m[3] != "" {
			year, _ = strconv.Atoi(m[3])
		}
	} else {
		return time.Time{}, false
	}

	if day < 1 || day > 31 {
		return time.Time{}, false
	}

	hasYear := year != 0
	if !hasYear {
		year = ref.Year()
	}
	t := time.Date(year, month, day, 0, 0, 0, 0, p.location)
	// No year given and the date already passed: roll forward one year.
	if !hasYear && t.Before(p.startOfDay(ref)) {
		t = t.AddDate(1, 0, 0)
	}
	return t, true
}

func applyPeriodEnd(p *Parser, phrase string, ref time.Time) (time.Time, bool) {
	period := ""
	switch {
	case phrase == "eow":
		period = "week"
	case phrase == "eom":
		period = "month"
	case phrase == "eoy":
		period = "year"
	case strings.HasPrefix(phrase, "end of "):
		period = strings.TrimPrefix(strings.TrimPrefix(phrase, "end of "), "the ")
	default:
		return time.Time{}, false
	}

	switch period {
	case "week":
		// Week ends Sunday.
		return ref.AddDate(0, 0, (7-int(ref.Weekday()))%7), true
	case "month":
		return time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, p.location).AddDate(0, 1, -1), true
	case "year":
		return time.Date(ref.Year(), time.December, 31, 0, 0, 0, 0, p.location), true
	}
	return time.Time{}, false
}

func applyBareWeekday(_ *Parser, phrase string, ref time.Time) (time.Time, bool) {
	target, ok := weekdays[phrase]
	if !ok {
		return time.Time{}, false
	}
	// Same-day counts here, unlike the "next <weekday>" form.
	return ref.AddDate(0, 0, (int(target)-int(ref.Weekday())+7)%7), true
}

func applyExplicit(p *Parser, phrase string, _ time.Time) (time.Time, bool) {
	for _, layout := range explicitLayouts {
		if t, err := time.ParseInLocation(layout, phrase, p.location); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
