package taskline

import (
	"regexp"
	"strings"
	"time"

	"inkscan/pkg/datemath"
)

const (
	// BulletPattern strips a leading bullet or checkbox marker.
	// Example: "- [ ] Task" or "* Task".
	BulletPattern = `^[-*+][ \t]+(?:\[[ xX]\][ \t]*)?`

	// RoleMarkerPattern matches explicit date-role markers.
	RoleMarkerPattern = `(?i)\b(due|scheduled|start):[ \t]*`

	// InlineKeywordPattern matches natural-language date keywords.
	InlineKeywordPattern = `(?i)\b(by|due|on|scheduled|start|begin|starting)[ \t]+`

	// TagPattern matches hashtag tokens.
	TagPattern = `#[A-Za-z0-9][\w/-]*`
)

var (
	bulletRe        = regexp.MustCompile(BulletPattern)
	roleMarkerRe    = regexp.MustCompile(RoleMarkerPattern)
	inlineKeywordRe = regexp.MustCompile(InlineKeywordPattern)
	tagRe           = regexp.MustCompile(TagPattern)
	multiSpaceRe    = regexp.MustCompile(`[ \t]{2,}`)
)

// Longest markers first so "!!!" is never read as three "!" matches.
var priorityMarkers = []struct {
	marker string
	level  Priority
}{
	{"!!!", PriorityHigh},
	{"HIGH:", PriorityHigh},
	{"!!", PriorityMedium},
	{"MEDIUM:", PriorityMedium},
	{"!", PriorityLow},
	{"LOW:", PriorityLow},
}

// inlineRoles maps natural-language keywords to date roles.
var inlineRoles = map[string]DateRole{
	"by":        DateRoleDue,
	"due":       DateRoleDue,
	"on":        DateRoleScheduled,
	"scheduled": DateRoleScheduled,
	"start":     DateRoleStart,
	"begin":     DateRoleStart,
	"starting":  DateRoleStart,
}

// maxPhraseWords bounds the lookahead after an inline keyword. The longest
// supported phrases ("3 days from now", "end of the month") are four words.
const maxPhraseWords = 4

// Extractor converts a Tasks section body into normalized task records.
type Extractor struct {
	dates       *datemath.Parser
	defaultTags []string
}

// NewExtractor creates a task extractor. defaultTags are unioned into every
// record's tags, normalized to carry a leading '#'.
func NewExtractor(dates *datemath.Parser, defaultTags []string) *Extractor {
	return &Extractor{
		dates:       dates,
		defaultTags: defaultTags,
	}
}

// Extract parses each non-empty line of body into a Record. Lines that are
// pure markup produce no record; output order mirrors input order.
func (e *Extractor) Extract(body string, ref time.Time) []Record {
	lines := strings.Split(body, "\n")
	records := make([]Record, 0, len(lines))

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		line = bulletRe.ReplaceAllString(line, "")
		line, priority := stripPriority(line)

		dates := make(map[DateRole]time.Time)
		line = e.extractMarkedDates(line, ref, dates)
		line = e.extractInlineDates(line, ref, dates)

		line, tags := e.extractTags(line)

		// A line that was pure markup produces no record.
		text := strings.TrimSpace(multiSpaceRe.ReplaceAllString(line, " "))
		if text == "" {
			continue
		}

		records = append(records, Record{
			Text:     text,
			Priority: priority,
			Tags:     tags,
			Dates:    dates,
		})
	}

	return records
}

// stripPriority removes a leading priority marker, longest first.
func stripPriority(line string) (string, Priority) {
	upper := strings.ToUpper(line)
	for _, pm := range priorityMarkers {
		if strings.HasPrefix(upper, pm.marker) {
			return strings.TrimSpace(line[len(pm.marker):]), pm.level
		}
	}
	return line, PriorityNone
}

type cutSpan struct {
	start, end int
}

// extractMarkedDates handles the DUE:/SCHEDULED:/START: variant. The phrase
// is bounded by the next marker, the first hashtag, or end of line. At most
// one date per role; an unparseable phrase is left in the text untouched.
func (e *Extractor) extractMarkedDates(line string, ref time.Time, dates map[DateRole]time.Time) string {
	matches := roleMarkerRe.FindAllStringSubmatchIndex(line, -1)
	if matches == nil {
		return line
	}

	var cuts []cutSpan
	for i, m := range matches {
		role := DateRole(strings.ToLower(line[m[2]:m[3]]))
		if _, taken := dates[role]; taken {
			continue
		}

		phraseEnd := len(line)
		if i+1 < len(matches) {
			phraseEnd = matches[i+1][0]
		}

		rest := line[m[1]:phraseEnd]
		for _, end := range wordEnds(rest, maxPhraseWords) {
			phrase := strings.Trim(rest[:end], " \t.,;:!")
			if phrase == "" {
				continue
			}
			t, err := e.dates.Normalize(phrase, ref)
			if err != nil {
				continue
			}

			dates[role] = t
			cuts = append(cuts, cutSpan{m[0], m[1] + end})
			break
		}
	}

	return applyCuts(line, cuts)
}

// extractInlineDates handles the natural-language variant: a keyword
// immediately followed by a date phrase. Candidate phrases are tried
// longest first; a keyword with no parseable phrase is plain text.
func (e *Extractor) extractInlineDates(line string, ref time.Time, dates map[DateRole]time.Time) string {
	matches := inlineKeywordRe.FindAllStringSubmatchIndex(line, -1)
	if matches == nil {
		return line
	}

	var cuts []cutSpan
	claimed := 0
	for _, m := range matches {
		if m[0] < claimed {
			continue
		}
		role := inlineRoles[strings.ToLower(line[m[2]:m[3]])]
		if _, taken := dates[role]; taken {
			continue
		}

		rest := line[m[1]:]
		for _, end := range wordEnds(rest, maxPhraseWords) {
			phrase := strings.Trim(rest[:end], " \t.,;:!")
			if phrase == "" {
				continue
			}
			t, err := e.dates.Normalize(phrase, ref)
			if err != nil {
				continue
			}

			dates[role] = t
			cuts = append(cuts, cutSpan{m[0], m[1] + end})
			claimed = m[1] + end
			break
		}
	}

	return applyCuts(line, cuts)
}

// wordEnds returns byte offsets just past the n-th word of s, longest span
// first. Scanning stops at the first hashtag so tags never join a phrase.
func wordEnds(s string, maxWords int) []int {
	if h := strings.IndexByte(s, '#'); h >= 0 {
		s = s[:h]
	}

	var ends []int
	inWord := false
	for i, r := range s {
		if r == ' ' || r == '\t' {
			if inWord {
				ends = append(ends, i)
				inWord = false
			}
			continue
		}
		inWord = true
	}
	if inWord {
		ends = append(ends, len(s))
	}
	if len(ends) > maxWords {
		ends = ends[:maxWords]
	}
	// longest candidate first
	for i, j := 0, len(ends)-1; i < j; i, j = i+1, j-1 {
		ends[i], ends[j] = ends[j], ends[i]
	}
	return ends
}

// extractTags collects hashtag tokens, strips them, and unions defaults.
func (e *Extractor) extractTags(line string) (string, []string) {
	seen := make(map[string]struct{})
	tags := make([]string, 0, len(e.defaultTags))

	for _, tag := range tagRe.FindAllString(line, -1) {
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}
	line = tagRe.ReplaceAllString(line, "")

	for _, tag := range e.defaultTags {
		if !strings.HasPrefix(tag, "#") {
			tag = "#" + tag
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}

	return line, tags
}

func applyCuts(line string, cuts []cutSpan) string {
	for i := len(cuts) - 1; i >= 0; i-- {
		line = line[:cuts[i].start] + line[cuts[i].end:]
	}
	return line
}
