package section

import (
	"regexp"
	"strings"
)

// Canonical section names produced by the transcription prompt. Additional
// headings are allowed and pass through verbatim.
const (
	Transcript   = "Transcript"
	Summary      = "Summary"
	Tasks        = "Tasks"
	DetectedTags = "Detected Tags"

	// NoneIdentified is the absence sentinel: a section whose trimmed body
	// equals it (case-insensitive) is treated as absent, not empty.
	NoneIdentified = "none identified."

	// HeadingPattern matches a level-3 heading line and captures the name.
	// Deeper headings (####) do not match.
	HeadingPattern = `^###[ \t]+(.+?)[ \t]*$`
)

var headingRe = regexp.MustCompile(HeadingPattern)

// span is one named section: heading line plus the half-open body line range.
type span struct {
	name      string
	bodyStart int
	bodyEnd   int
}

// Document is a parsed Markdown document with named level-3 sections.
type Document struct {
	raw      string
	lines    []string
	sections []span
}

// Parse splits markdown into named sections by forward-scanning level-3
// headings. The body of a section runs to the next heading or end of input.
func Parse(markdown string) *Document {
	lines := strings.Split(markdown, "\n")
	doc := &Document{raw: markdown, lines: lines}

	for i, line := range lines {
		m := headingRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		if n := len(doc.sections); n > 0 {
			doc.sections[n-1].bodyEnd = i
		}
		doc.sections = append(doc.sections, span{name: m[1], bodyStart: i + 1, bodyEnd: len(lines)})
	}
	return doc
}

// Section returns the trimmed body of the named section. The lookup is
// case-insensitive. Missing sections and bodies equal to the absence
// sentinel report ok=false, never an error.
func (d *Document) Section(name string) (string, bool) {
	s, ok := d.find(name)
	if !ok {
		return "", false
	}
	body := strings.TrimSpace(strings.Join(d.lines[s.bodyStart:s.bodyEnd], "\n"))
	if strings.EqualFold(body, NoneIdentified) {
		return "", false
	}
	return body, true
}

// Has reports whether the named heading exists, regardless of its body.
func (d *Document) Has(name string) bool {
	_, ok := d.find(name)
	return ok
}

// Rewrite replaces the named section's body and returns the whole document.
// The receiver is not modified; an unknown name returns the input unchanged.
func (d *Document) Rewrite(name, body string) string {
	s, ok := d.find(name)
	if !ok {
		return d.raw
	}

	out := make([]string, 0, len(d.lines))
	out = append(out, d.lines[:s.bodyStart]...)
	out = append(out, strings.Split(strings.TrimRight(body, "\n"), "\n")...)
	if s.bodyEnd < len(d.lines) {
		// Keep one blank line before the next heading.
		out = append(out, "")
	}
	out = append(out, d.lines[s.bodyEnd:]...)
	return strings.Join(out, "\n")
}

// Raw returns the original markdown the document was parsed from.
func (d *Document) Raw() string {
	return d.raw
}

func (d *Document) find(name string) (span, bool) {
	for _, s := range d.sections {
		if strings.EqualFold(s.name, name) {
			return s, true
		}
	}
	return span{}, false
}

// SplitTagList parses a Detected Tags body: comma-separated bare words,
// no leading '#'. Empty entries are dropped.
func SplitTagList(body string) []string {
	parts := strings.Split(body, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(p), "#"))
		if p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}
