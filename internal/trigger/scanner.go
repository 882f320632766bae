package trigger

import (
	"regexp"
	"strings"
)

const (
	// UnderlinePattern matches the two accepted underline syntaxes:
	// an explicit <u> wrapper or a double-underscore wrapper.
	UnderlinePattern = `(?i)<u>(.+?)</u>|__(.+?)__`

	// TranslatePattern recognizes the translate special-case span.
	TranslatePattern = `(?i)^translate\s+(?:to|into)\s+(\S+)$`
)

var (
	underlineRe = regexp.MustCompile(UnderlinePattern)
	translateRe = regexp.MustCompile(TranslatePattern)
	blankLineRe = regexp.MustCompile(`\n[ \t]*\n`)
	punctRe     = regexp.MustCompile(`^[ \t]*[:\-.][ \t]*`)
)

// Scan finds underline-marked keywords in text and resolves them against
// the action table. Content runs from the span to the next underline span,
// a blank line, or end of text. Non-matching keywords are silently dropped.
//
// A span matching "Translate to <word>" always yields a translate trigger
// with the derived keyword, independent of the table's Translate entry.
func Scan(text string, table *Table) []Trigger {
	spans := underlineRe.FindAllStringSubmatchIndex(text, -1)
	if spans == nil {
		return nil
	}

	var triggers []Trigger
	for i, m := range spans {
		spanText := strings.TrimSpace(spanInner(text, m))
		if spanText == "" {
			continue
		}

		contentEnd := len(text)
		if i+1 < len(spans) {
			contentEnd = spans[i+1][0]
		}
		region := text[m[1]:contentEnd]
		if b := blankLineRe.FindStringIndex(region); b != nil {
			region = region[:b[0]]
		}
		content := strings.TrimSpace(punctRe.ReplaceAllString(region, ""))

		if lang, ok := TranslateTarget(spanText); ok {
			triggers = append(triggers, Trigger{
				Keyword:  "Translate to " + lang,
				Content:  content,
				ActionID: ActionTranslate,
			})
			continue
		}

		action, ok := table.Lookup(strings.Fields(spanText)[0])
		if !ok {
			continue
		}
		if action.RequiresListContent && content == "" {
			continue
		}
		triggers = append(triggers, Trigger{
			Keyword:  spanText,
			Content:  content,
			ActionID: action.ID,
		})
	}
	return triggers
}

// TranslateTarget extracts the target language from a translate span or
// derived keyword. ok is false for anything else.
func TranslateTarget(keyword string) (string, bool) {
	m := translateRe.FindStringSubmatch(strings.TrimSpace(keyword))
	if m == nil {
		return "", false
	}
	lang := strings.Trim(m[1], ":,.;!")
	if lang == "" {
		return "", false
	}
	return lang, true
}

func spanInner(text string, m []int) string {
	if m[2] >= 0 {
		return text[m[2]:m[3]]
	}
	return text[m[4]:m[5]]
}
