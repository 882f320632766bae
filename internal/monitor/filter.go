package monitor

import (
	"path/filepath"
	"regexp"
	"strings"
)

// defaultExtensions is the allow-list applied when none is configured.
var defaultExtensions = []string{"png", "jpg", "jpeg"}

// fileFilter matches bare filenames against the configured glob and
// extension allow-list.
type fileFilter struct {
	pattern *regexp.Regexp
	exts    map[string]bool
}

func newFileFilter(pattern string, extensions []string) (*fileFilter, error) {
	re, err := compileGlob(pattern)
	if err != nil {
		return nil, err
	}

	if len(extensions) == 0 {
		extensions = defaultExtensions
	}
	exts := make(map[string]bool, len(extensions))
	for _, e := range extensions {
		e = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(e), "."))
		if e != "" {
			exts[e] = true
		}
	}

	return &fileFilter{pattern: re, exts: exts}, nil
}

// Match applies the glob and the extension allow-list to a bare filename.
func (f *fileFilter) Match(name string) bool {
	if !f.pattern.MatchString(name) {
		return false
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	return f.exts[ext]
}

// compileGlob translates a shell-style glob (* and ? only) into an
// anchored case-insensitive regexp over the filename.
func compileGlob(glob string) (*regexp.Regexp, error) {
	if glob == "" {
		glob = "*"
	}

	var b strings.Builder
	b.WriteString(`(?i)^`)
	for _, r := range glob {
		switch r {
		case '*':
			b.WriteString(`.*`)
		case '?':
			b.WriteString(`.`)
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	b.WriteString(`$`)

	return regexp.Compile(b.String())
}
