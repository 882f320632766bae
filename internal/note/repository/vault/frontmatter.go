package vault

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"gopkg.in/yaml.v3"
)

// noteMeta is the YAML frontmatter block of a vault note file.
type noteMeta struct {
	ID          string    `yaml:"id"`
	Title       string    `yaml:"title"`
	Tags        []string  `yaml:"tags,omitempty"`
	SourceImage string    `yaml:"source_image,omitempty"`
	CreatedAt   time.Time `yaml:"created_at"`
}

// encodeNote renders frontmatter plus body into the on-disk file format.
func encodeNote(meta noteMeta, body string) ([]byte, error) {
	yamlBytes, err := yaml.Marshal(&meta)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(yamlBytes)
	buf.WriteString("---\n\n")
	if strings.TrimSpace(body) != "" {
		buf.WriteString(body)
		if !strings.HasSuffix(body, "\n") {
			buf.WriteString("\n")
		}
	}
	return buf.Bytes(), nil
}

// parseNote splits a vault file into frontmatter and body. Files without a
// frontmatter block come back with zero meta and the whole content as body.
func parseNote(b []byte) (noteMeta, string) {
	s := strings.ReplaceAll(string(b), "\r\n", "\n")
	if !strings.HasPrefix(s, "---\n") {
		return noteMeta{}, s
	}

	parts := strings.SplitN(s, "\n---\n", 2)
	if len(parts) != 2 {
		return noteMeta{}, s
	}

	var meta noteMeta
	yamlPart := strings.TrimPrefix(parts[0], "---\n")
	if err := yaml.Unmarshal([]byte(yamlPart), &meta); err != nil {
		return noteMeta{}, s
	}
	return meta, strings.TrimPrefix(parts[1], "\n")
}

// fileStem builds the "<date>-<slug>-<ulid>" note identifier.
func fileStem(title string, createdAt time.Time) string {
	return fmt.Sprintf("%s-%s-%s", createdAt.Format("2006-01-02"), slugify(title), newULID())
}

func newULID() string {
	return ulid.Make().String()
}

// slugify lowercases and replaces non-alphanumeric runs with single hyphens.
func slugify(s string) string {
	s = strings.TrimSpace(strings.ToLower(s))

	var b strings.Builder
	lastHyphen := false
	for _, r := range s {
		isAlnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if isAlnum {
			b.WriteRune(r)
			lastHyphen = false
		} else if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}

	out := strings.Trim(b.String(), "-")
	if out == "" {
		return "note"
	}
	if len(out) > maxSlugLen {
		out = strings.Trim(out[:maxSlugLen], "-")
	}
	return out
}

// atomicWriteFile writes through a temp file and renames into place.
// Rename is atomic on the same filesystem, so readers never see a
// partially written note.
func atomicWriteFile(path string, data []byte, perm fs.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp := filepath.Join(dir, fmt.Sprintf(".tmp-%d", time.Now().UnixNano()))
	if err := os.WriteFile(tmp, data, perm); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}
