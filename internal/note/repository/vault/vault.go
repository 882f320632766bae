package vault

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"inkscan/internal/model"
	"inkscan/internal/note/repository"
	pkgLog "inkscan/pkg/log"
)

const maxSlugLen = 48

// timeNow is swappable for tests.
var timeNow = func() time.Time { return time.Now() }

type implRepository struct {
	root string
	l    pkgLog.Logger
}

// New creates a filesystem-backed note repository rooted at dir.
func New(root string, l pkgLog.Logger) repository.NoteRepository {
	return &implRepository{
		root: root,
		l:    l,
	}
}

func (r *implRepository) CreateNote(ctx context.Context, opt repository.CreateNoteOptions) (model.Note, error) {
	createdAt := opt.CreatedAt
	if createdAt.IsZero() {
		createdAt = timeNow()
	}

	stem := fileStem(opt.Title, createdAt)
	meta := noteMeta{
		ID:          stem,
		Title:       opt.Title,
		Tags:        opt.Tags,
		SourceImage: opt.SourceImage,
		CreatedAt:   createdAt,
	}

	data, err := encodeNote(meta, opt.Content)
	if err != nil {
		r.l.Errorf(ctx, "vault repository: failed to encode note %q: %v", opt.Title, err)
		return model.Note{}, err
	}

	fileName := stem + ".md"
	if err := atomicWriteFile(filepath.Join(r.root, fileName), data, 0o644); err != nil {
		r.l.Errorf(ctx, "vault repository: failed to write note %q: %v", fileName, err)
		return model.Note{}, err
	}

	return model.Note{
		ID:          stem,
		Title:       opt.Title,
		Path:        fileName,
		Content:     opt.Content,
		Tags:        opt.Tags,
		SourceImage: opt.SourceImage,
		CreatedAt:   createdAt,
	}, nil
}

func (r *implRepository) GetNote(ctx context.Context, id string) (model.Note, error) {
	// The ID is a filename stem; reject anything that escapes the root.
	if id == "" || filepath.Base(id) != id {
		return model.Note{}, repository.ErrNotFound
	}

	fileName := id + ".md"
	data, err := os.ReadFile(filepath.Join(r.root, fileName))
	if err != nil {
		if os.IsNotExist(err) {
			return model.Note{}, repository.ErrNotFound
		}
		return model.Note{}, err
	}

	return r.fileToNote(fileName, data), nil
}

func (r *implRepository) ListNotes(ctx context.Context, opt repository.ListNotesOptions) ([]model.Note, error) {
	limit := opt.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := opt.Offset
	if offset < 0 {
		offset = 0
	}

	entries, err := os.ReadDir(r.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
			continue
		}
		names = append(names, e.Name())
	}
	// Filenames start with the date, so reverse lexical order is
	// newest-first.
	sort.Sort(sort.Reverse(sort.StringSlice(names)))

	notes := make([]model.Note, 0, limit)
	skipped := 0
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(r.root, name))
		if err != nil {
			r.l.Warnf(ctx, "vault repository: skipping unreadable note %q: %v", name, err)
			continue
		}

		n := r.fileToNote(name, data)
		if opt.Tag != "" && !hasTag(n.Tags, opt.Tag) {
			continue
		}
		if skipped < offset {
			skipped++
			continue
		}

		notes = append(notes, n)
		if len(notes) >= limit {
			break
		}
	}
	return notes, nil
}

// fileToNote converts an on-disk file to the internal model. Files missing
// frontmatter still come back with the stem as ID and the raw body.
func (r *implRepository) fileToNote(fileName string, data []byte) model.Note {
	meta, body := parseNote(data)

	stem := strings.TrimSuffix(fileName, ".md")
	if meta.ID == "" {
		meta.ID = stem
	}

	return model.Note{
		ID:          meta.ID,
		Title:       meta.Title,
		Path:        fileName,
		Content:     body,
		Tags:        meta.Tags,
		SourceImage: meta.SourceImage,
		CreatedAt:   meta.CreatedAt,
	}
}

func hasTag(tags []string, want string) bool {
	for _, t := range tags {
		if strings.EqualFold(t, want) {
			return true
		}
	}
	return false
}
