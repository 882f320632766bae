package memos

import (
	"context"
	"strings"
	"time"

	"inkscan/internal/model"
	"inkscan/internal/note/repository"
	pkgLog "inkscan/pkg/log"
)

type implRepository struct {
	client *Client
	l      pkgLog.Logger
}

// New creates a Memos-backed note repository. Notes become private memos;
// the title rides as a leading heading and tags as a trailing hashtag line.
func New(client *Client, l pkgLog.Logger) repository.NoteRepository {
	return &implRepository{
		client: client,
		l:      l,
	}
}

func (r *implRepository) CreateNote(ctx context.Context, opt repository.CreateNoteOptions) (model.Note, error) {
	req := CreateMemoRequest{
		Content:    buildMemoContent(opt),
		Visibility: "PRIVATE",
	}

	memo, err := r.client.CreateMemo(ctx, req)
	if err != nil {
		r.l.Errorf(ctx, "memos repository: failed to create memo: %v", err)
		return model.Note{}, err
	}

	return memoToNote(memo), nil
}

func (r *implRepository) GetNote(ctx context.Context, id string) (model.Note, error) {
	memo, err := r.client.GetMemo(ctx, id)
	if err != nil {
		return model.Note{}, err
	}
	if memo == nil {
		return model.Note{}, repository.ErrNotFound
	}
	return memoToNote(memo), nil
}

func (r *implRepository) ListNotes(ctx context.Context, opt repository.ListNotesOptions) ([]model.Note, error) {
	limit := opt.Limit
	if limit <= 0 {
		limit = 20
	}

	memos, err := r.client.ListMemos(ctx, opt.Tag, limit, opt.Offset)
	if err != nil {
		return nil, err
	}

	notes := make([]model.Note, 0, len(memos))
	for i := range memos {
		notes = append(notes, memoToNote(&memos[i]))
	}
	return notes, nil
}

// buildMemoContent renders one note as a Memos memo body.
func buildMemoContent(opt repository.CreateNoteOptions) string {
	var sb strings.Builder
	if opt.Title != "" {
		sb.WriteString("# ")
		sb.WriteString(opt.Title)
		sb.WriteString("\n\n")
	}
	sb.WriteString(opt.Content)
	if len(opt.Tags) > 0 {
		sb.WriteString("\n\n")
		for i, tag := range opt.Tags {
			if i > 0 {
				sb.WriteString(" ")
			}
			sb.WriteString("#")
			sb.WriteString(strings.TrimPrefix(tag, "#"))
		}
	}
	return sb.String()
}

// memoToNote converts a Memos API memo back to the internal model, undoing
// the title heading and tag line buildMemoContent added.
func memoToNote(m *Memo) model.Note {
	id := m.Name
	if id == "" {
		id = m.ID
	}

	title, content := splitTitleHeading(m.Content)
	content, tags := splitTagLine(content)

	createdAt, err := time.Parse(time.RFC3339, m.CreateTime)
	if err != nil {
		createdAt = time.Time{}
	}

	return model.Note{
		ID:        id,
		Title:     title,
		Content:   content,
		Tags:      tags,
		CreatedAt: createdAt,
	}
}

// splitTitleHeading pops a leading "# Title" line when present.
func splitTitleHeading(content string) (string, string) {
	if !strings.HasPrefix(content, "# ") {
		return "", content
	}
	line, rest, found := strings.Cut(content, "\n")
	if !found {
		return strings.TrimPrefix(line, "# "), ""
	}
	return strings.TrimPrefix(line, "# "), strings.TrimLeft(rest, "\n")
}

// splitTagLine pops a trailing line made up only of hashtags.
func splitTagLine(content string) (string, []string) {
	trimmed := strings.TrimRight(content, "\n")
	idx := strings.LastIndex(trimmed, "\n")
	lastLine := trimmed[idx+1:]

	fields := strings.Fields(lastLine)
	if len(fields) == 0 {
		return content, nil
	}

	tags := make([]string, 0, len(fields))
	for _, f := range fields {
		if !strings.HasPrefix(f, "#") || len(f) < 2 {
			return content, nil
		}
		tags = append(tags, strings.TrimPrefix(f, "#"))
	}

	if idx == -1 {
		return "", tags
	}
	return strings.TrimRight(trimmed[:idx], "\n"), tags
}
