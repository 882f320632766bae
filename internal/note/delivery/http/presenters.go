package http

import (
	"strings"

	"inkscan/internal/model"
	"inkscan/internal/note"
	"inkscan/internal/taskline"
	pkgErrors "inkscan/pkg/errors"
	"inkscan/pkg/response"
)

// --- Request DTOs ---

type processReq struct {
	Title       string `json:"title"        binding:"max=255"`
	Markdown    string `json:"markdown"     binding:"required"`
	SourceImage string `json:"source_image" binding:"max=1024"`
}

func (r processReq) validate() error { return nil }

func (r processReq) toInput() note.ProcessMarkdownInput {
	return note.ProcessMarkdownInput{
		Title:       r.Title,
		Markdown:    r.Markdown,
		SourceImage: r.SourceImage,
	}
}

// ---

type scanReq struct {
	Title      string `json:"title"       binding:"max=255"`
	MIMEType   string `json:"mime_type"`
	Data       string `json:"data"        binding:"required"`
	SourcePath string `json:"source_path" binding:"max=1024"`
}

func (r scanReq) validate() error {
	if r.MIMEType != "" && !strings.HasPrefix(r.MIMEType, "image/") {
		return pkgErrors.NewHTTPError(400, "mime_type must be an image type")
	}
	return nil
}

func (r scanReq) toInput() note.ProcessImageInput {
	return note.ProcessImageInput{
		Title:      r.Title,
		MIMEType:   r.MIMEType,
		Data:       r.Data,
		SourcePath: r.SourcePath,
	}
}

// ---

type listReq struct {
	Tag    string `form:"tag"`
	Limit  int    `form:"limit"`
	Offset int    `form:"offset"`
}

func (r listReq) validate() error { return nil }

func (r listReq) toInput() note.ListInput {
	limit := r.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if r.Offset < 0 {
		r.Offset = 0
	}
	return note.ListInput{
		Tag:    r.Tag,
		Limit:  limit,
		Offset: r.Offset,
	}
}

// --- Response DTOs ---

type noteResp struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Path        string            `json:"path,omitempty"`
	Content     string            `json:"content"`
	Tags        []string          `json:"tags,omitempty"`
	SourceImage string            `json:"source_image,omitempty"`
	CreatedAt   response.DateTime `json:"created_at"`
}

func newNoteResp(n model.Note) noteResp {
	return noteResp{
		ID:          n.ID,
		Title:       n.Title,
		Path:        n.Path,
		Content:     n.Content,
		Tags:        n.Tags,
		SourceImage: n.SourceImage,
		CreatedAt:   response.DateTime(n.CreatedAt),
	}
}

type taskResp struct {
	Text      string         `json:"text"`
	Priority  string         `json:"priority,omitempty"`
	Tags      []string       `json:"tags,omitempty"`
	Start     *response.Date `json:"start,omitempty"`
	Scheduled *response.Date `json:"scheduled,omitempty"`
	Due       *response.Date `json:"due,omitempty"`
}

func newTaskResp(r taskline.Record) taskResp {
	return taskResp{
		Text:      r.Text,
		Priority:  string(r.Priority),
		Tags:      r.Tags,
		Start:     roleDate(r, taskline.DateRoleStart),
		Scheduled: roleDate(r, taskline.DateRoleScheduled),
		Due:       roleDate(r, taskline.DateRoleDue),
	}
}

func roleDate(r taskline.Record, role taskline.DateRole) *response.Date {
	tm, ok := r.Dates[role]
	if !ok {
		return nil
	}
	d := response.Date(tm)
	return &d
}

type processResp struct {
	Note             noteResp   `json:"note"`
	Tasks            []taskResp `json:"tasks,omitempty"`
	TasksExtracted   int        `json:"tasks_extracted"`
	TasksFiled       int        `json:"tasks_filed"`
	TriggersFound    int        `json:"triggers_found"`
	ActionsSucceeded int        `json:"actions_succeeded"`
	ActionsFailed    int        `json:"actions_failed"`
	CalendarEvents   int        `json:"calendar_events"`
}

func (h *handler) newProcessResp(out note.ProcessOutput) processResp {
	tasks := make([]taskResp, len(out.Tasks))
	for i, r := range out.Tasks {
		tasks[i] = newTaskResp(r)
	}
	return processResp{
		Note:             newNoteResp(out.Note),
		Tasks:            tasks,
		TasksExtracted:   out.TasksExtracted,
		TasksFiled:       out.TasksFiled,
		TriggersFound:    out.TriggersFound,
		ActionsSucceeded: out.ActionsSucceeded,
		ActionsFailed:    out.ActionsFailed,
		CalendarEvents:   out.CalendarEvents,
	}
}

type scanAcceptedResp struct {
	Accepted bool `json:"accepted"`
}

type listResp struct {
	Notes  []noteResp `json:"notes"`
	Count  int        `json:"count"`
	Limit  int        `json:"limit"`
	Offset int        `json:"offset"`
}

func (h *handler) newListResp(in note.ListInput, out note.ListOutput) listResp {
	notes := make([]noteResp, len(out.Notes))
	for i, n := range out.Notes {
		notes[i] = newNoteResp(n)
	}
	return listResp{
		Notes:  notes,
		Count:  out.Count,
		Limit:  in.Limit,
		Offset: in.Offset,
	}
}

type detailResp struct {
	Note noteResp `json:"note"`
}

func (h *handler) newDetailResp(out note.DetailOutput) detailResp {
	return detailResp{Note: newNoteResp(out.Note)}
}
