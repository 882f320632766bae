package usecase

import (
	"context"
	"fmt"

	"inkscan/internal/model"
	"inkscan/internal/note/repository"
	"inkscan/pkg/gemini"
	"inkscan/pkg/llmprovider"
)

// Mock logger for testing
type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Debugf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Info(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Infof(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Warnf(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Error(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Errorf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Fatalf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) DPanicf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Panic(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Panicf(ctx context.Context, template string, arg ...any)  {}

// Mock Gemini client for testing
type mockGeminiClient struct {
	response *gemini.Response
	err      error
	lastReq  *gemini.Request
	calls    int
}

func (m *mockGeminiClient) GenerateContent(ctx context.Context, req *gemini.Request) (*gemini.Response, error) {
	m.calls++
	m.lastReq = req
	return m.response, m.err
}

func (m *mockGeminiClient) Model() string {
	return "gemini-test"
}

// textResponse wraps text the way the Gemini client returns it.
func textResponse(text string) *gemini.Response {
	return &gemini.Response{
		Content: gemini.Content{Role: "model", Parts: []gemini.Part{{Text: text}}},
		Usage:   &gemini.Usage{},
	}
}

// createManagerFromGeminiClient creates a provider manager with a single
// Gemini provider for testing
func createManagerFromGeminiClient(client gemini.IGemini, logger *mockLogger) *llmprovider.Manager {
	provider := llmprovider.NewGeminiAdapter(client)
	config := &llmprovider.Config{
		FallbackEnabled: false,
		RetryAttempts:   1,
	}
	return llmprovider.NewManager([]llmprovider.Provider{provider}, config, logger)
}

// Mock note repository for testing
type mockRepository struct {
	created   []repository.CreateNoteOptions
	createErr error

	note   model.Note
	getErr error

	notes    []model.Note
	listErr  error
	lastList repository.ListNotesOptions
}

func (m *mockRepository) CreateNote(ctx context.Context, opts repository.CreateNoteOptions) (model.Note, error) {
	if m.createErr != nil {
		return model.Note{}, m.createErr
	}
	m.created = append(m.created, opts)
	createdAt := opts.CreatedAt
	if createdAt.IsZero() {
		createdAt = timeNow()
	}
	return model.Note{
		ID:          fmt.Sprintf("note-%d", len(m.created)),
		Title:       opts.Title,
		Content:     opts.Content,
		Tags:        opts.Tags,
		SourceImage: opts.SourceImage,
		CreatedAt:   createdAt,
	}, nil
}

func (m *mockRepository) GetNote(ctx context.Context, id string) (model.Note, error) {
	if m.getErr != nil {
		return model.Note{}, m.getErr
	}
	return m.note, nil
}

func (m *mockRepository) ListNotes(ctx context.Context, opts repository.ListNotesOptions) ([]model.Note, error) {
	m.lastList = opts
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.notes, nil
}

// Mock post-step collaborators for testing
type mockIndexer struct {
	embedded []string
	err      error
}

func (m *mockIndexer) EmbedNote(ctx context.Context, n model.Note) error {
	m.embedded = append(m.embedded, n.ID)
	return m.err
}

type mockNotifier struct {
	texts []string
	err   error
}

func (m *mockNotifier) Notify(ctx context.Context, text string) error {
	m.texts = append(m.texts, text)
	return m.err
}
