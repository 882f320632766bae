package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"inkscan/internal/model"
	"inkscan/internal/note"
	"inkscan/pkg/gemini"
)

const transcribedMarkdown = `### Transcript
Dentist at nine. Remember the forms.

### Summary
A reminder page about a dentist appointment.

### Tasks
- [ ] bring the forms

### Detected Tags
health`

func TestProcessImage(t *testing.T) {
	ctx := context.Background()
	sc := model.Scope{UserID: "u1", Source: "api"}
	fixedNow(t, time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC))

	t.Run("Empty Image", func(t *testing.T) {
		env := newTestEnv(t)
		_, err := env.uc.ProcessImage(ctx, sc, note.ProcessImageInput{MIMEType: "image/png"})
		if !errors.Is(err, note.ErrEmptyImage) {
			t.Fatalf("expected ErrEmptyImage, got %v", err)
		}
	})

	t.Run("Transcribes And Processes", func(t *testing.T) {
		env := newTestEnv(t)
		env.gemini.response = textResponse(transcribedMarkdown)

		out, err := env.uc.ProcessImage(ctx, sc, note.ProcessImageInput{
			MIMEType:   "image/jpeg",
			Data:       "ZmFrZS1qcGVn",
			SourcePath: "inbox/page1.jpg",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		req := env.gemini.lastReq
		if req == nil {
			t.Fatal("no request reached the provider")
		}
		if req.SystemInstruction == nil || req.SystemInstruction.Parts[0].Text != gemini.TranscriptionSystemPrompt {
			t.Error("transcription system prompt not sent")
		}
		parts := req.Messages[0].Parts
		if len(parts) != 2 || parts[0].Text != gemini.TranscriptionUserPrompt {
			t.Fatalf("unexpected user parts: %+v", parts)
		}
		if parts[1].InlineData == nil || parts[1].InlineData.MIMEType != "image/jpeg" || parts[1].InlineData.Data != "ZmFrZS1qcGVn" {
			t.Errorf("image part wrong: %+v", parts[1].InlineData)
		}
		if req.Temperature != transcribeTemperature {
			t.Errorf("expected temperature %v, got %v", transcribeTemperature, req.Temperature)
		}

		if out.Note.SourceImage != "inbox/page1.jpg" {
			t.Errorf("source image not recorded: %q", out.Note.SourceImage)
		}
		if out.Note.Title != "A reminder page about a dentist appointment." {
			t.Errorf("unexpected title %q", out.Note.Title)
		}
		if out.TasksExtracted != 1 {
			t.Errorf("expected 1 task, got %d", out.TasksExtracted)
		}
	})

	t.Run("Unwraps Code Fence", func(t *testing.T) {
		env := newTestEnv(t)
		env.gemini.response = textResponse("```markdown\n" + transcribedMarkdown + "\n```")

		out, err := env.uc.ProcessImage(ctx, sc, note.ProcessImageInput{
			MIMEType: "image/png",
			Data:     "YQ==",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.TasksExtracted != 1 {
			t.Errorf("fenced markdown not unwrapped, got %+v", out)
		}
	})

	t.Run("No Transcript Section", func(t *testing.T) {
		env := newTestEnv(t)
		env.gemini.response = textResponse("I could not read this page.")

		_, err := env.uc.ProcessImage(ctx, sc, note.ProcessImageInput{
			MIMEType: "image/png",
			Data:     "YQ==",
		})
		if !errors.Is(err, note.ErrNoTranscript) {
			t.Fatalf("expected ErrNoTranscript, got %v", err)
		}
		if len(env.repo.created) != 0 {
			t.Errorf("no note should be written, got %d", len(env.repo.created))
		}
	})

	t.Run("Provider Chain Failure", func(t *testing.T) {
		env := newTestEnv(t)
		env.gemini.err = errors.New("cause_quota")

		_, err := env.uc.ProcessImage(ctx, sc, note.ProcessImageInput{
			MIMEType: "image/png",
			Data:     "YQ==",
		})
		if err == nil {
			t.Fatal("expected error from provider chain")
		}
	})
}
