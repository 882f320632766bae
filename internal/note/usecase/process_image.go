package usecase

import (
	"context"
	"strings"

	"inkscan/internal/model"
	"inkscan/internal/note"
	"inkscan/internal/section"
	"inkscan/pkg/gemini"
	"inkscan/pkg/llmprovider"
)

const (
	// transcribeTemperature keeps the model close to the page.
	transcribeTemperature = 0.1
	transcribeMaxTokens   = 4096
)

// ProcessImage transcribes a page photo through the provider chain, then
// hands the sectioned Markdown to ProcessMarkdown.
func (uc *implUseCase) ProcessImage(ctx context.Context, sc model.Scope, input note.ProcessImageInput) (note.ProcessOutput, error) {
	if strings.TrimSpace(input.Data) == "" {
		return note.ProcessOutput{}, note.ErrEmptyImage
	}

	mimeType := input.MIMEType
	if mimeType == "" {
		mimeType = "image/png"
	}

	resp, err := uc.llm.GenerateContent(ctx, &llmprovider.Request{
		SystemInstruction: &llmprovider.Message{
			Role:  "system",
			Parts: []llmprovider.Part{{Text: gemini.TranscriptionSystemPrompt}},
		},
		Messages: []llmprovider.Message{
			{
				Role: "user",
				Parts: []llmprovider.Part{
					{Text: gemini.TranscriptionUserPrompt},
					{Image: &llmprovider.Image{MIMEType: mimeType, Data: input.Data}},
				},
			},
		},
		Temperature: transcribeTemperature,
		MaxTokens:   transcribeMaxTokens,
	})
	if err != nil {
		uc.l.Errorf(ctx, "note.usecase.ProcessImage.llm.GenerateContent: %v", err)
		return note.ProcessOutput{}, err
	}

	markdown := stripCodeFence(resp.Text())
	if !section.Parse(markdown).Has(section.Transcript) {
		uc.l.Errorf(ctx, "note.usecase.ProcessImage: transcription has no Transcript section (provider=%s)", resp.ProviderName)
		return note.ProcessOutput{}, note.ErrNoTranscript
	}

	uc.l.Debugf(ctx, "note.usecase.ProcessImage: transcribed %d chars via %s/%s", len(markdown), resp.ProviderName, resp.ModelName)

	return uc.ProcessMarkdown(ctx, sc, note.ProcessMarkdownInput{
		Title:       input.Title,
		Markdown:    markdown,
		SourceImage: input.SourcePath,
	})
}

// stripCodeFence unwraps a response the model wrapped in ```...``` despite
// the prompt. Content without a fence passes through unchanged.
func stripCodeFence(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return text
	}
	trimmed = strings.TrimPrefix(trimmed, "```markdown")
	trimmed = strings.TrimPrefix(trimmed, "```md")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}
