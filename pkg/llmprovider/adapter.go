package llmprovider

import (
	"context"

	"inkscan/pkg/gemini"
	"inkscan/pkg/openaicompat"
)

// GeminiAdapter adapts pkg/gemini to the Provider interface
type GeminiAdapter struct {
	client gemini.IGemini
}

// NewGeminiAdapter creates a new Gemini adapter
func NewGeminiAdapter(client gemini.IGemini) *GeminiAdapter {
	return &GeminiAdapter{client: client}
}

// GenerateContent implements Provider interface
func (a *GeminiAdapter) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	geminiReq := &gemini.Request{
		SystemInstruction: convertToGeminiContent(req.SystemInstruction),
		Messages:          convertToGeminiContents(req.Messages),
		Temperature:       req.Temperature,
		MaxTokens:         req.MaxTokens,
	}

	resp, err := a.client.GenerateContent(ctx, geminiReq)
	if err != nil {
		return nil, err
	}

	out := &Response{
		Content:      convertFromGeminiContent(resp.Content),
		ProviderName: a.Name(),
		ModelName:    a.client.Model(),
		Usage:        &Usage{},
	}
	if resp.Usage != nil {
		out.Usage = &Usage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		}
	}
	return out, nil
}

// Name returns provider name
func (a *GeminiAdapter) Name() string {
	return "gemini"
}

// Model returns model name
func (a *GeminiAdapter) Model() string {
	return a.client.Model()
}

// OpenAIAdapter adapts pkg/openaicompat (Qwen, DeepSeek) to the
// Provider interface
type OpenAIAdapter struct {
	client openaicompat.IClient
}

// NewOpenAIAdapter creates a new OpenAI-compatible adapter
func NewOpenAIAdapter(client openaicompat.IClient) *OpenAIAdapter {
	return &OpenAIAdapter{client: client}
}

// GenerateContent implements Provider interface
func (a *OpenAIAdapter) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	compatReq := &openaicompat.Request{
		SystemInstruction: convertToCompatContent(req.SystemInstruction),
		Messages:          convertToCompatContents(req.Messages),
		Temperature:       req.Temperature,
		MaxTokens:         req.MaxTokens,
	}

	resp, err := a.client.GenerateContent(ctx, compatReq)
	if err != nil {
		return nil, err
	}

	out := &Response{
		Content:      convertFromCompatContent(resp.Content),
		ProviderName: a.Name(),
		ModelName:    a.client.Model(),
		Usage:        &Usage{},
	}
	if resp.Usage != nil {
		out.Usage = &Usage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		}
	}
	return out, nil
}

// Name returns provider name
func (a *OpenAIAdapter) Name() string {
	return a.client.Name()
}

// Model returns model name
func (a *OpenAIAdapter) Model() string {
	return a.client.Model()
}

// Conversion helpers for Gemini
func convertToGeminiContent(msg *Message) *gemini.Content {
	if msg == nil {
		return nil
	}
	parts := make([]gemini.Part, len(msg.Parts))
	for i, p := range msg.Parts {
		parts[i] = gemini.Part{Text: p.Text}
		if p.Image != nil {
			parts[i].InlineData = &gemini.InlineData{
				MIMEType: p.Image.MIMEType,
				Data:     p.Image.Data,
			}
		}
	}
	return &gemini.Content{Role: msg.Role, Parts: parts}
}

func convertToGeminiContents(msgs []Message) []gemini.Content {
	contents := make([]gemini.Content, len(msgs))
	for i := range msgs {
		contents[i] = *convertToGeminiContent(&msgs[i])
	}
	return contents
}

func convertFromGeminiContent(content gemini.Content) Message {
	parts := make([]Part, len(content.Parts))
	for i, p := range content.Parts {
		parts[i] = Part{Text: p.Text}
	}
	return Message{Role: content.Role, Parts: parts}
}

// Conversion helpers for OpenAI-compatible providers
func convertToCompatContent(msg *Message) *openaicompat.Content {
	if msg == nil {
		return nil
	}
	parts := make([]openaicompat.Part, len(msg.Parts))
	for i, p := range msg.Parts {
		parts[i] = openaicompat.Part{Text: p.Text}
		if p.Image != nil {
			parts[i].InlineData = &openaicompat.InlineData{
				MIMEType: p.Image.MIMEType,
				Data:     p.Image.Data,
			}
		}
	}
	return &openaicompat.Content{Role: msg.Role, Parts: parts}
}

func convertToCompatContents(msgs []Message) []openaicompat.Content {
	contents := make([]openaicompat.Content, len(msgs))
	for i := range msgs {
		contents[i] = *convertToCompatContent(&msgs[i])
	}
	return contents
}

func convertFromCompatContent(content openaicompat.Content) Message {
	parts := make([]Part, len(content.Parts))
	for i, p := range content.Parts {
		parts[i] = Part{Text: p.Text}
	}
	return Message{Role: content.Role, Parts: parts}
}
