package openaicompat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

type clientImpl struct {
	name       string
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// newClientImpl creates a new OpenAI-compatible implementation
func newClientImpl(cfg Config) *clientImpl {
	return &clientImpl{
		name:       cfg.Name,
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		baseURL:    cfg.BaseURL,
		httpClient: cfg.HTTPClient,
	}
}

// GenerateContent sends a chat completion request
func (c *clientImpl) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	openAIReq := c.transformRequest(req)

	body, err := json.Marshal(openAIReq)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to marshal request: %w", c.name, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/chat/completions", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create request: %w", c.name, err)
	}

	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%s: API call failed: %w", c.name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%s: API error %d: %s", c.name, resp.StatusCode, string(raw))
	}

	var openAIResp openAIResponse
	if err := json.NewDecoder(resp.Body).Decode(&openAIResp); err != nil {
		return nil, fmt.Errorf("%s: failed to decode response: %w", c.name, err)
	}

	return c.transformResponse(&openAIResp), nil
}

// Name returns the configured provider name
func (c *clientImpl) Name() string {
	return c.name
}

// Model returns the model being used
func (c *clientImpl) Model() string {
	return c.model
}

// transformRequest converts the request to OpenAI chat-completions format
func (c *clientImpl) transformRequest(req *Request) *openAIRequest {
	openAIReq := &openAIRequest{
		Model:       c.model,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
		Messages:    make([]openAIMessage, 0, len(req.Messages)+1),
	}

	if req.SystemInstruction != nil {
		systemMsg := transformMessage(req.SystemInstruction)
		systemMsg.Role = "system"
		openAIReq.Messages = append(openAIReq.Messages, systemMsg)
	}

	for i := range req.Messages {
		openAIReq.Messages = append(openAIReq.Messages, transformMessage(&req.Messages[i]))
	}

	return openAIReq
}

func transformMessage(msg *Content) openAIMessage {
	multimodal := false
	for _, part := range msg.Parts {
		if part.InlineData != nil {
			multimodal = true
			break
		}
	}

	if !multimodal {
		content := ""
		for _, part := range msg.Parts {
			if part.Text == "" {
				continue
			}
			if content != "" {
				content += "\n"
			}
			content += part.Text
		}
		return openAIMessage{Role: msg.Role, Content: content}
	}

	parts := make([]openAIContentPart, 0, len(msg.Parts))
	for _, part := range msg.Parts {
		if part.InlineData != nil {
			parts = append(parts, openAIContentPart{
				Type: "image_url",
				ImageURL: &openAIImageURL{
					URL: fmt.Sprintf("data:%s;base64,%s", part.InlineData.MIMEType, part.InlineData.Data),
				},
			})
			continue
		}
		if part.Text != "" {
			parts = append(parts, openAIContentPart{Type: "text", Text: part.Text})
		}
	}
	return openAIMessage{Role: msg.Role, Content: parts}
}

// transformResponse converts an OpenAI response to the neutral format
func (c *clientImpl) transformResponse(resp *openAIResponse) *Response {
	out := &Response{
		Usage: &Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}
	if len(resp.Choices) == 0 {
		return out
	}

	choice := resp.Choices[0]
	message := Content{Role: choice.Message.Role}
	if choice.Message.Content != "" {
		message.Parts = append(message.Parts, Part{Text: choice.Message.Content})
	}

	out.Content = message
	return out
}
