package openaicompat

// Request is the provider-neutral generation request.
type Request struct {
	SystemInstruction *Content
	Messages          []Content
	Temperature       float64
	MaxTokens         int
}

// Content wraps a list of Part objects to form a message.
type Content struct {
	Role  string
	Parts []Part
}

// Part holds a text segment or inline binary data (vision input).
type Part struct {
	Text       string
	InlineData *InlineData
}

// InlineData carries base64-encoded media for multimodal requests.
// It is sent on the wire as a data URL image part.
type InlineData struct {
	MIMEType string
	Data     string
}

// Response is the provider-neutral generation response.
type Response struct {
	Content Content
	Usage   *Usage
}

// Usage reports token accounting for one generation.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// Text returns the concatenated text parts of the response.
func (r *Response) Text() string {
	out := ""
	for _, p := range r.Content.Parts {
		out += p.Text
	}
	return out
}

// OpenAI chat-completions wire format. Message content is a plain string
// for text-only messages and a typed part array for multimodal ones.

type openAIRequest struct {
	Model       string          `json:"model"`
	Messages    []openAIMessage `json:"messages"`
	Temperature float64         `json:"temperature,omitempty"`
	MaxTokens   int             `json:"max_tokens,omitempty"`
}

type openAIMessage struct {
	Role    string      `json:"role"`
	Content interface{} `json:"content"`
}

type openAIContentPart struct {
	Type     string          `json:"type"`
	Text     string          `json:"text,omitempty"`
	ImageURL *openAIImageURL `json:"image_url,omitempty"`
}

type openAIImageURL struct {
	URL string `json:"url"`
}

type openAIResponse struct {
	ID      string         `json:"id"`
	Object  string         `json:"object"`
	Created int64          `json:"created"`
	Model   string         `json:"model"`
	Choices []openAIChoice `json:"choices"`
	Usage   openAIUsage    `json:"usage"`
}

type openAIChoice struct {
	Index        int                 `json:"index"`
	Message      openAIChoiceMessage `json:"message"`
	FinishReason string              `json:"finish_reason"`
}

type openAIChoiceMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}
