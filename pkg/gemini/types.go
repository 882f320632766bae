package gemini

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
