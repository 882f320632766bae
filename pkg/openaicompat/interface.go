package openaicompat

import "context"

// IClient defines the interface for an OpenAI-compatible chat API client.
// Qwen and DeepSeek both speak this dialect; the endpoint and model come
// from Config. Implementations are safe for concurrent use.
type IClient interface {
	// GenerateContent sends a chat completion request
	GenerateContent(ctx context.Context, req *Request) (*Response, error)

	// Name returns the configured provider name
	Name() string

	// Model returns the model being used
	Model() string
}

// New creates a new OpenAI-compatible client with the given configuration
func New(cfg Config) (IClient, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return newClientImpl(cfg), nil
}
