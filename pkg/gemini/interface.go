package gemini

import "context"

// IGemini is the Gemini REST client surface. Implementations are safe
// for concurrent use; one client is shared across the process.
type IGemini interface {
	// GenerateContent runs one generation round trip. Request parts may
	// mix text and inline image data, which is how page photos get
	// transcribed.
	GenerateContent(ctx context.Context, req *Request) (*Response, error)

	// Model reports the configured model name.
	Model() string
}

// New builds a client from cfg after validating it.
func New(cfg Config) (IGemini, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return newGeminiImpl(cfg), nil
}
