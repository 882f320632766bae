package gemini

import "time"

const (
	// DefaultModel balances transcription quality against latency.
	DefaultModel = "gemini-2.5-flash"

	// DefaultAPIURL is the Gemini REST endpoint.
	DefaultAPIURL = "https://generativelanguage.googleapis.com/v1beta"

	// DefaultTimeout bounds one generation round trip. Image transcription
	// runs long, so this is generous.
	DefaultTimeout = 60 * time.Second
)
