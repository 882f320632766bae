package llmprovider

import (
	"errors"
	"fmt"
)

var (
	// ErrAllProvidersFailed means every configured provider was tried in
	// order and none produced a transcription.
	ErrAllProvidersFailed = errors.New("all providers failed")

	// ErrNoProvidersConfigured means the manager was built with an empty
	// provider set.
	ErrNoProvidersConfigured = errors.New("no providers configured")
)

// ProviderError tags a failure with the provider that produced it, so
// fallback logs say which backend dropped out.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
