package openaicompat

import (
	"fmt"
	"net/http"
)

// Config holds client configuration. BaseURL and Model select the concrete
// provider; Name is used for error prefixes and logging.
type Config struct {
	Name       string
	APIKey     string
	Model      string
	BaseURL    string
	HTTPClient *http.Client
}

// Validate checks required fields and fills defaults.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("openaicompat: APIKey is required")
	}
	if c.BaseURL == "" {
		return fmt.Errorf("openaicompat: BaseURL is required")
	}
	if c.Model == "" {
		return fmt.Errorf("openaicompat: Model is required")
	}
	if c.Name == "" {
		c.Name = "openai"
	}
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: DefaultTimeout}
	}
	return nil
}
