package llm

import "fmt"

// Config holds the connection settings for an OpenAI-compatible chat
// completion endpoint. Any provider exposing that API shape works; the
// defaults in internal/config point at x.ai.
type Config struct {
	APIKey      string  `json:"api_key"`
	APIURL      string  `json:"api_url"`
	Model       string  `json:"model"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
	// Timeout is the per-call timeout in seconds. Exceeding it is a
	// transport failure from the caller's point of view.
	Timeout int    `json:"timeout"`
	AppName string `json:"app_name"`
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("API key is required")
	}
	if c.APIURL == "" {
		return fmt.Errorf("API URL is required")
	}
	if c.Model == "" {
		return fmt.Errorf("model is required")
	}
	return nil
}

// GetHeaders returns the HTTP headers for API requests.
func (c *Config) GetHeaders() map[string]string {
	headers := map[string]string{
		"Authorization": "Bearer " + c.APIKey,
		"Content-Type":  "application/json",
	}
	if c.AppName != "" {
		headers["X-Title"] = c.AppName
	}
	return headers
}
