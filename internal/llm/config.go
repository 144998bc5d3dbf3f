// Package llm provides the language model client used by the content assistant.
package llm

// Provider represents an LLM provider
type Provider string

// ProviderGemini is the Google Gemini provider
const ProviderGemini Provider = "gemini"

// Config holds the model settings for text generation
type Config struct {
	Provider    Provider
	Model       string
	Temperature float32
	MaxTokens   int32
}

// DefaultConfig returns the default Gemini configuration.
func DefaultConfig() *Config {
	return &Config{
		Provider:    ProviderGemini,
		Model:       "gemini-2.5-flash",
		Temperature: 0.7,
		MaxTokens:   1024,
	}
}

// WithModel returns a copy of c using model.
func (c *Config) WithModel(model string) *Config {
	out := *c
	out.Model = model
	return &out
}
