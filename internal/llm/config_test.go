package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, ProviderGemini, config.Provider)
	assert.Equal(t, "gemini-2.5-flash", config.Model)
	assert.InDelta(t, 0.7, config.Temperature, 1e-6)
	assert.Equal(t, int32(1024), config.MaxTokens)
}

func TestWithModel(t *testing.T) {
	config := DefaultConfig()
	custom := config.WithModel("gemini-2.5-pro")

	assert.Equal(t, "gemini-2.5-flash", config.Model)
	assert.Equal(t, "gemini-2.5-pro", custom.Model)
	assert.Equal(t, config.Temperature, custom.Temperature)
}
