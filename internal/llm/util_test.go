package llm

import (
	"context"
	"os"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanJSONBlock(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"json code block", "```json\n[\"Go\", \"SQL\"]\n```", `["Go", "SQL"]`},
		{"generic code block", "```\n{\"key\": \"value\"}\n```", `{"key": "value"}`},
		{"plain array", `["Go"]`, `["Go"]`},
		{"preamble", "Here are the skills:\n[\"Go\", \"SQL\"]", `["Go", "SQL"]`},
		{"surrounding whitespace", "  \n[\"Go\"]\n  ", `["Go"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanJSONBlock(tt.input))
		})
	}
}

func TestParseStringList(t *testing.T) {
	got, err := ParseStringList("```json\n[\" Go \", \"\", \"SQL\"]\n```")
	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "SQL"}, got)

	_, err = ParseStringList("Go, SQL")
	assert.Error(t, err)
}

func TestExtractTextFromResponse(t *testing.T) {
	tests := []struct {
		name    string
		resp    *genai.GenerateContentResponse
		want    string
		wantErr bool
	}{
		{"nil response", nil, "", true},
		{"no candidates", &genai.GenerateContentResponse{}, "", true},
		{"no content", &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}}, "", true},
		{
			"joins text parts",
			&genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
				Content: &genai.Content{Parts: []genai.Part{genai.Text("Hello, "), genai.Text("world")}},
			}}},
			"Hello, world",
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := extractTextFromResponse(tt.resp)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewGeminiClient_RequiresKey(t *testing.T) {
	_, err := NewGeminiClient(context.Background(), DefaultConfig(), "")
	assert.Error(t, err)
}

func TestGeminiClient_Live(t *testing.T) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" || testing.Short() {
		t.Skip("GEMINI_API_KEY not set")
	}

	client, err := NewClient(context.Background(), nil, apiKey)
	require.NoError(t, err)
	defer func() { _ = client.Close() }()

	text, err := client.GenerateContent(context.Background(), "Reply with the single word: ready")
	require.NoError(t, err)
	assert.NotEmpty(t, text)
}
