package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// CleanJSONBlock removes markdown code fences and any leading prose from a
// JSON response.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		// Skip a language identifier on the first line
		if idx := strings.Index(text, "\n"); idx >= 0 {
			firstLine := text[:idx]
			if len(firstLine) < 20 && !strings.ContainsAny(firstLine, " {[") {
				text = text[idx+1:]
			}
		}
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		text = strings.TrimSpace(text)
	}

	if idx := strings.IndexAny(text, "[{"); idx > 0 {
		text = text[idx:]
	}
	return text
}

// ParseStringList decodes a JSON array of strings, trimming entries and
// dropping empty ones.
func ParseStringList(text string) ([]string, error) {
	var raw []string
	if err := json.Unmarshal([]byte(CleanJSONBlock(text)), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse string list: %w", err)
	}

	out := make([]string, 0, len(raw))
	for _, s := range raw {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out, nil
}
