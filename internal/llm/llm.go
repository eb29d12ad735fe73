package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"ai-travel-planner/internal/shared"
)

// ContentResponse contains the generated text and metadata like token usage.
type ContentResponse struct {
	Content string
	Usage   shared.TokenUsage
}

// Generator is an interface for generating JSON content from a prompt.
// The system instructions must ask for JSON-only output; backends enforce a
// JSON response format where the API supports one.
type Generator interface {
	Generate(ctx context.Context, prompt, system string) (ContentResponse, error)
}

// Closer is an interface for closing resources.
type Closer interface {
	Close() error
}

// DecodeJSON parses generator output into a generic JSON value. Models
// routinely wrap their answer in a markdown code fence despite being told not
// to, so fences are stripped before decoding.
func DecodeJSON(content string) (any, error) {
	trimmed := strings.TrimSpace(content)
	if strings.HasPrefix(trimmed, "```") {
		trimmed = strings.TrimPrefix(trimmed, "```json")
		trimmed = strings.TrimPrefix(trimmed, "```")
		trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
		trimmed = strings.TrimSpace(trimmed)
	}

	var value any
	if err := json.Unmarshal([]byte(trimmed), &value); err != nil {
		return nil, fmt.Errorf("failed to decode generator output as JSON: %w", err)
	}
	return value, nil
}
