package llm

import (
	"context"
	"fmt"
	"strings"

	"ai-travel-planner/internal/config"
	"ai-travel-planner/internal/shared"

	openai "github.com/sashabaranov/go-openai"
)

// openAIClient is a client for OpenAI-compatible chat completion APIs.
type openAIClient struct {
	client *openai.Client
	model  string
}

// NewOpenAIClient creates a generator backed by the OpenAI chat completions
// API. A custom base URL allows pointing at any OpenAI-compatible endpoint.
func NewOpenAIClient(cfg *config.Config) Generator {
	clientCfg := openai.DefaultConfig(cfg.OpenAIAPIKey)
	if cfg.OpenAIBaseURL != "" {
		clientCfg.BaseURL = cfg.OpenAIBaseURL
	}
	return &openAIClient{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.OpenAIModel,
	}
}

// Generate sends the prompt with JSON-mode enabled and returns the raw text.
// The API rejects JSON mode unless the word "json" appears in the messages,
// so the system instructions are patched when callers forget.
func (c *openAIClient) Generate(ctx context.Context, prompt, system string) (ContentResponse, error) {
	if !strings.Contains(strings.ToLower(system), "json") {
		system += " (Return only JSON)"
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.2,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return ContentResponse{}, fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return ContentResponse{}, fmt.Errorf("no content generated")
	}

	return ContentResponse{
		Content: resp.Choices[0].Message.Content,
		Usage: shared.TokenUsage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
			Model:            c.model,
		},
	}, nil
}
