package config

import (
	"testing"
)

func TestLoad(t *testing.T) {
	t.Run("OpenAI", func(t *testing.T) {
		t.Setenv("LLM_PROVIDER", "openai")
		t.Setenv("OPENAI_API_KEY", "openai_key")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if cfg.OpenAIAPIKey != "openai_key" {
			t.Errorf("Expected OpenAIAPIKey to be 'openai_key', got '%s'", cfg.OpenAIAPIKey)
		}
		if cfg.OpenAIModel != "gpt-4o-mini" {
			t.Errorf("Expected default model 'gpt-4o-mini', got '%s'", cfg.OpenAIModel)
		}
		if cfg.HTTPAddr != ":8000" {
			t.Errorf("Expected default addr ':8000', got '%s'", cfg.HTTPAddr)
		}
		if cfg.RateLimitPerMinute != 5 {
			t.Errorf("Expected default rate limit 5, got %d", cfg.RateLimitPerMinute)
		}
	})

	t.Run("MissingOpenAIKey", func(t *testing.T) {
		t.Setenv("LLM_PROVIDER", "openai")
		t.Setenv("OPENAI_API_KEY", "")

		if _, err := Load(); err == nil {
			t.Fatal("Expected an error for missing OPENAI_API_KEY, got nil")
		}
	})

	t.Run("Gemini", func(t *testing.T) {
		t.Setenv("LLM_PROVIDER", "gemini")
		t.Setenv("GEMINI_API_KEY", "gemini_key")
		t.Setenv("OPENAI_API_KEY", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if cfg.GeminiAPIKey != "gemini_key" {
			t.Errorf("Expected GeminiAPIKey to be 'gemini_key', got '%s'", cfg.GeminiAPIKey)
		}
	})

	t.Run("UnknownProvider", func(t *testing.T) {
		t.Setenv("LLM_PROVIDER", "llama-at-home")

		if _, err := Load(); err == nil {
			t.Fatal("Expected an error for unknown provider, got nil")
		}
	})
}
