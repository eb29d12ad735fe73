package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the configuration for the application.
type Config struct {
	// LLM settings. Provider selects the backend used for all content stages.
	LLMProvider   string `envconfig:"LLM_PROVIDER" default:"openai"`
	OpenAIAPIKey  string `envconfig:"OPENAI_API_KEY"`
	OpenAIModel   string `envconfig:"OPENAI_MODEL" default:"gpt-4o-mini"`
	OpenAIBaseURL string `envconfig:"OPENAI_BASE_URL"`
	GeminiAPIKey  string `envconfig:"GEMINI_API_KEY"`
	GeminiModel   string `envconfig:"GEMINI_MODEL" default:"gemini-1.5-flash"`

	// Flight search (SerpAPI google_flights engine). An empty key disables
	// the flights stage rather than failing startup.
	SerpAPIKey string `envconfig:"SERPAPI_KEY"`
	SerpAPIURL string `envconfig:"SERPAPI_URL" default:"https://serpapi.com/search.json"`

	// HTTP server settings
	HTTPAddr           string   `envconfig:"HTTP_ADDR" default:":8000"`
	CORSAllowOrigins   []string `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000"`
	RateLimitPerMinute int      `envconfig:"RATE_LIMIT_PER_MINUTE" default:"5"`
	AuthSecret         string   `envconfig:"AUTH_SECRET"`

	// Stage metrics database
	DatabasePath string `envconfig:"DATABASE_PATH" default:"data/planner.db"`

	// Telegram settings (optional for the HTTP server, required for the bot)
	TelegramBotToken       string  `envconfig:"TELEGRAM_BOT_TOKEN"`
	TelegramWebhookURL     string  `envconfig:"TELEGRAM_WEBHOOK_URL"`
	TelegramAllowedUserIDs []int64 `envconfig:"TELEGRAM_ALLOWED_USER_IDS"`
	AdminTelegramID        int64   `envconfig:"ADMIN_TELEGRAM_ID"`
}

// Load reads the configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	switch cfg.LLMProvider {
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
		}
	default:
		return nil, fmt.Errorf("unknown LLM_PROVIDER %q (expected openai or gemini)", cfg.LLMProvider)
	}

	return &cfg, nil
}
