package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/spetersoncode/stylist"
	"github.com/spetersoncode/stylist/prompt"
)

// Config holds the server configuration loaded from environment variables.
type Config struct {
	// Server
	Port            string
	LogLevel        string // debug, info, warn, error
	LogFormat       string // text, json
	ShutdownTimeout time.Duration

	// Provider selection
	Provider  string
	Model     string
	Template  string
	MaxTokens int
	BaseURL   string

	// API Keys
	AnthropicKey string
	OpenAIKey    string
	GoogleKey    string
}

// LoadConfig loads configuration from environment variables.
// It loads a .env file if present (silent fail if not found).
// Missing API keys are not an error here; they are reported per request.
func LoadConfig() (*Config, error) {
	godotenv.Load() // Load .env file if present

	cfg := &Config{
		Port:            getEnvOrDefault("PORT", "8000"),
		LogLevel:        getEnvOrDefault("STYLIST_LOG_LEVEL", "info"),
		LogFormat:       getEnvOrDefault("STYLIST_LOG_FORMAT", "text"),
		ShutdownTimeout: getEnvDurationOrDefault("STYLIST_SHUTDOWN_TIMEOUT", 30*time.Second),
		Provider:        getEnvOrDefault("STYLIST_PROVIDER", string(stylist.ProviderAnthropic)),
		Model:           os.Getenv("STYLIST_MODEL"),
		Template:        getEnvOrDefault("STYLIST_TEMPLATE", prompt.IDStyled),
		MaxTokens:       getEnvIntOrDefault("STYLIST_MAX_TOKENS", 0),
		BaseURL:         os.Getenv("STYLIST_BASE_URL"),
		AnthropicKey:    os.Getenv("ANTHROPIC_API_KEY"),
		OpenAIKey:       os.Getenv("OPENAI_API_KEY"),
		GoogleKey:       os.Getenv("GOOGLE_API_KEY"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that the configured names are known.
func (c *Config) Validate() error {
	if _, ok := stylist.ParseProvider(c.Provider); !ok {
		return fmt.Errorf("unknown provider: %s (must be anthropic, openai, or google)", c.Provider)
	}
	if _, ok := prompt.Lookup(c.Template); !ok {
		return fmt.Errorf("unknown template: %s (must be one of %s)", c.Template, strings.Join(prompt.IDs(), ", "))
	}
	if c.MaxTokens < 0 {
		return fmt.Errorf("STYLIST_MAX_TOKENS must not be negative")
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format: %s (must be text or json)", c.LogFormat)
	}
	return nil
}

// SlogLevel maps LogLevel onto a slog level. Unknown values mean info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
