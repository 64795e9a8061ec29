package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
)

// History backends.
const (
	HistoryMemory = "memory"
	HistoryRedis  = "redis"
	HistorySQLite = "sqlite"
)

// Generative-text providers.
const (
	ProviderNone      = "none"
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
	ProviderOllama    = "ollama"
)

type Config struct {
	Environment string     `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    slog.Level `env:"-"`
	RawLevel    string     `env:"LOG_LEVEL" envDefault:"info"`

	RedisURL       string `env:"REDIS_URL" envDefault:"localhost:6379"`
	HistoryBackend string `env:"HISTORY_BACKEND" envDefault:"memory"`
	SQLitePath     string `env:"SQLITE_PATH" envDefault:"turn-authority.db"`

	LLMProvider     string `env:"LLM_PROVIDER" envDefault:"none"`
	AnthropicAPIKey string `env:"ANTHROPIC_API_KEY"`
	GeminiAPIKey    string `env:"GEMINI_API_KEY"`
	OllamaURL       string `env:"OLLAMA_URL" envDefault:"http://localhost:11434"`
	ModelName       string `env:"MODEL_NAME"`

	ComplicationBaseChance float64 `env:"COMPLICATION_BASE_CHANCE" envDefault:"0.05"`
	ComplicationMaxChance  float64 `env:"COMPLICATION_MAX_CHANCE" envDefault:"0.35"`

	// DiceSeed of zero means seed from the clock.
	DiceSeed int64 `env:"DICE_SEED" envDefault:"0"`
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse env: %w", err)
	}
	cfg.LogLevel = parseLogLevel(cfg.RawLevel)
	cfg.HistoryBackend = strings.ToLower(cfg.HistoryBackend)
	cfg.LLMProvider = strings.ToLower(cfg.LLMProvider)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects combinations that cannot be wired.
func (c *Config) Validate() error {
	switch c.HistoryBackend {
	case HistoryMemory, HistoryRedis, HistorySQLite:
	default:
		return fmt.Errorf("unknown history backend %q", c.HistoryBackend)
	}
	switch c.LLMProvider {
	case ProviderNone, "":
	case ProviderAnthropic:
		if c.AnthropicAPIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY is required for provider %q", c.LLMProvider)
		}
	case ProviderGemini:
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required for provider %q", c.LLMProvider)
		}
	case ProviderOllama:
		if c.ModelName == "" {
			return fmt.Errorf("MODEL_NAME is required for provider %q", c.LLMProvider)
		}
	default:
		return fmt.Errorf("unknown LLM provider %q", c.LLMProvider)
	}
	if c.ComplicationBaseChance < 0 || c.ComplicationMaxChance <= 0 || c.ComplicationBaseChance > c.ComplicationMaxChance {
		return fmt.Errorf("invalid complication chances: base %.2f, max %.2f", c.ComplicationBaseChance, c.ComplicationMaxChance)
	}
	return nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
