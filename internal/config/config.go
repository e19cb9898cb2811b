package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port         string     `envconfig:"PORT" default:"8080"`
	Environment  string     `envconfig:"ENVIRONMENT" default:"development"`
	LogLevelName string     `envconfig:"LOG_LEVEL" default:"info"`
	LogLevel     slog.Level `ignored:"true"`

	// GroqAPIKey is the fallback credential when a request carries none.
	GroqAPIKey  string        `envconfig:"GROQ_API_KEY"`
	GroqBaseURL string        `envconfig:"GROQ_BASE_URL" default:"https://api.groq.com/openai/v1"`
	ModelName   string        `envconfig:"MODEL_NAME" default:"llama-3.3-70b-versatile"`
	LLMTimeout  time.Duration `envconfig:"LLM_TIMEOUT" default:"60s"`

	RedisURL   string        `envconfig:"REDIS_URL" default:"localhost:6379"`
	SessionTTL time.Duration `envconfig:"SESSION_TTL" default:"2h"`
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present; real environment variables win.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg.LogLevel = parseLogLevel(cfg.LogLevelName)

	if cfg.SessionTTL <= 0 {
		return nil, fmt.Errorf("SESSION_TTL must be positive, got %s", cfg.SessionTTL)
	}
	return &cfg, nil
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
