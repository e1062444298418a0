package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"strings"

	env "github.com/Netflix/go-env"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
)

var validate = validator.New()

// Config holds all configuration for the application.
type Config struct {
	// Store selects the MessageRepository implementation.
	Store string `env:"MESSAGES_STORE,default=memory" validate:"oneof=memory sqlite"`

	// DatabasePath is the SQLite DSN, used when Store is sqlite.
	DatabasePath string `env:"MESSAGES_DATABASE_PATH,default=messages.db" validate:"required_if=Store sqlite"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `env:"LOG_LEVEL,default=info" validate:"oneof=debug info warn error"`

	// LogFormat is json or text.
	LogFormat string `env:"LOG_FORMAT,default=json" validate:"oneof=json text"`
}

// Load reads an optional .env file, then configuration from environment
// variables with sensible defaults.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return FromEnviron()
}

// FromEnviron builds a Config from the process environment only.
func FromEnviron() (*Config, error) {
	var cfg Config
	if _, err := env.UnmarshalFromEnviron(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal environment: %w", err)
	}

	cfg.Store = strings.ToLower(cfg.Store)
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks every field against its rules.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Level maps LogLevel to a slog.Level. Unknown values fall back to info.
func (c *Config) Level() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Logger builds a slog.Logger writing to w in the configured format.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.Level()}
	if c.LogFormat == "text" {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}
