package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v9"
	"github.com/joho/godotenv"
)

// Config holds the optional environment settings. The zero-value defaults
// keep the CLI behaviour of a plain blocking download.
type Config struct {
	LogLevel string `env:"METASNAP_LOG_LEVEL" envDefault:"warn"`
	// HTTP client timeout for image downloads, 0 disables it.
	HTTPTimeout time.Duration `env:"METASNAP_HTTP_TIMEOUT" envDefault:"0s"`
	// Listen port for cmd/server.
	Port string `env:"PORT" envDefault:"8080"`
}

// Load loads .env (if present) and parses environment variables into Config.
func Load() (Config, error) {
	// Load .env if available; ignore error if file does not exist
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values env.Parse cannot.
func (c Config) Validate() error {
	if c.HTTPTimeout < 0 {
		return fmt.Errorf("METASNAP_HTTP_TIMEOUT must not be negative, got %s", c.HTTPTimeout)
	}
	if c.Port == "" {
		return fmt.Errorf("PORT must not be empty")
	}
	return nil
}
