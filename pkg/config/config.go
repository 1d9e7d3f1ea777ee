// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds the runtime configuration for the account service.
type Config struct {
	// Port the HTTP server listens on.
	Port string `env:"PORT" env-default:"4000"`

	// FrontendOrigin is the single origin allowed by CORS.
	FrontendOrigin string `env:"FRONTEND_ORIGIN" env-default:"http://localhost:3000"`

	// DatabasePath is the SQLite database file location.
	DatabasePath string `env:"DATABASE_PATH" env-default:"data.sqlite"`

	// UploadsDir is the directory holding uploaded avatar images.
	UploadsDir string `env:"UPLOADS_DIR" env-default:"uploads"`

	// PublicBaseURL overrides the base used when building avatar URLs.
	// When empty, URLs point at localhost on the configured port.
	PublicBaseURL string `env:"PUBLIC_BASE_URL"`

	// Debug switches logging to debug level.
	Debug bool `env:"DEBUG" env-default:"false"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	return &cfg, nil
}

// Addr returns the listen address in :port form.
func (c *Config) Addr() string {
	return ":" + c.Port
}

// BaseURL returns the base URL avatar links are built from, without a
// trailing slash.
func (c *Config) BaseURL() string {
	if c.PublicBaseURL != "" {
		return strings.TrimRight(c.PublicBaseURL, "/")
	}
	return "http://localhost:" + c.Port
}
