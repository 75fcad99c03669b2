package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the server configuration, loaded from the environment.
type Config struct {
	HTTPAddr         string `env:"HTTP_ADDR" envDefault:":5000"`
	FrontendURL      string `env:"FRONTEND_URL" envDefault:"http://localhost:5173"`
	DefaultTimeLimit int    `env:"DEFAULT_TIME_LIMIT" envDefault:"60"`
}

// Load parses the configuration from environment variables.
func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	return &cfg, nil
}
