package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	// Remote API
	APIBaseURL string `env:"ZENO_API_URL,required"`

	// Credential storage. Empty means the per-user config dir default.
	TokenFile string `env:"ZENO_TOKEN_FILE"`
}

func Load() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
