package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the process-wide settings. The JWT secret and database DSN
// are parsed once here and handed to constructors rather than read from the
// environment at the point of use.
type Config struct {
	Port        string `env:"PORT" envDefault:"3000"`
	DatabaseURL string `env:"DATABASE_URL,required,notEmpty"`
	JWTSecret   string `env:"JWT_SECRET,required,notEmpty"`
	ClientURL   string `env:"CLIENT_URL"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &cfg, nil
}
