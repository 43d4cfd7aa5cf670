package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"denling/internal/storage"
)

// Config carries process-wide settings, all overridable through the
// environment.
type Config struct {
	// DBPath points at the sqlite file; defaults to ~/.denling.db.
	DBPath string `env:"DENLING_DB"`
}

// Load parses the environment and fills in defaults.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.DBPath == "" {
		path, err := storage.DefaultDBPath()
		if err != nil {
			return Config{}, err
		}
		cfg.DBPath = path
	}
	return cfg, nil
}
