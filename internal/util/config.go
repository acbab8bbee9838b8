// Package util holds the runtime configuration shared across layers.
package util

import (
	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"
)

// Config holds runtime settings and flags.
type Config struct {
	SeedText    string `env:"GUILDHALL_SEED"`
	DSN         string `env:"DATABASE_URL"`
	Theme       string `env:"GUILDHALL_THEME" envDefault:"catppuccin"`
	TextDensity string `env:"GUILDHALL_DENSITY" envDefault:"standard"` // concise|standard|rich
	DataDir     string `env:"GUILDHALL_DATA_DIR" envDefault:"resources"`
}

// Load reads configuration from the environment. Flag values override
// afterwards in main.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "config: parse environment")
	}
	return cfg, nil
}
