// Package config loads dashboard settings from the environment and an optional .env file.
package config

import (
	"errors"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds the complete application configuration.
type Config struct {
	Addr            string        `env:"ADDR" envDefault:":8080"`
	MaxUploadMB     int64         `env:"MAX_UPLOAD_MB" envDefault:"10"`
	LogDir          string        `env:"LOG_DIR"`
	Verbose         bool          `env:"VERBOSE"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	PushURL         string        `env:"PUSH_URL"`
	// ExcludedSolutions overrides the built-in excluded solutions when set.
	ExcludedSolutions []string `env:"EXCLUDED_SOLUTIONS" envSeparator:","`
}

// Prefix is prepended to every variable name, e.g. DASHBOARD_ADDR.
const Prefix = "DASHBOARD_"

// Load reads .env from the working directory, if present, then parses the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found in working directory, relying on environment variables")
	}

	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: Prefix}); err != nil {
		aggErr := env.AggregateError{}
		if errors.As(err, &aggErr) && len(aggErr.Errors) > 0 {
			return nil, aggErr.Errors[0]
		}
		return nil, err
	}
	return cfg, nil
}

// MaxUploadBytes is the upload size limit in bytes.
func (c *Config) MaxUploadBytes() int64 {
	return c.MaxUploadMB << 20
}
