// Package config loads server configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the process-wide configuration, parsed from environment
// variables. CLI flags may override individual fields after parsing.
type Config struct {
	Host string `env:"PONGARENA_HOST" envDefault:""`
	Port int    `env:"PONGARENA_PORT" envDefault:"8080"`

	// StorageType selects the storage backend ("memory" or "redis")
	StorageType string `env:"PONGARENA_STORAGE" envDefault:"memory"`
	RedisURL    string `env:"PONGARENA_REDIS_URL" envDefault:"redis://localhost:6379"`

	// QueueSweepInterval is how often expired queue entries are reaped
	QueueSweepInterval time.Duration `env:"PONGARENA_QUEUE_SWEEP_INTERVAL" envDefault:"5s"`

	LogLevel string `env:"PONGARENA_LOG_LEVEL" envDefault:"info"`
}

// Load parses configuration from the environment
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
