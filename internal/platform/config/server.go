package config

import (
	"fmt"
	"os"
	"time"
)

// ServerConfig configures the HTTP listener and its shutdown behavior.
type ServerConfig struct {
	Addr            string
	ShutdownTimeout time.Duration
}

func LoadServerConfigFromEnv() (ServerConfig, error) {
	cfg := ServerConfig{
		Addr:            ":8080",
		ShutdownTimeout: 10 * time.Second,
	}

	if v := os.Getenv("PORT"); v != "" {
		cfg.Addr = ":" + v
	}
	if v := os.Getenv("SHUTDOWN_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return ServerConfig{}, fmt.Errorf("SHUTDOWN_TIMEOUT must be a duration (e.g. 10s): %w", err)
		}
		cfg.ShutdownTimeout = d
	}

	return cfg, nil
}
