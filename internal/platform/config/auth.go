// Package config loads deployment settings from environment variables.
// Each concern gets its own typed loader; loaders fail fast on missing
// required values so a misconfigured process dies at startup, not on the
// first request.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// AuthConfig configures token issuance and credential hashing.
//
// The signing secret is process-wide and immutable: every token minted by
// this process verifies against the same key until restart.
type AuthConfig struct {
	Secret     []byte
	TokenTTL   time.Duration
	BcryptCost int
}

func LoadAuthConfigFromEnv() (AuthConfig, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return AuthConfig{}, fmt.Errorf("missing required env var: JWT_SECRET")
	}

	cfg := AuthConfig{
		Secret:   []byte(secret),
		TokenTTL: 24 * time.Hour,
		// bcrypt's own default work factor; tests override it downward.
		BcryptCost: 10,
	}

	if v := os.Getenv("TOKEN_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return AuthConfig{}, fmt.Errorf("TOKEN_TTL must be a duration (e.g. 24h): %w", err)
		}
		cfg.TokenTTL = d
	}
	if v := os.Getenv("BCRYPT_COST"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return AuthConfig{}, fmt.Errorf("BCRYPT_COST must be an integer: %w", err)
		}
		cfg.BcryptCost = n
	}

	return cfg, nil
}
