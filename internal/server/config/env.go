package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix prefixes every environment variable read by parseEnv, e.g.
// BLOG_DATABASE_DSN.
const EnvPrefix = "BLOG_"

// parseEnv overlays variables that are present in the environment.
func parseEnv(config *Config) error {
	if err := env.ParseWithOptions(config, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}
	return nil
}
