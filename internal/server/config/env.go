package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// EnvPrefix namespaces every environment variable, e.g. BS_API_DATABASE_DSN.
const EnvPrefix = "BS_API_"

// parseEnv overrides fields whose BS_API_* variable is set; unset variables
// leave the current value alone. Variables from envFile are visible only where
// the process environment does not define them.
func parseEnv(config *Config, envFile string) error {
	opts := env.Options{Prefix: EnvPrefix}

	if envFile != "" {
		vars, err := godotenv.Read(envFile)
		if err != nil {
			return fmt.Errorf("read env file %s: %w", envFile, err)
		}
		for k, v := range env.ToMap(os.Environ()) {
			vars[k] = v
		}
		opts.Environment = vars
	}

	if err := env.ParseWithOptions(config, opts); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
