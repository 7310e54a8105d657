package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// JsonConfig is the on-disk shape of a configuration file. Pointer fields
// tell an absent key apart from a zero value, so only keys present in the
// file override what is already in Config.
type JsonConfig struct {
	DatabaseDriver *string `json:"database_driver"`
	DatabaseDSN    *string `json:"database_dsn"`
	RunMigrations  *bool   `json:"run_migrations"`
	LogLevel       *string `json:"log_level"`
	LogFormat      *string `json:"log_format"`
}

// parseJson overlays the JSON file at path onto config. An empty path loads
// nothing.
func parseJson(config *Config, path string) error {

	// nothing to load
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if c.DatabaseDriver != nil {
		config.DatabaseDriver = *c.DatabaseDriver
	}
	if c.DatabaseDSN != nil {
		config.DatabaseDSN = *c.DatabaseDSN
	}
	if c.RunMigrations != nil {
		config.RunMigrations = *c.RunMigrations
	}
	if c.LogLevel != nil {
		config.LogLevel = *c.LogLevel
	}
	if c.LogFormat != nil {
		config.LogFormat = *c.LogFormat
	}

	return nil
}
