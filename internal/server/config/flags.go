package config

import "github.com/urfave/cli/v2"

// Global flag names understood by ApplyFlags.
const (
	FlagConfig         = "config"
	FlagEnvFile        = "env-file"
	FlagDatabaseDriver = "database-driver"
	FlagDatabaseDSN    = "database-dsn"
	FlagRunMigrations  = "run-migrations"
	FlagLogLevel       = "log-level"
	FlagLogFormat      = "log-format"
)

// Flags returns the global command-line flags. They carry no defaults of
// their own: a flag only wins when the user sets it.
func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: FlagConfig, Aliases: []string{"c"}, Usage: "path to JSON config file"},
		&cli.StringFlag{Name: FlagEnvFile, Usage: "path to a .env file with BS_API_* variables"},
		&cli.StringFlag{Name: FlagDatabaseDriver, Aliases: []string{"D"}, Usage: "database driver: pgx or sqlite"},
		&cli.StringFlag{Name: FlagDatabaseDSN, Aliases: []string{"d"}, Usage: "database DSN"},
		&cli.BoolFlag{Name: FlagRunMigrations, Usage: "apply migrations on startup"},
		&cli.StringFlag{Name: FlagLogLevel, Usage: "debug, info, warn or error"},
		&cli.StringFlag{Name: FlagLogFormat, Usage: "text or json"},
	}
}

// ApplyFlags overlays explicitly set flags onto config.
func ApplyFlags(c *cli.Context, config *Config) {
	if c.IsSet(FlagDatabaseDriver) {
		config.DatabaseDriver = c.String(FlagDatabaseDriver)
	}
	if c.IsSet(FlagDatabaseDSN) {
		config.DatabaseDSN = c.String(FlagDatabaseDSN)
	}
	if c.IsSet(FlagRunMigrations) {
		config.RunMigrations = c.Bool(FlagRunMigrations)
	}
	if c.IsSet(FlagLogLevel) {
		config.LogLevel = c.String(FlagLogLevel)
	}
	if c.IsSet(FlagLogFormat) {
		config.LogFormat = c.String(FlagLogFormat)
	}
}

// FromCLI runs the whole chain: defaults, JSON file named by --config,
// environment (with --env-file underneath), flags, validation.
func FromCLI(c *cli.Context) (*Config, error) {
	cfg, err := LoadConfig(c.String(FlagConfig), c.String(FlagEnvFile))
	if err != nil {
		return nil, err
	}

	ApplyFlags(c, cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
