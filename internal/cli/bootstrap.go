package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/example/routesim/internal/config"
	"github.com/example/routesim/internal/wire"
)

// Global flag names, registered on the root command and inherited by every subcommand.
const (
	flagConfig   = "config"
	flagStore    = "store"
	flagDSN      = "dsn"
	flagLogLevel = "log-level"
	flagNoColor  = "no-color"
	flagVerbose  = "verbose"
)

// addGlobalFlags registers the flags that override configuration values.
func addGlobalFlags(fs *pflag.FlagSet) {
	fs.String(flagConfig, "", "Path to a config file (default: ./.routesim/config.yaml if present)")
	fs.String(flagStore, "", "Route store backend: memory or sqlite")
	fs.String(flagDSN, "", "SQLite DSN for the sqlite store (default: in-memory)")
	fs.String(flagLogLevel, "", "Log level: debug, info, warn, error")
	fs.Bool(flagNoColor, false, "Disable colored output")
	fs.BoolP(flagVerbose, "v", false, "Shorthand for --log-level=debug")
}

// resolveConfig builds the effective config.
// Precedence, lowest first: defaults, config file, .env and ROUTESIM_* variables, flags.
func resolveConfig(fs *pflag.FlagSet) (*config.Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	if err := config.LoadDotEnv(cwd); err != nil {
		return nil, err
	}

	var cfg *config.Config
	if path, _ := fs.GetString(flagConfig); path != "" {
		cfg, err = config.LoadFile(path)
	} else {
		cfg, err = config.LoadConfig(cwd)
	}
	if err != nil {
		return nil, err
	}

	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return nil, fmt.Errorf("invalid environment: %w", err)
	}

	if err := applyFlagOverrides(cfg, fs); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyFlagOverrides copies explicitly set flags onto cfg.
func applyFlagOverrides(cfg *config.Config, fs *pflag.FlagSet) error {
	if fs.Changed(flagStore) {
		cfg.Store, _ = fs.GetString(flagStore)
	}
	if fs.Changed(flagDSN) {
		cfg.DSN, _ = fs.GetString(flagDSN)
	}
	if fs.Changed(flagLogLevel) {
		cfg.LogLevel, _ = fs.GetString(flagLogLevel)
	}
	if fs.Changed(flagNoColor) {
		cfg.NoColor, _ = fs.GetBool(flagNoColor)
	}
	if verbose, _ := fs.GetBool(flagVerbose); verbose {
		cfg.LogLevel = "debug"
	}
	if fs.Changed(flagReadAll) || fs.Changed(flagLimited) {
		if readAll, _ := fs.GetBool(flagReadAll); readAll {
			cfg.ReadMode = "all"
		}
		if limited, _ := fs.GetBool(flagLimited); limited {
			cfg.ReadMode = "limited"
		}
	}
	return cfg.Validate()
}

// newContainer resolves configuration and wires services for cmd.
// Callers must Close the returned container.
func newContainer(cmd *cobra.Command) (*wire.Container, *config.Config, error) {
	cfg, err := resolveConfig(cmd.Flags())
	if err != nil {
		return nil, nil, err
	}

	c, err := wire.New(cfg, cmd.ErrOrStderr())
	if err != nil {
		return nil, nil, err
	}
	return c, cfg, nil
}
