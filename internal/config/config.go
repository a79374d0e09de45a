package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Store backends
const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
)

// Environment variables that override file values.
const (
	EnvStore    = "ROUTESIM_STORE"
	EnvDSN      = "ROUTESIM_DSN"
	EnvReadMode = "ROUTESIM_READ_MODE"
	EnvLogLevel = "ROUTESIM_LOG_LEVEL"
	EnvNoColor  = "ROUTESIM_NO_COLOR"
)

const (
	configDirName  = ".routesim"
	configFileName = "config.yaml"
	currentVersion = "1"
)

// Config represents the routesim configuration
type Config struct {
	Version  string `yaml:"version"`
	Store    string `yaml:"store"`               // "memory" or "sqlite"
	DSN      string `yaml:"dsn,omitempty"`       // SQLite DSN; empty means in-memory
	ReadMode string `yaml:"read_mode,omitempty"` // "limited", "all", or empty to pick by source
	LogLevel string `yaml:"log_level"`           // debug, info, warn, error
	NoColor  bool   `yaml:"no_color,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Version:  currentVersion,
		Store:    StoreMemory,
		LogLevel: "warn",
	}
}

// Path returns the config file location inside dir.
func Path(dir string) string {
	return filepath.Join(dir, configDirName, configFileName)
}

// LoadConfig reads .routesim/config.yaml from dir.
// A missing file is not an error: defaults are returned.
func LoadConfig(dir string) (*Config, error) {
	cfg, err := LoadFile(Path(dir))
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// LoadFile reads the config file at path over the defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// SaveConfig writes config.yaml to dir
func SaveConfig(dir string, cfg *Config) error {
	cfgDir := filepath.Join(dir, configDirName)
	if err := os.MkdirAll(cfgDir, 0755); err != nil {
		return fmt.Errorf("failed to create %s dir: %w", configDirName, err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(Path(dir), data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// LoadDotEnv loads dir/.env into the process environment if it exists.
// Variables already set are not overwritten.
func LoadDotEnv(dir string) error {
	path := filepath.Join(dir, ".env")
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides fields from ROUTESIM_* variables.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := getenv(EnvStore); v != "" {
		c.Store = v
	}
	if v := getenv(EnvDSN); v != "" {
		c.DSN = v
	}
	if v := getenv(EnvReadMode); v != "" {
		c.ReadMode = v
	}
	if v := getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := getenv(EnvNoColor); v != "" {
		c.NoColor = v != "0" && !strings.EqualFold(v, "false")
	}
	return c.Validate()
}

// Validate checks enumerated fields.
func (c *Config) Validate() error {
	switch c.Store {
	case StoreMemory, StoreSQLite:
	default:
		return fmt.Errorf("unknown store %q (valid: %s, %s)", c.Store, StoreMemory, StoreSQLite)
	}

	switch c.ReadMode {
	case "", "limited", "all":
	default:
		return fmt.Errorf("unknown read_mode %q (valid: limited, all)", c.ReadMode)
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log_level %q (valid: debug, info, warn, error)", c.LogLevel)
	}

	return nil
}
