// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigDir is the directory name for brewscout configuration.
	DefaultConfigDir = ".brewscout"
	// DefaultConfigFile is the default config file name.
	DefaultConfigFile = "config.yaml"
	// DefaultDBFile is the default SQLite database file name.
	DefaultDBFile = "brewscout.db"
)

// Store drivers.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds static infrastructure configuration (read-only after init).
type Config struct {
	Store   StoreConfig   `yaml:"store,omitempty"`
	Server  ServerConfig  `yaml:"server,omitempty"`
	Logging LoggingConfig `yaml:"logging,omitempty"`
}

// StoreConfig selects and configures the persistence backend.
type StoreConfig struct {
	// Driver is one of "memory", "sqlite", "postgres".
	Driver string `yaml:"driver,omitempty"`
	// Path is the SQLite database file path.
	Path string `yaml:"path,omitempty"`
	// DSN is the Postgres connection string.
	DSN string `yaml:"dsn,omitempty"`
}

// ServerConfig configures the HTTP facade.
type ServerConfig struct {
	Addr           string   `yaml:"addr,omitempty"`
	AllowedOrigins []string `yaml:"allowed_origins,omitempty"`
}

// LoggingConfig configures the slog handler.
type LoggingConfig struct {
	Level         string `yaml:"level,omitempty"`
	Format        string `yaml:"format,omitempty"` // "text" or "json"
	IncludeCaller bool   `yaml:"include_caller,omitempty"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Store: StoreConfig{
			Driver: DriverSQLite,
		},
		Server: ServerConfig{
			Addr:           ":8080",
			AllowedOrigins: []string{"*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load loads configuration from the .brewscout directory in the given
// path. A .env file next to it is honored before env overrides apply.
func Load(basePath string) (*Config, error) {
	// Missing .env is fine; only explicit keys matter.
	_ = godotenv.Load(filepath.Join(basePath, ".env"))

	cfg := Default()
	cfg.Store.Path = DBPath(basePath)

	configFile := ConfigFilePath(basePath)
	data, err := os.ReadFile(configFile)
	if os.IsNotExist(err) {
		cfg.applyEnvOverrides()
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyEnvOverrides()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if driver := os.Getenv("BREWSCOUT_STORE_DRIVER"); driver != "" {
		c.Store.Driver = driver
	}
	if path := os.Getenv("BREWSCOUT_SQLITE_PATH"); path != "" {
		c.Store.Path = path
	}
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" && c.Store.DSN == "" {
		c.Store.DSN = dsn
	}
	if addr := os.Getenv("BREWSCOUT_ADDR"); addr != "" {
		c.Server.Addr = addr
	}
	if level := os.Getenv("BREWSCOUT_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
}

func (c *Config) validate() error {
	switch strings.ToLower(c.Store.Driver) {
	case DriverMemory, DriverSQLite, DriverPostgres:
		return nil
	default:
		return fmt.Errorf("unknown store driver %q (expected memory, sqlite or postgres)", c.Store.Driver)
	}
}

// ConfigDir returns the path to the .brewscout config directory.
func ConfigDir(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir)
}

// ConfigFilePath returns the path to the config file.
func ConfigFilePath(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir, DefaultConfigFile)
}

// DBPath returns the default SQLite database path.
func DBPath(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir, DefaultDBFile)
}

// Exists checks if a brewscout config exists in the given path.
func Exists(basePath string) bool {
	_, err := os.Stat(ConfigFilePath(basePath))
	return err == nil
}
