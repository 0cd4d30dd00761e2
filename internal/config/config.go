// ABOUTME: Centralized configuration for the wellness store
// ABOUTME: Defaults, then .env, then environment variables, then validation
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Supported backends
const (
	BackendSQLite = "sqlite"
	BackendBadger = "badger"
)

// AppName names the data directory
const AppName = "mindspace"

// Config holds all configuration for the store and its front ends
type Config struct {
	// Backend selects the persistence engine
	Backend string `env:"MINDSPACE_BACKEND"`

	// DBPath is the sqlite file or badger directory; empty means the
	// default under the XDG data home
	DBPath string `env:"MINDSPACE_DB_PATH"`

	// Timezone decides which calendar day "today" is
	Timezone string `env:"MINDSPACE_TIMEZONE"`

	BusyTimeout time.Duration `env:"MINDSPACE_SQLITE_BUSY_TIMEOUT"`
}

// New returns a Config with default values
func New() Config {
	return Config{
		Backend:     BackendSQLite,
		Timezone:    "Local",
		BusyTimeout: 5 * time.Second,
	}
}

// Load builds the config from defaults, a .env file if present, and the
// environment. It returns an error if the result is invalid.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := New()
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.DBPath == "" {
		cfg.DBPath = DefaultDBPath(cfg.Backend)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("failed to validate config: %w", err)
	}
	return cfg, nil
}

// Validate checks the backend, time zone and timeout
func (c Config) Validate() error {
	switch c.Backend {
	case BackendSQLite, BackendBadger:
	default:
		return fmt.Errorf("MINDSPACE_BACKEND must be %s or %s, got %q", BackendSQLite, BackendBadger, c.Backend)
	}
	if c.DBPath == "" {
		return errors.New("MINDSPACE_DB_PATH cannot be empty")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if c.BusyTimeout < 0 {
		return fmt.Errorf("MINDSPACE_SQLITE_BUSY_TIMEOUT must not be negative, got %v", c.BusyTimeout)
	}
	return nil
}

// Location loads the configured time zone
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("MINDSPACE_TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// String returns a one-line description of the config
func (c Config) String() string {
	return fmt.Sprintf("backend=%s path=%s timezone=%s busy_timeout=%v", c.Backend, c.DBPath, c.Timezone, c.BusyTimeout)
}

// DataDir returns the application data directory.
// Respects XDG_DATA_HOME so tests can redirect it.
func DataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		dataHome = xdg.DataHome
	}
	return filepath.Join(dataHome, AppName)
}

// DefaultDBPath returns where a backend keeps its data by default
func DefaultDBPath(backend string) string {
	if backend == BackendBadger {
		return filepath.Join(DataDir(), "badger")
	}
	return filepath.Join(DataDir(), AppName+".db")
}
