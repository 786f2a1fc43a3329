// Package config reads bizbook settings from the environment. A .env file
// in the working directory, if present, seeds variables that are not
// already set.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/joho/godotenv"
)

// Storage backends.
const (
	StorageSQLite = "sqlite"
	StorageFile   = "file"
	StorageMemory = "memory"
)

// Log output formats.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Config holds every runtime setting.
type Config struct {
	// Storage selects the persistence backend.
	Storage string
	// DBPath is the SQLite database file for the sqlite backend.
	DBPath string
	// DataDir holds one JSON file per record for the file backend.
	DataDir string

	// Currency is the ISO 4217 code used to display amounts.
	Currency string

	LogLevel    string
	LogFormat   string
	LogUseCases bool
}

// DefaultConfig returns the configuration used when no variables are set.
// Paths live under ~/.bizbook, or the working directory when no home
// directory is known.
func DefaultConfig() Config {
	base := ".bizbook"
	if home, err := os.UserHomeDir(); err == nil {
		base = filepath.Join(home, ".bizbook")
	}
	return Config{
		Storage:   StorageSQLite,
		DBPath:    filepath.Join(base, "bizbook.db"),
		DataDir:   filepath.Join(base, "data"),
		Currency:  "EUR",
		LogLevel:  "warn",
		LogFormat: LogFormatText,
	}
}

// Load reads .env (if present) and then the BIZBOOK_* variables, falling
// back to defaults for anything unset.
func Load() Config {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv reads the BIZBOOK_* variables without touching .env.
func FromEnv() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("BIZBOOK_STORAGE"); v != "" {
		cfg.Storage = strings.ToLower(strings.TrimSpace(v))
	}
	if v := os.Getenv("BIZBOOK_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("BIZBOOK_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("BIZBOOK_CURRENCY"); v != "" {
		cfg.Currency = strings.ToUpper(strings.TrimSpace(v))
	}
	if v := os.Getenv("BIZBOOK_LOG_LEVEL"); v != "" {
		cfg.LogLevel = strings.ToLower(strings.TrimSpace(v))
	}
	if v := os.Getenv("BIZBOOK_LOG_FORMAT"); v != "" {
		cfg.LogFormat = strings.ToLower(strings.TrimSpace(v))
	}
	if v := os.Getenv("BIZBOOK_LOG_USE_CASES"); v != "" {
		cfg.LogUseCases, _ = strconv.ParseBool(v)
	}

	return cfg
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error

	switch c.Storage {
	case StorageSQLite:
		if c.DBPath == "" {
			errs = append(errs, errors.New("BIZBOOK_DB cannot be empty with the sqlite backend"))
		}
	case StorageFile:
		if c.DataDir == "" {
			errs = append(errs, errors.New("BIZBOOK_DATA_DIR cannot be empty with the file backend"))
		}
	case StorageMemory:
	default:
		errs = append(errs, fmt.Errorf("invalid storage backend %q: must be one of %s, %s, %s",
			c.Storage, StorageSQLite, StorageFile, StorageMemory))
	}

	if money.GetCurrency(c.Currency) == nil {
		errs = append(errs, fmt.Errorf("unknown currency code %q", c.Currency))
	}
	if _, err := c.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	if c.LogFormat != LogFormatText && c.LogFormat != LogFormatJSON {
		errs = append(errs, fmt.Errorf("invalid log format %q: must be %s or %s", c.LogFormat, LogFormatText, LogFormatJSON))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %w", errors.Join(errs...))
	}
	return nil
}

// SlogLevel parses LogLevel.
func (c Config) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid log level %q: must be debug, info, warn or error", c.LogLevel)
	}
	return lvl, nil
}
