// Package config reads runtime settings from the environment and an
// optional .env file.
package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/alexanderramin/punchclock/internal/logging"
	"github.com/joho/godotenv"
)

// Config holds all runtime settings.
type Config struct {
	DBPath       string
	Namespace    string
	UserID       string
	UserName     string
	QuotaBytes   int64
	CacheTTL     time.Duration
	LogLevel     slog.Level
	WeeklyTarget float64
}

// DefaultConfig returns a Config with sensible defaults. DBPath is left
// empty and resolved by LoadConfig.
func DefaultConfig() Config {
	name := os.Getenv("USER")
	if name == "" {
		name = "me"
	}
	return Config{
		Namespace:    "punchclock_",
		UserID:       "local",
		UserName:     name,
		CacheTTL:     5 * time.Minute,
		LogLevel:     slog.LevelWarn,
		WeeklyTarget: 40,
	}
}

// LoadDotEnv loads variables from the given files, or ./.env when none are
// given. Missing files are skipped and existing variables are not replaced.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return nil
}

// LoadConfig reads configuration from PUNCHCLOCK_* environment variables,
// falling back to defaults for any unset or invalid values.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()

	if v := os.Getenv("PUNCHCLOCK_DB"); v != "" {
		cfg.DBPath = v
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, err
		}
		cfg.DBPath = filepath.Join(home, ".punchclock", "punchclock.db")
	}
	if v := os.Getenv("PUNCHCLOCK_NAMESPACE"); v != "" {
		cfg.Namespace = v
	}
	if v := os.Getenv("PUNCHCLOCK_USER_ID"); v != "" {
		cfg.UserID = v
	}
	if v := os.Getenv("PUNCHCLOCK_USER_NAME"); v != "" {
		cfg.UserName = v
	}
	if v := os.Getenv("PUNCHCLOCK_QUOTA_BYTES"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n >= 0 {
			cfg.QuotaBytes = n
		}
	}
	if v := os.Getenv("PUNCHCLOCK_CACHE_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.CacheTTL = d
		}
	}
	if v := os.Getenv("PUNCHCLOCK_LOG_LEVEL"); v != "" {
		if lvl, err := logging.ParseLevel(v); err == nil {
			cfg.LogLevel = lvl
		}
	}
	if v := os.Getenv("PUNCHCLOCK_WEEKLY_TARGET"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			cfg.WeeklyTarget = f
		}
	}
	return cfg, nil
}
