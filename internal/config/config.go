package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

type Config struct {
	// HTTP server
	Port string

	// Storage
	DBPath      string
	DataBackend string

	// Stats
	StatsWindowDays int

	// Logging
	LogLevel slog.Level
}

func Load() *Config {
	return &Config{
		Port:            getEnv("PORT", "8082"),
		DBPath:          getEnv("CASSA_DB_PATH", "./data/cassa.db"),
		DataBackend:     getEnv("DATA_BACKEND", "bolt"),
		StatsWindowDays: getEnvInt("STATS_WINDOW_DAYS", 30),
		LogLevel:        parseLevel(getEnv("LOG_LEVEL", "info")),
	}
}

// Validate checks the configuration and returns every problem at once.
func (c *Config) Validate() error {
	var errs []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch c.DataBackend {
	case "bolt":
		if c.DBPath == "" {
			errs = append(errs, "database path cannot be empty when using bolt backend")
		} else if dir := filepath.Dir(c.DBPath); dir != "." && dir != "" {
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				if err := os.MkdirAll(dir, 0755); err != nil {
					errs = append(errs, fmt.Sprintf("cannot create database directory '%s': %v", dir, err))
				}
			}
		}
	case "memory":
		// No storage configuration needed.
	default:
		errs = append(errs, fmt.Sprintf("invalid data backend '%s': must be one of [bolt memory]", c.DataBackend))
	}

	if c.StatsWindowDays < 1 {
		errs = append(errs, fmt.Sprintf("invalid stats window %d: must be at least 1 day", c.StatsWindowDays))
	} else if c.StatsWindowDays > 365 {
		errs = append(errs, fmt.Sprintf("invalid stats window %d: must be at most 365 days", c.StatsWindowDays))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}
