package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/saadjs/mealtrack/internal/app"
	"github.com/saadjs/mealtrack/pkg/logger"
)

// Config represents the full application configuration surface.
type Config struct {
	DBPath          string
	Server          ServerConfig
	LogLevel        string
	SummaryCron     string
	BaseMaintenance int
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port        string
	CORSOrigins []string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// A missing .env is fine; the environment alone is enough.
		_ = godotenv.Load()
	}

	dbPath := os.Getenv("MEALTRACK_DB")
	if dbPath == "" {
		p, err := app.DefaultDBPath()
		if err != nil {
			return nil, err
		}
		dbPath = p
	}
	dbPath, err := app.ExpandPath(dbPath)
	if err != nil {
		return nil, err
	}

	base, err := strconv.Atoi(getenvWithDefault("MEALTRACK_BASE_MAINTENANCE", "2000"))
	if err != nil {
		return nil, fmt.Errorf("MEALTRACK_BASE_MAINTENANCE must be an integer: %w", err)
	}

	cfg := &Config{
		DBPath: dbPath,
		Server: ServerConfig{
			Port:        getenvWithDefault("MEALTRACK_PORT", "5001"),
			CORSOrigins: splitList(getenvWithDefault("MEALTRACK_CORS_ORIGINS", "*")),
		},
		LogLevel:        getenvWithDefault("MEALTRACK_LOG_LEVEL", "info"),
		SummaryCron:     lookupWithDefault("MEALTRACK_SUMMARY_CRON", "0 20 * * 0"),
		BaseMaintenance: base,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.DBPath == "" {
		return errors.New("MEALTRACK_DB must not be empty")
	}
	if c.Server.Port == "" {
		return errors.New("MEALTRACK_PORT must be provided")
	}
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("MEALTRACK_LOG_LEVEL: %w", err)
	}
	if c.BaseMaintenance <= 0 {
		return errors.New("MEALTRACK_BASE_MAINTENANCE must be > 0")
	}
	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// lookupWithDefault keeps an explicitly empty value so a setting can be
// switched off.
func lookupWithDefault(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return strings.TrimSpace(value)
	}
	return fallback
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
