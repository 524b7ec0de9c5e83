package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Store drivers selected by the DATABASE_URL scheme
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config chứa toàn bộ application configuration
// Struct này được populate từ environment variables
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, production
	Port        string
	Version     string
	LogLevel    string // zerolog level name
}

// DatabaseConfig holds the single connection string. Pool tuning for the
// Postgres driver lives in LoadDatabaseConfig.
type DatabaseConfig struct {
	URL string
}

type RedisConfig struct {
	URL      string // empty disables the read cache
	CacheTTL time.Duration
}

// Load đọc config từ environment variables
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "People API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "3000"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
		},
		Database: DatabaseConfig{
			URL: getEnv("DATABASE_URL", getEnv("MONGO_URI", "memory://")),
		},
		Redis: RedisConfig{
			URL: getEnv("REDIS_URL", ""),
		},
	}

	ttl, err := time.ParseDuration(getEnv("CACHE_TTL", "15m"))
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_TTL: %w", err)
	}
	cfg.Redis.CacheTTL = ttl

	// Validate critical config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate kiểm tra config có hợp lệ không
func (c *Config) Validate() error {
	port, err := strconv.Atoi(c.App.Port)
	if err != nil || port <= 0 || port > 65535 {
		return fmt.Errorf("APP_PORT must be a valid TCP port, got %q", c.App.Port)
	}

	if _, err := zerolog.ParseLevel(c.App.LogLevel); err != nil {
		return fmt.Errorf("LOG_LEVEL is invalid: %w", err)
	}

	driver, err := c.Database.Driver()
	if err != nil {
		return err
	}

	if c.App.Environment == "production" && driver == DriverMemory {
		return fmt.Errorf("DATABASE_URL must point to a persistent store in production")
	}

	if c.Redis.URL != "" && c.Redis.CacheTTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive when REDIS_URL is set")
	}

	return nil
}

// Driver derives the store backend from the connection string scheme
func (d DatabaseConfig) Driver() (string, error) {
	raw := strings.TrimSpace(d.URL)
	if raw == "" {
		return "", fmt.Errorf("DATABASE_URL is required")
	}

	// go-sqlite3 accepts "file:" DSNs as they are
	if strings.HasPrefix(raw, "file:") {
		return DriverSQLite, nil
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("DATABASE_URL is malformed: %w", err)
	}

	switch u.Scheme {
	case "postgres", "postgresql":
		return DriverPostgres, nil
	case "sqlite", "sqlite3":
		return DriverSQLite, nil
	case "memory", "mem":
		return DriverMemory, nil
	case "mongodb", "mongodb+srv":
		return "", fmt.Errorf("MongoDB is not a supported store: set DATABASE_URL (or MONGO_URI) to a postgres://, sqlite:// or memory:// URL")
	default:
		return "", fmt.Errorf("DATABASE_URL has unsupported scheme %q (supported: postgres, sqlite, memory)", u.Scheme)
	}
}

// SQLitePath returns the database file path for sqlite:// and file: URLs
func (d DatabaseConfig) SQLitePath() string {
	raw := strings.TrimSpace(d.URL)
	for _, prefix := range []string{"sqlite3://", "sqlite://"} {
		if strings.HasPrefix(raw, prefix) {
			return strings.TrimPrefix(raw, prefix)
		}
	}
	return raw
}

// IsProduction reports whether the app runs with APP_ENV=production
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
