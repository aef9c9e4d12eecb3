// Package config handles loading application configuration from environment
// variables. All config is centralized here so no other package reads env
// vars directly. Sensible defaults are provided for development.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration. Populated from environment
// variables at startup. Passed to other packages via dependency injection.
type Config struct {
	// Env is the runtime environment: "development" or "production".
	Env string

	// Port is the HTTP listen port (default: 8080).
	Port int

	// LogLevel controls log verbosity: "debug", "info", "warn", "error".
	LogLevel string

	// AllowedOrigins lists the origins the browser frontend may call
	// the API from (default: the local React dev server).
	AllowedOrigins []string

	// Database holds SQLite settings.
	Database DatabaseConfig

	// Auth holds authentication-related settings.
	Auth AuthConfig

	// Recipes holds upstream recipe-provider settings.
	Recipes RecipesConfig
}

// DatabaseConfig holds the SQLite store settings.
type DatabaseConfig struct {
	// Path is the database file path. The special value ":memory:"
	// selects an ephemeral in-memory store that does not survive a
	// restart; anything else is a durable on-disk file.
	Path string

	// MaxOpenConns is the maximum number of open connections in the pool.
	MaxOpenConns int

	// MaxIdleConns is the maximum number of idle connections in the pool.
	MaxIdleConns int

	// ConnMaxLifetime is how long a connection can be reused.
	ConnMaxLifetime time.Duration
}

// Ephemeral returns true when the store lives only in memory. Callers
// that promise durability must refuse to run against an ephemeral store.
func (d DatabaseConfig) Ephemeral() bool {
	return d.Path == ":memory:"
}

// DSN returns the mattn/go-sqlite3 connection string. On-disk databases
// get WAL journaling and a busy timeout so concurrent requests queue on
// the write lock instead of failing. In-memory databases share one cache
// so every pooled connection sees the same data.
func (d DatabaseConfig) DSN() string {
	if d.Ephemeral() {
		return "file::memory:?cache=shared&_foreign_keys=on"
	}
	return fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on",
		d.Path)
}

// AuthConfig holds authentication settings.
type AuthConfig struct {
	// SecretKey is the HMAC key used to sign session tokens.
	SecretKey string

	// TokenTTL is how long an issued token stays valid (default: 1h).
	TokenTTL time.Duration

	// EnforcePasswordStrength enables the minimum-strength password
	// policy on registration (length, case mix, digit, symbol).
	EnforcePasswordStrength bool
}

// RecipesConfig holds upstream recipe-provider settings.
type RecipesConfig struct {
	// BaseURL is the provider API root (default: the Spoonacular API).
	// Tests point this at a local fake server.
	BaseURL string

	// APIKey is the provider API key, sent with every request.
	APIKey string

	// Timeout bounds each upstream HTTP request.
	Timeout time.Duration
}

// Load reads configuration from environment variables with sensible
// defaults. Returns an error if required variables are missing or invalid.
func Load() (*Config, error) {
	cfg := &Config{
		Env:            getEnv("ENV", "development"),
		Port:           getEnvInt("PORT", 8080),
		LogLevel:       getEnv("LOG_LEVEL", "debug"),
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),

		Database: DatabaseConfig{
			Path:            getEnv("DB_PATH", "forkful.db"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		},

		Auth: AuthConfig{
			SecretKey:               getEnv("SECRET_KEY", ""),
			TokenTTL:                getEnvDuration("AUTH_TOKEN_TTL", time.Hour),
			EnforcePasswordStrength: getEnvBool("AUTH_ENFORCE_PASSWORD_STRENGTH", false),
		},

		Recipes: RecipesConfig{
			BaseURL: getEnv("SPOONACULAR_BASE_URL", "https://api.spoonacular.com"),
			APIKey:  getEnv("SPOONACULAR_API_KEY", ""),
			Timeout: getEnvDuration("SPOONACULAR_TIMEOUT", 10*time.Second),
		},
	}

	if _, err := url.Parse(cfg.Recipes.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid SPOONACULAR_BASE_URL: %w", err)
	}

	// Validate required fields in production. Case-insensitive check
	// catches common variants like "Production", "prod", etc.
	envLower := strings.ToLower(cfg.Env)
	if envLower == "production" || envLower == "prod" {
		if cfg.Auth.SecretKey == "" {
			return nil, fmt.Errorf("SECRET_KEY is required in production")
		}
		if len(cfg.Auth.SecretKey) < 32 {
			return nil, fmt.Errorf("SECRET_KEY must be at least 32 characters in production")
		}
		if cfg.Database.Ephemeral() {
			return nil, fmt.Errorf("DB_PATH=:memory: is not allowed in production")
		}
	}

	// Provide a dev-only default secret so local dev works without .env.
	if cfg.Auth.SecretKey == "" {
		cfg.Auth.SecretKey = "dev-secret-key-do-not-use-in-production!!"
	}

	return cfg, nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	env := strings.ToLower(c.Env)
	return env == "development" || env == "dev"
}

// splitList parses a comma-separated env value into trimmed entries.
func splitList(val string) []string {
	var out []string
	for _, part := range strings.Split(val, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// --- Helper functions for reading environment variables ---

// getEnv reads a string env var or returns the default.
func getEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return defaultVal
}

// getEnvInt reads an integer env var or returns the default.
func getEnvInt(key string, defaultVal int) int {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

// getEnvBool reads a boolean env var ("true", "1", "false", ...) or
// returns the default.
func getEnvBool(key string, defaultVal bool) bool {
	if val, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}

// getEnvDuration reads a duration env var (e.g., "1h") or returns the default.
func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}
