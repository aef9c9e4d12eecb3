package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Env != "development" {
		t.Errorf("expected development env, got %s", cfg.Env)
	}
	if cfg.Port != 8080 {
		t.Errorf("expected port 8080, got %d", cfg.Port)
	}
	if cfg.Auth.TokenTTL != time.Hour {
		t.Errorf("expected 1h token TTL, got %v", cfg.Auth.TokenTTL)
	}
	if cfg.Auth.EnforcePasswordStrength {
		t.Error("password strength policy should be off by default")
	}
	if cfg.Database.Path != "forkful.db" {
		t.Errorf("expected forkful.db, got %s", cfg.Database.Path)
	}
	if cfg.Database.Ephemeral() {
		t.Error("default database should be durable")
	}
	// A secret is always present so local dev works without a .env file.
	if cfg.Auth.SecretKey == "" {
		t.Error("expected a dev default secret key")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("DB_PATH", ":memory:")
	t.Setenv("AUTH_TOKEN_TTL", "30m")
	t.Setenv("AUTH_ENFORCE_PASSWORD_STRENGTH", "true")
	t.Setenv("ALLOWED_ORIGINS", "https://forkful.example, http://localhost:3000")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != 9999 {
		t.Errorf("expected port 9999, got %d", cfg.Port)
	}
	if !cfg.Database.Ephemeral() {
		t.Error("expected ephemeral database for :memory:")
	}
	if cfg.Auth.TokenTTL != 30*time.Minute {
		t.Errorf("expected 30m TTL, got %v", cfg.Auth.TokenTTL)
	}
	if !cfg.Auth.EnforcePasswordStrength {
		t.Error("expected password strength policy enabled")
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[0] != "https://forkful.example" {
		t.Errorf("unexpected origins: %v", cfg.AllowedOrigins)
	}
}

func TestLoad_ProductionRequiresSecret(t *testing.T) {
	t.Setenv("ENV", "production")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing SECRET_KEY in production")
	}

	t.Setenv("SECRET_KEY", "short")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for short SECRET_KEY in production")
	}
}

func TestLoad_ProductionRejectsEphemeralStore(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("SECRET_KEY", "0123456789abcdef0123456789abcdef")
	t.Setenv("DB_PATH", ":memory:")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for in-memory store in production")
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	durable := DatabaseConfig{Path: "forkful.db"}
	dsn := durable.DSN()
	if dsn != "file:forkful.db?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on" {
		t.Errorf("unexpected durable DSN: %s", dsn)
	}

	ephemeral := DatabaseConfig{Path: ":memory:"}
	if ephemeral.DSN() != "file::memory:?cache=shared&_foreign_keys=on" {
		t.Errorf("unexpected ephemeral DSN: %s", ephemeral.DSN())
	}
}
