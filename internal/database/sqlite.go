// Package database owns the SQLite connection lifecycle: open, configure
// the pool, ping, migrate, close. The pool is created once at startup and
// shared across the application via dependency injection.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	// SQLite driver -- imported for side effect of registering the driver.
	_ "github.com/mattn/go-sqlite3"

	"github.com/forkful/forkful/internal/config"
)

// NewSQLite opens the SQLite database described by cfg and verifies it
// with a ping before returning. The same code path serves both durable
// on-disk deployments and the ephemeral in-memory store used by tests;
// the DSN encodes the difference.
func NewSQLite(cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}

	// SQLite allows a single writer; more write connections only pile up
	// on the file lock. The busy timeout in the DSN handles contention.
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging sqlite database: %w", err)
	}

	return db, nil
}
