package shared

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// MemoryDatabase is the path of a private in-memory preset database.
const MemoryDatabase = ":memory:"

// NewDatabase opens the preset database described by cfg and applies its pool settings.
//
// Parent directories of a file path are created. An in-memory database is pinned to a single
// connection, since every connection to ":memory:" is a separate database.
func NewDatabase(cfg DatabaseConfig) (*sql.DB, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("%w: database path is empty", ErrInvalidConfig)
	}

	memory := cfg.Path == MemoryDatabase
	if !memory {
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", cfg.dsn())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	open, idle := cfg.MaxOpenConns, cfg.MaxIdleConns
	if memory || open <= 0 {
		open = 1
	}
	if idle <= 0 || idle > open {
		idle = open
	}
	db.SetMaxOpenConns(open)
	db.SetMaxIdleConns(idle)
	if memory {
		db.SetConnMaxLifetime(0)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// dsn adds the go-sqlite3 connection parameters to the configured path.
func (c DatabaseConfig) dsn() string {
	dsn := fmt.Sprintf("%s?_foreign_keys=on", c.Path)
	if c.BusyTimeoutMS > 0 {
		dsn += fmt.Sprintf("&_busy_timeout=%d", c.BusyTimeoutMS)
	}
	return dsn
}
