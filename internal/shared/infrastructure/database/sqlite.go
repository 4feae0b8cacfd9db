package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// DefaultSQLitePath is where local-mode data lives when no path is configured.
func DefaultSQLitePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "gable.db"
	}
	return filepath.Join(home, ".gable", "gable.db")
}

// OpenSQLite opens (and creates if needed) the local SQLite database.
//
// DSN pragmas:
//   - journal_mode=WAL: better concurrency between the CLI and the worker
//   - foreign_keys=ON: enforce references
//   - busy_timeout=5000: wait 5s on a lock instead of failing immediately
//   - synchronous=NORMAL: good balance of safety and speed
func OpenSQLite(ctx context.Context, path string) (*sql.DB, error) {
	if path == "" {
		path = DefaultSQLitePath()
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	dsn := path
	if strings.Contains(dsn, "?") {
		dsn += "&"
	} else {
		dsn += "?"
	}
	dsn += "_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	// SQLite doesn't support multiple writers, so limit connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping SQLite database: %w", err)
	}

	return db, nil
}
