// db.go
//
// Database helpers for the logo quiz server.
// Responsibilities:
//   - Opening the SQLite database with safe defaults (WAL, busy timeout,
//     foreign keys).
//   - Bootstrapping the results schema (idempotent).
//
// The database only backs the local results log; game sessions live in
// memory and the server runs fine without a database at all.

package main

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// openDB opens (and creates if missing) a SQLite database file.
//
// - Ensures the parent directory exists for relative DSNs (e.g. ./data/results.db).
// - Configures busy timeout and WAL journaling mode.
// - Enforces foreign keys.
func openDB(dsn string) (*sql.DB, error) {
	dir := filepath.Dir(dsn)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", dsn+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(`PRAGMA foreign_keys = ON; PRAGMA journal_mode = WAL;`); err != nil {
		return nil, fmt.Errorf("set pragmas: %w", err)
	}
	return db, nil
}

// ensureSchema creates the results table if it does not exist yet.
func ensureSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS results (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			level           TEXT    NOT NULL,
			solved          INTEGER NOT NULL,
			revealed        INTEGER NOT NULL,
			elapsed_seconds INTEGER NOT NULL,
			finished_at     TEXT    NOT NULL
		);`)
	if err != nil {
		return fmt.Errorf("create results: %w", err)
	}
	return nil
}
