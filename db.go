// db.go
//
// Database helpers for the game server.
// Responsibilities:
//   - Opening the SQLite database with safe defaults (WAL, busy timeout,
//     foreign keys).
//   - Creating the schema (idempotent, IF NOT EXISTS).

package main

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// openDB opens (and creates if missing) a SQLite database file.
func openDB(dsn string) (*sql.DB, error) {
	// Ensure directory exists for ./data/app.db, etc.
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

// createSchema creates all tables needed by the server.
// Safe to call multiple times.
func createSchema(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

const schema = `
-- Users
CREATE TABLE IF NOT EXISTS users (
    id            TEXT PRIMARY KEY,
    username      TEXT NOT NULL UNIQUE,
    email         TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    created_at    TEXT NOT NULL,
    total_points  INTEGER NOT NULL DEFAULT 0
);

-- Game sessions. The full session lives in the state JSON blob; the
-- remaining columns exist for lookups.
CREATE TABLE IF NOT EXISTS games (
    id         TEXT PRIMARY KEY,
    player1    TEXT NOT NULL REFERENCES users(id),
    player2    TEXT NOT NULL REFERENCES users(id),
    status     TEXT NOT NULL DEFAULT 'active',
    winner     TEXT,
    created_at TEXT NOT NULL,
    state      TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_games_player1 ON games(player1, status);
CREATE INDEX IF NOT EXISTS idx_games_player2 ON games(player2, status);
`
