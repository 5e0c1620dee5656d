package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// InitSQLite opens the journal database and creates its schema. Pass
// ":memory:" for a throwaway database.
func InitSQLite(dbPath string) (*sql.DB, error) {
	// Ensure directory exists
	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// One connection: SQLite has a single writer and :memory: is per connection.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	// Create tables
	if err := createSchemas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schemas: %w", err)
	}

	return db, nil
}

func createSchemas(db *sql.DB) error {
	schemas := []string{
		`CREATE TABLE IF NOT EXISTS journal (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			game_id TEXT NOT NULL,
			timestamp INTEGER NOT NULL,
			event_type TEXT NOT NULL,
			actor_id TEXT NOT NULL,
			target_id TEXT NOT NULL DEFAULT '',
			message TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS roster (
			character_id TEXT NOT NULL,
			game_id TEXT NOT NULL,
			name TEXT NOT NULL,
			satiety REAL NOT NULL,
			hydration REAL NOT NULL,
			stamina REAL NOT NULL,
			mood REAL NOT NULL,
			tick INTEGER NOT NULL,
			last_updated INTEGER NOT NULL,
			PRIMARY KEY (game_id, character_id)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_journal_game_id ON journal(game_id);`,
		`CREATE INDEX IF NOT EXISTS idx_journal_event_type ON journal(game_id, event_type);`,
	}

	for _, query := range schemas {
		if _, err := db.Exec(query); err != nil {
			return err
		}
	}

	return nil
}
