package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

type DB struct {
	db *sql.DB
}

func NewDB(path string) (*DB, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// sqlite allows one writer; serialise through a single connection.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}

	return &DB{db: db}, nil
}

func (d *DB) Close() error {
	return d.db.Close()
}

func (d *DB) Migrate(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS preferences (
		user_id INTEGER NOT NULL,
		category TEXT NOT NULL,
		name TEXT NOT NULL,
		score INTEGER NOT NULL DEFAULT 0,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (user_id, category, name)
	);

	CREATE INDEX IF NOT EXISTS idx_preferences_top ON preferences(user_id, category, score DESC);

	CREATE TABLE IF NOT EXISTS published_results (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		fingerprint TEXT NOT NULL,
		league_id INTEGER NOT NULL,
		player1_id INTEGER NOT NULL,
		player2_id INTEGER NOT NULL,
		score1 INTEGER NOT NULL,
		score2 INTEGER NOT NULL,
		location_id INTEGER NOT NULL,
		end_datetime TEXT NOT NULL,
		tg_chat_id INTEGER NOT NULL,
		tg_user_id INTEGER NOT NULL,
		published_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE UNIQUE INDEX IF NOT EXISTS idx_published_results_fingerprint ON published_results(fingerprint);
	`

	// Run migrations for schema updates
	migrations := []string{
		// Add submitter column to published_results if it doesn't exist
		`ALTER TABLE published_results ADD COLUMN submitter TEXT NOT NULL DEFAULT ''`,
	}

	if _, err := d.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("execute schema: %w", err)
	}

	// Run migrations - ignore errors for already-applied migrations
	for _, migration := range migrations {
		_, err := d.db.ExecContext(ctx, migration)
		// Ignore "duplicate column" errors - migration already applied
		if err != nil && !strings.Contains(err.Error(), "duplicate column") {
			return fmt.Errorf("execute migration: %w", err)
		}
	}

	return nil
}

func (d *DB) DB() *sql.DB {
	return d.db
}
