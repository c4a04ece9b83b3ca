package store

import (
	"database/sql"
	"fmt"

	_ "github.com/tursodatabase/go-libsql"
)

func Migrate(db *sql.DB) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS entries (
			id          TEXT PRIMARY KEY,
			parent_id   TEXT NOT NULL DEFAULT '',
			kind        TEXT NOT NULL,
			title       TEXT NOT NULL DEFAULT '',
			body        TEXT NOT NULL DEFAULT '',
			done        INTEGER NOT NULL DEFAULT 0,
			geo         TEXT NOT NULL DEFAULT '',
			created_at  INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_entries_created_at ON entries(created_at);`,
		`CREATE INDEX IF NOT EXISTS idx_entries_kind ON entries(kind);`,
		`CREATE INDEX IF NOT EXISTS idx_entries_parent ON entries(parent_id);`,
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to run migration statement: %w", err)
		}
	}

	return nil
}
