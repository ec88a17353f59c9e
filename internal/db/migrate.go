package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are idempotent and re-run
// on every open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN is not idempotent in SQLite.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := migrateBackfillSize(db); err != nil {
		return fmt.Errorf("backfilling kv_entries size: %w", err)
	}
	return nil
}

// migrateBackfillSize fills the size column for rows written before the
// column existed so quota accounting sees them. Sizes are in bytes, as the
// backend counts them.
func migrateBackfillSize(db *sql.DB) error {
	_, err := db.Exec(`UPDATE kv_entries SET size = length(CAST(payload AS BLOB)) WHERE size = 0 AND payload != ''`)
	return err
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS kv_entries (
		key        TEXT PRIMARY KEY,
		payload    TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`ALTER TABLE kv_entries ADD COLUMN size INTEGER NOT NULL DEFAULT 0`,

	`CREATE INDEX IF NOT EXISTS idx_kv_entries_updated ON kv_entries(updated_at)`,

	// kv_revision counts committed changes to kv_entries from any connection.
	`CREATE TABLE IF NOT EXISTS kv_revision (
		id  INTEGER PRIMARY KEY CHECK (id = 1),
		rev INTEGER NOT NULL
	)`,

	`INSERT OR IGNORE INTO kv_revision (id, rev) VALUES (1, 0)`,

	`CREATE TRIGGER IF NOT EXISTS kv_entries_rev_insert AFTER INSERT ON kv_entries
	BEGIN
		UPDATE kv_revision SET rev = rev + 1 WHERE id = 1;
	END`,

	`CREATE TRIGGER IF NOT EXISTS kv_entries_rev_update AFTER UPDATE ON kv_entries
	BEGIN
		UPDATE kv_revision SET rev = rev + 1 WHERE id = 1;
	END`,

	`CREATE TRIGGER IF NOT EXISTS kv_entries_rev_delete AFTER DELETE ON kv_entries
	BEGIN
		UPDATE kv_revision SET rev = rev + 1 WHERE id = 1;
	END`,
}
