package db

import (
	"database/sql"
	"fmt"
)

// migrations are applied in order; PRAGMA user_version records how many have
// run so each statement executes exactly once per database.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS kv_records (
		key        TEXT PRIMARY KEY,
		value      BLOB NOT NULL,
		updated_at TEXT NOT NULL
	)`,
	`ALTER TABLE kv_records ADD COLUMN size_bytes INTEGER NOT NULL DEFAULT 0`,
	`UPDATE kv_records SET size_bytes = length(value) WHERE size_bytes = 0`,
}

// SchemaVersion is the user_version of a fully migrated database.
var SchemaVersion = len(migrations)

// Migrate brings the schema up to SchemaVersion.
func Migrate(db *sql.DB) error {
	var version int
	if err := db.QueryRow(`PRAGMA user_version`).Scan(&version); err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}
	if version > len(migrations) {
		return fmt.Errorf("database schema version %d is newer than supported version %d", version, len(migrations))
	}

	for i := version; i < len(migrations); i++ {
		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("migration %d: beginning transaction: %w", i, err)
		}
		if _, err := tx.Exec(migrations[i]); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d: %w", i, err)
		}
		// PRAGMA does not accept bound parameters.
		if _, err := tx.Exec(fmt.Sprintf(`PRAGMA user_version = %d`, i+1)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d: recording version: %w", i, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("migration %d: committing: %w", i, err)
		}
	}
	return nil
}
