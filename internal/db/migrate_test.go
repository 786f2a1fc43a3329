package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))

	var version int
	require.NoError(t, db.QueryRow(`PRAGMA user_version`).Scan(&version))
	assert.Equal(t, SchemaVersion, version)
}

func TestMigrate_CreatesKVTable(t *testing.T) {
	db := openTestDB(t)

	var name string
	err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name='kv_records'`).Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "kv_records", name)

	_, err = db.Exec(`INSERT INTO kv_records (key, value, updated_at, size_bytes) VALUES ('k', x'00', '2024-01-01T00:00:00Z', 1)`)
	require.NoError(t, err)
}

func TestMigrate_UpgradeFromFirstVersion(t *testing.T) {
	raw, err := sql.Open("sqlite", MemoryPath)
	require.NoError(t, err)
	raw.SetMaxOpenConns(1)
	t.Cleanup(func() { raw.Close() })

	// A database created before size_bytes existed.
	_, err = raw.Exec(migrations[0])
	require.NoError(t, err)
	_, err = raw.Exec(`PRAGMA user_version = 1`)
	require.NoError(t, err)
	_, err = raw.Exec(`INSERT INTO kv_records (key, value, updated_at) VALUES ('app_state', 'abcd', '2024-01-01T00:00:00Z')`)
	require.NoError(t, err)

	require.NoError(t, Migrate(raw))

	var size int
	require.NoError(t, raw.QueryRow(`SELECT size_bytes FROM kv_records WHERE key = 'app_state'`).Scan(&size))
	assert.Equal(t, 4, size)
}

func TestMigrate_RejectsNewerSchema(t *testing.T) {
	db := openTestDB(t)
	_, err := db.Exec(`PRAGMA user_version = 99`)
	require.NoError(t, err)

	err = Migrate(db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "newer than supported")
}
