package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/bizbook/internal/db"
)

// SQLiteKVStore implements KVStore on the kv_records table. Each Save is a
// single upsert committed in its own transaction.
type SQLiteKVStore struct {
	db  db.DBTX
	uow db.UnitOfWork
}

// NewSQLiteKVStore creates a SQLiteKVStore on an open database.
func NewSQLiteKVStore(database *sql.DB) *SQLiteKVStore {
	return &SQLiteKVStore{db: database, uow: db.NewSQLiteUnitOfWork(database)}
}

// NewSQLiteKVStoreWithUoW creates a SQLiteKVStore whose writes go through uow.
// Reads use conn directly.
func NewSQLiteKVStoreWithUoW(conn db.DBTX, uow db.UnitOfWork) *SQLiteKVStore {
	return &SQLiteKVStore{db: conn, uow: uow}
}

func (r *SQLiteKVStore) Load(ctx context.Context, key string) ([]byte, bool, error) {
	if err := validateKey(key); err != nil {
		return nil, false, err
	}
	var value []byte
	err := r.db.QueryRowContext(ctx, `SELECT value FROM kv_records WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("loading %q: %w", key, err)
	}
	if value == nil {
		value = []byte{}
	}
	return value, true, nil
}

func (r *SQLiteKVStore) Save(ctx context.Context, key string, value []byte) error {
	if err := validateKey(key); err != nil {
		return err
	}
	if value == nil {
		value = []byte{}
	}
	return r.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO kv_records (key, value, updated_at, size_bytes) VALUES (?, ?, ?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at, size_bytes = excluded.size_bytes`,
			key, value, nowUTC(), len(value),
		)
		if err != nil {
			return fmt.Errorf("saving %q: %w", key, err)
		}
		return nil
	})
}

func (r *SQLiteKVStore) Delete(ctx context.Context, key string) error {
	if err := validateKey(key); err != nil {
		return err
	}
	return r.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM kv_records WHERE key = ?`, key); err != nil {
			return fmt.Errorf("deleting %q: %w", key, err)
		}
		return nil
	})
}

func (r *SQLiteKVStore) Keys(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key FROM kv_records ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("listing keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("scanning key: %w", err)
		}
		keys = append(keys, k)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating keys: %w", err)
	}
	return keys, nil
}
