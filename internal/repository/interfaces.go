package repository

import "context"

// KVStore is durable byte storage addressed by key. Implementations must
// never expose a partially written value: a concurrent Load sees either the
// previous value or the new one.
type KVStore interface {
	// Load returns the stored bytes and true, or nil and false when the key
	// has never been saved.
	Load(ctx context.Context, key string) ([]byte, bool, error)
	Save(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
}
