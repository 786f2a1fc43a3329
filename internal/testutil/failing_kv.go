package testutil

import (
	"context"
	"sync"

	"github.com/alexanderramin/bizbook/internal/repository"
)

// FailingKVStore wraps a KVStore and fails Save or Load for selected keys
// while a failure error is armed.
type FailingKVStore struct {
	repository.KVStore

	mu       sync.Mutex
	saveErrs map[string]error
	loadErrs map[string]error
	saves    map[string]int
}

func NewFailingKVStore(inner repository.KVStore) *FailingKVStore {
	return &FailingKVStore{
		KVStore:  inner,
		saveErrs: make(map[string]error),
		loadErrs: make(map[string]error),
		saves:    make(map[string]int),
	}
}

// FailSaves makes every Save of key return err until cleared with a nil err.
func (f *FailingKVStore) FailSaves(key string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err == nil {
		delete(f.saveErrs, key)
		return
	}
	f.saveErrs[key] = err
}

// FailLoads makes every Load of key return err until cleared with a nil err.
func (f *FailingKVStore) FailLoads(key string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err == nil {
		delete(f.loadErrs, key)
		return
	}
	f.loadErrs[key] = err
}

// Saves reports how many Save calls for key reached the wrapped store.
func (f *FailingKVStore) Saves(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.saves[key]
}

func (f *FailingKVStore) Load(ctx context.Context, key string) ([]byte, bool, error) {
	f.mu.Lock()
	err := f.loadErrs[key]
	f.mu.Unlock()
	if err != nil {
		return nil, false, err
	}
	return f.KVStore.Load(ctx, key)
}

func (f *FailingKVStore) Save(ctx context.Context, key string, value []byte) error {
	f.mu.Lock()
	err := f.saveErrs[key]
	if err == nil {
		f.saves[key]++
	}
	f.mu.Unlock()
	if err != nil {
		return err
	}
	return f.KVStore.Save(ctx, key, value)
}
