package repository_test

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/alexanderramin/bizbook/internal/db"
	"github.com/alexanderramin/bizbook/internal/repository"
	"github.com/alexanderramin/bizbook/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func backends(t *testing.T) map[string]func(t *testing.T) repository.KVStore {
	return map[string]func(t *testing.T) repository.KVStore{
		"sqlite": func(t *testing.T) repository.KVStore {
			return repository.NewSQLiteKVStore(testutil.NewTestDB(t))
		},
		"file": func(t *testing.T) repository.KVStore {
			s, err := repository.NewFileKVStore(filepath.Join(t.TempDir(), "data"))
			require.NoError(t, err)
			return s
		},
		"memory": func(t *testing.T) repository.KVStore {
			return repository.NewMemoryKVStore()
		},
	}
}

func TestKVStore_Contract(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			kv := open(t)

			_, ok, err := kv.Load(ctx, "app_state")
			require.NoError(t, err)
			assert.False(t, ok, "unsaved key should be absent")

			require.NoError(t, kv.Save(ctx, "app_state", []byte(`{"v":1}`)))
			got, ok, err := kv.Load(ctx, "app_state")
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, `{"v":1}`, string(got))

			require.NoError(t, kv.Save(ctx, "app_state", []byte(`{"v":2}`)))
			got, _, err = kv.Load(ctx, "app_state")
			require.NoError(t, err)
			assert.Equal(t, `{"v":2}`, string(got), "save should overwrite")

			require.NoError(t, kv.Save(ctx, "snapshots", []byte(`[]`)))
			keys, err := kv.Keys(ctx)
			require.NoError(t, err)
			assert.Equal(t, []string{"app_state", "snapshots"}, keys)

			require.NoError(t, kv.Delete(ctx, "snapshots"))
			_, ok, err = kv.Load(ctx, "snapshots")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, kv.Delete(ctx, "never-saved"), "deleting a missing key is not an error")
		})
	}
}

func TestKVStore_EmptyValueIsPresent(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			kv := open(t)
			require.NoError(t, kv.Save(ctx, "empty", nil))
			got, ok, err := kv.Load(ctx, "empty")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Empty(t, got)
		})
	}
}

func TestKVStore_RejectsUnsafeKeys(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			kv := open(t)
			for _, key := range []string{"", "../escape", "a/b", ".hidden"} {
				assert.Error(t, kv.Save(context.Background(), key, []byte("x")), "key %q", key)
			}
		})
	}
}

func TestMemoryKVStore_CopiesValues(t *testing.T) {
	ctx := context.Background()
	kv := repository.NewMemoryKVStore()
	buf := []byte("abc")
	require.NoError(t, kv.Save(ctx, "k", buf))
	buf[0] = 'X'

	got, _, err := kv.Load(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))

	got[1] = 'Y'
	again, _, _ := kv.Load(ctx, "k")
	assert.Equal(t, "abc", string(again))
}

func TestSQLiteKVStore_FailedSaveKeepsPreviousValue(t *testing.T) {
	ctx := context.Background()
	database := testutil.NewTestDB(t)
	uow := &testutil.FailOnNthExecUoW{DB: database, FailOn: 2, Err: errors.New("disk full")}
	kv := repository.NewSQLiteKVStoreWithUoW(database, uow)

	require.NoError(t, kv.Save(ctx, "app_state", []byte("v1")))
	err := kv.Save(ctx, "app_state", []byte("v2"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")

	got, ok, err := kv.Load(ctx, "app_state")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "v1", string(got))
	assert.Equal(t, int32(2), uow.Execs())
}

func TestSQLiteKVStore_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	database, path := testutil.NewTestFileDB(t)
	require.NoError(t, repository.NewSQLiteKVStoreWithUoW(database, testutil.NewTestUoW(database)).
		Save(ctx, "app_state", []byte(`{"v":1}`)))
	require.NoError(t, database.Close())

	reopened, err := db.OpenDB(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })

	got, ok, err := repository.NewSQLiteKVStore(reopened).Load(ctx, "app_state")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `{"v":1}`, string(got))
}

// A file-backed database shares state across pooled connections, unlike
// :memory:, so readers and the writer really run concurrently here.
func TestSQLiteKVStore_ConcurrentReadersNeverSeePartialValues(t *testing.T) {
	ctx := context.Background()
	database, _ := testutil.NewTestFileDB(t)
	kv := repository.NewSQLiteKVStore(database)

	value := func(i int) string {
		return fmt.Sprintf(`{"generation":%04d,"pad":"%0512d"}`, i, i)
	}
	require.NoError(t, kv.Save(ctx, "app_state", []byte(value(0))))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 1; i <= 30; i++ {
			if err := kv.Save(ctx, "app_state", []byte(value(i))); err != nil {
				t.Errorf("writer: save %d: %v", i, err)
				return
			}
		}
	}()

	valid := make(map[string]bool, 31)
	for i := 0; i <= 30; i++ {
		valid[value(i)] = true
	}
	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func(reader int) {
			defer wg.Done()
			for i := 0; i < 20; i++ {
				got, ok, err := kv.Load(ctx, "app_state")
				if err != nil {
					t.Errorf("reader %d: %v", reader, err)
					return
				}
				if !ok || !valid[string(got)] {
					t.Errorf("reader %d saw unexpected value %q", reader, got)
					return
				}
			}
		}(r)
	}
	wg.Wait()
}
