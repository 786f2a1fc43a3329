package snapshot_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/alexanderramin/bizbook/internal/domain"
	"github.com/alexanderramin/bizbook/internal/repository"
	"github.com/alexanderramin/bizbook/internal/snapshot"
	"github.com/alexanderramin/bizbook/internal/store"
	"github.com/alexanderramin/bizbook/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	kv    *testutil.FailingKVStore
	store *store.Store
	mgr   *snapshot.Manager
}

func setup(t *testing.T, opts ...snapshot.Option) fixture {
	t.Helper()
	ctx := context.Background()
	kv := testutil.NewFailingKVStore(repository.NewSQLiteKVStore(testutil.NewTestDB(t)))
	st, err := store.New(ctx, kv)
	require.NoError(t, err)
	mgr, err := snapshot.NewManager(ctx, st, kv, opts...)
	require.NoError(t, err)
	return fixture{kv: kv, store: st, mgr: mgr}
}

func seed(t *testing.T, st *store.Store, state domain.AppState) {
	t.Helper()
	_, err := st.Apply(context.Background(), func(domain.AppState) (domain.AppState, error) {
		return state, nil
	})
	require.NoError(t, err)
}

// fixedClock returns a clock that advances by step on every call.
func fixedClock(start time.Time, step time.Duration) func() time.Time {
	next := start
	return func() time.Time {
		t := next
		next = next.Add(step)
		return t
	}
}

func TestCreate_RejectsBlankName(t *testing.T) {
	f := setup(t)
	for _, name := range []string{"", "   ", "\t\n"} {
		_, err := f.mgr.Create(context.Background(), name)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrValidation)
	}
	assert.Empty(t, f.mgr.List())
	assert.Equal(t, 0, f.kv.Saves(snapshot.DefaultCollectionKey))
}

func TestCreate_TrimsNameAndStampsTime(t *testing.T) {
	at := time.Date(2024, 3, 31, 18, 0, 0, 0, time.UTC)
	f := setup(t, snapshot.WithClock(func() time.Time { return at }))

	snap, err := f.mgr.Create(context.Background(), "  Q1 close  ")
	require.NoError(t, err)
	assert.Equal(t, "Q1 close", snap.Name)
	assert.Equal(t, at, snap.Timestamp)
	assert.NotEmpty(t, snap.ID)
}

func TestCreateThenRestore_ReproducesStateAfterLaterEdits(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	original := testutil.NewTestState()
	seed(t, f.store, original)

	snap, err := f.mgr.Create(ctx, "Q1")
	require.NoError(t, err)

	_, err = f.store.Apply(ctx, func(s domain.AppState) (domain.AppState, error) {
		s.Transactions = s.Transactions[:1]
		s.Transactions[0].Description = "edited"
		s.Clients = append(s.Clients, testutil.NewTestClient("Later"))
		return s, nil
	})
	require.NoError(t, err)
	require.False(t, f.store.Current().Equal(original))

	restored, err := f.mgr.Restore(ctx, snap.ID)
	require.NoError(t, err)
	assert.True(t, restored.Equal(original))
	assert.True(t, f.store.Current().Equal(original))
}

func TestSnapshotData_IsIsolatedFromLiveState(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	seed(t, f.store, testutil.NewTestState())

	snap, err := f.mgr.Create(ctx, "before")
	require.NoError(t, err)

	// Mutating the returned copy must not reach the stored snapshot.
	snap.Data.Transactions[0].Description = "scribbled"

	_, err = f.mgr.Restore(ctx, snap.ID)
	require.NoError(t, err)
	_, err = f.store.Apply(ctx, func(s domain.AppState) (domain.AppState, error) {
		s.Transactions[0].Description = "changed after restore"
		return s, nil
	})
	require.NoError(t, err)

	stored, err := f.mgr.Get(snap.ID)
	require.NoError(t, err)
	assert.Equal(t, "Invoice 1", stored.Data.Transactions[0].Description)
}

func TestRestore_UnknownID(t *testing.T) {
	f := setup(t)
	seed(t, f.store, testutil.NewTestState())
	before := f.store.Current()

	_, err := f.mgr.Restore(context.Background(), "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.True(t, f.store.Current().Equal(before))
}

func TestRestore_DoesNotTouchCollection(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	a, err := f.mgr.Create(ctx, "a")
	require.NoError(t, err)
	_, err = f.mgr.Create(ctx, "b")
	require.NoError(t, err)
	saves := f.kv.Saves(snapshot.DefaultCollectionKey)

	_, err = f.mgr.Restore(ctx, a.ID)
	require.NoError(t, err)
	assert.Len(t, f.mgr.List(), 2)
	assert.Equal(t, saves, f.kv.Saves(snapshot.DefaultCollectionKey))
}

func TestList_NewestFirstWithStableTies(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	stamps := []time.Time{base, base.Add(time.Hour), base.Add(time.Hour), base.Add(-time.Hour)}
	i := 0
	f := setup(t, snapshot.WithClock(func() time.Time {
		t := stamps[i]
		i++
		return t
	}))

	for _, name := range []string{"first", "second", "third", "backdated"} {
		_, err := f.mgr.Create(ctx, name)
		require.NoError(t, err)
	}

	var names []string
	for _, s := range f.mgr.List() {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"third", "second", "first", "backdated"}, names)
}

func TestList_CallerCopyIsIndependent(t *testing.T) {
	ctx := context.Background()
	f := setup(t, snapshot.WithClock(fixedClock(time.Now(), time.Minute)))
	_, err := f.mgr.Create(ctx, "one")
	require.NoError(t, err)
	_, err = f.mgr.Create(ctx, "two")
	require.NoError(t, err)

	list := f.mgr.List()
	list[0], list[1] = list[1], list[0]
	list[0].Name = "renamed"

	again := f.mgr.List()
	assert.Equal(t, "two", again[0].Name)
	assert.Equal(t, "one", again[1].Name)
}

func TestCreate_RedrawsCollidingIDs(t *testing.T) {
	ctx := context.Background()
	ids := []string{"dup", "dup", "", "dup", "fresh"}
	n := 0
	f := setup(t, snapshot.WithIDGenerator(func() string {
		id := ids[n]
		n++
		return id
	}))

	a, err := f.mgr.Create(ctx, "a")
	require.NoError(t, err)
	b, err := f.mgr.Create(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, "dup", a.ID)
	assert.Equal(t, "fresh", b.ID)
}

func TestCreate_ManyIDsAreUnique(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	f := setup(t, snapshot.WithClock(func() time.Time { return at }))

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		s, err := f.mgr.Create(ctx, fmt.Sprintf("s%d", i))
		require.NoError(t, err)
		require.False(t, seen[s.ID], "duplicate id %s", s.ID)
		seen[s.ID] = true
	}
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	seed(t, f.store, testutil.NewTestState())
	before := f.store.Current()

	a, err := f.mgr.Create(ctx, "a")
	require.NoError(t, err)
	b, err := f.mgr.Create(ctx, "b")
	require.NoError(t, err)

	require.NoError(t, f.mgr.Delete(ctx, a.ID))
	list := f.mgr.List()
	require.Len(t, list, 1)
	assert.Equal(t, b.ID, list[0].ID)
	assert.True(t, f.store.Current().Equal(before), "deleting a snapshot leaves the live state alone")

	err = f.mgr.Delete(ctx, a.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCollection_SurvivesReload(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	seed(t, f.store, testutil.NewTestState())
	snap, err := f.mgr.Create(ctx, "persisted")
	require.NoError(t, err)

	reloaded, err := snapshot.NewManager(ctx, f.store, f.kv)
	require.NoError(t, err)
	got, err := reloaded.Get(snap.ID)
	require.NoError(t, err)
	assert.Equal(t, "persisted", got.Name)
	assert.True(t, got.Timestamp.Equal(snap.Timestamp))
	assert.True(t, got.Data.Equal(snap.Data))
}

func TestNewManager_CorruptCollectionDoesNotBlockState(t *testing.T) {
	ctx := context.Background()
	kv := repository.NewMemoryKVStore()
	st, err := store.New(ctx, kv)
	require.NoError(t, err)
	seed(t, st, testutil.NewTestState())
	require.NoError(t, kv.Save(ctx, snapshot.DefaultCollectionKey, []byte(`[{"id":"x","data":{"clients":[]}}]`)))

	mgr, err := snapshot.NewManager(ctx, st, kv)
	require.NoError(t, err)
	assert.Error(t, mgr.LoadWarning())
	assert.Empty(t, mgr.List())

	_, err = st.Apply(ctx, func(s domain.AppState) (domain.AppState, error) {
		s.Clients = append(s.Clients, testutil.NewTestClient("Still works"))
		return s, nil
	})
	assert.NoError(t, err)
}

func TestCorruptState_DoesNotBlockSnapshots(t *testing.T) {
	ctx := context.Background()
	kv := repository.NewMemoryKVStore()
	require.NoError(t, kv.Save(ctx, store.DefaultStateKey, []byte(`garbage`)))

	st, err := store.New(ctx, kv)
	require.NoError(t, err)
	require.Error(t, st.LoadWarning())

	mgr, err := snapshot.NewManager(ctx, st, kv)
	require.NoError(t, err)
	_, err = mgr.Create(ctx, "after corruption")
	assert.NoError(t, err)
}

func TestCreate_PersistenceFailureKeepsSnapshotInMemory(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	f.kv.FailSaves(snapshot.DefaultCollectionKey, errors.New("quota exceeded"))

	snap, err := f.mgr.Create(ctx, "unsaved")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrPersistence)

	_, err = f.mgr.Get(snap.ID)
	assert.NoError(t, err)
}

func TestRestore_PersistenceFailureReported(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	seed(t, f.store, testutil.NewTestState())
	snap, err := f.mgr.Create(ctx, "s")
	require.NoError(t, err)
	seed(t, f.store, domain.EmptyState())

	f.kv.FailSaves(store.DefaultStateKey, errors.New("quota exceeded"))
	restored, err := f.mgr.Restore(ctx, snap.ID)
	require.ErrorIs(t, err, domain.ErrPersistence)
	assert.True(t, restored.Equal(snap.Data))
	assert.True(t, f.store.Current().Equal(snap.Data))
}
