// Package snapshot keeps named point-in-time copies of the AppState,
// persisted under their own storage key and independent of the live state.
package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/alexanderramin/bizbook/internal/domain"
	"github.com/alexanderramin/bizbook/internal/repository"
	"github.com/alexanderramin/bizbook/internal/store"
	"github.com/google/uuid"
)

// DefaultCollectionKey is the storage key of the snapshot collection.
const DefaultCollectionKey = "snapshots"

// StateStore is the part of store.Store the manager needs.
type StateStore interface {
	Current() domain.AppState
	Apply(ctx context.Context, fn store.Updater) (domain.AppState, error)
}

// Manager owns the snapshot collection. Snapshots are kept in insertion order.
type Manager struct {
	mu        sync.Mutex
	snapshots []domain.Snapshot

	states StateStore
	kv     repository.KVStore
	key    string
	logger *slog.Logger
	now    func() time.Time
	newID  func() string

	loadWarning error
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger used for load and persistence warnings.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

// WithIDGenerator overrides uuid-based id generation.
func WithIDGenerator(gen func() string) Option {
	return func(m *Manager) {
		m.newID = gen
	}
}

// WithCollectionKey overrides DefaultCollectionKey.
func WithCollectionKey(key string) Option {
	return func(m *Manager) {
		m.key = key
	}
}

// NewManager loads the persisted collection. A missing or unreadable
// collection starts empty; the latter is logged and kept in LoadWarning.
// Neither case touches the live state.
func NewManager(ctx context.Context, states StateStore, kv repository.KVStore, opts ...Option) (*Manager, error) {
	m := &Manager{
		states:    states,
		kv:        kv,
		key:       DefaultCollectionKey,
		logger:    slog.New(slog.DiscardHandler),
		now:       time.Now,
		newID:     uuid.NewString,
		snapshots: []domain.Snapshot{},
	}
	for _, opt := range opts {
		opt(m)
	}
	m.logger = m.logger.With("component", "snapshot")

	data, ok, err := kv.Load(ctx, m.key)
	if err != nil {
		return nil, fmt.Errorf("%w: loading snapshots: %w", domain.ErrPersistence, err)
	}
	if !ok {
		return m, nil
	}

	var loaded []domain.Snapshot
	if err := json.Unmarshal(data, &loaded); err != nil {
		m.loadWarning = fmt.Errorf("stored snapshots unreadable, starting empty: %w", err)
		m.logger.WarnContext(ctx, "discarding corrupt snapshot collection", "key", m.key, "error", err)
		return m, nil
	}
	for _, s := range loaded {
		s.Data = s.Data.Normalize()
		m.snapshots = append(m.snapshots, s)
	}
	return m, nil
}

// LoadWarning reports why the persisted collection was discarded, or nil.
func (m *Manager) LoadWarning() error {
	return m.loadWarning
}

// Create captures the current state under name. If the collection cannot be
// saved the snapshot is still kept in memory and the returned error wraps
// domain.ErrPersistence.
func (m *Manager) Create(ctx context.Context, name string) (domain.Snapshot, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Snapshot{}, fmt.Errorf("%w: snapshot name is required", domain.ErrValidation)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	snap := domain.Snapshot{
		ID:        m.uniqueIDLocked(),
		Name:      name,
		Timestamp: m.now().UTC(),
		Data:      m.states.Current(),
	}
	m.snapshots = append(m.snapshots, snap)

	if err := m.persistLocked(ctx); err != nil {
		return snap.Clone(), err
	}
	m.logger.InfoContext(ctx, "snapshot created", "id", snap.ID, "name", snap.Name)
	return snap.Clone(), nil
}

// List returns the snapshots newest first. Snapshots with equal timestamps
// are ordered most recently created first.
func (m *Manager) List() []domain.Snapshot {
	m.mu.Lock()
	out := make([]domain.Snapshot, len(m.snapshots))
	for i, s := range m.snapshots {
		out[len(out)-1-i] = s.Clone()
	}
	m.mu.Unlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out
}

// Get returns the snapshot with id.
func (m *Manager) Get(id string) (domain.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.indexLocked(id)
	if i < 0 {
		return domain.Snapshot{}, fmt.Errorf("%w: snapshot %q", domain.ErrNotFound, id)
	}
	return m.snapshots[i].Clone(), nil
}

// Restore replaces the live state with a copy of the snapshot's data through
// the store's normal Apply path. The snapshot itself is not modified.
func (m *Manager) Restore(ctx context.Context, id string) (domain.AppState, error) {
	snap, err := m.Get(id)
	if err != nil {
		return domain.AppState{}, err
	}
	data := snap.Data
	next, err := m.states.Apply(ctx, func(domain.AppState) (domain.AppState, error) {
		return data.Clone(), nil
	})
	if err != nil {
		return next, err
	}
	m.logger.InfoContext(ctx, "snapshot restored", "id", snap.ID, "name", snap.Name)
	return next, nil
}

// Delete removes the snapshot with id. There is no undo.
func (m *Manager) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexLocked(id)
	if i < 0 {
		return fmt.Errorf("%w: snapshot %q", domain.ErrNotFound, id)
	}
	m.snapshots = append(m.snapshots[:i:i], m.snapshots[i+1:]...)

	if err := m.persistLocked(ctx); err != nil {
		return err
	}
	m.logger.InfoContext(ctx, "snapshot deleted", "id", id)
	return nil
}

func (m *Manager) indexLocked(id string) int {
	for i, s := range m.snapshots {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// uniqueIDLocked draws ids until one is unused.
func (m *Manager) uniqueIDLocked() string {
	for {
		id := m.newID()
		if id != "" && m.indexLocked(id) < 0 {
			return id
		}
	}
}

func (m *Manager) persistLocked(ctx context.Context) error {
	data, err := json.Marshal(m.snapshots)
	if err != nil {
		return fmt.Errorf("%w: encoding snapshots: %w", domain.ErrPersistence, err)
	}
	if err := m.kv.Save(ctx, m.key, data); err != nil {
		m.logger.WarnContext(ctx, "snapshots changed but were not persisted", "key", m.key, "error", err)
		return fmt.Errorf("%w: saving snapshots: %w", domain.ErrPersistence, err)
	}
	return nil
}
