// Package store holds the single authoritative AppState and the only
// sanctioned way to change it: Apply, which computes the next state,
// persists it and notifies listeners.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/alexanderramin/bizbook/internal/domain"
	"github.com/alexanderramin/bizbook/internal/repository"
)

// DefaultStateKey is the storage key of the persisted AppState.
const DefaultStateKey = "app_state"

// Updater computes the next state from the current one. It receives a private
// copy and may modify it freely. Returning an error aborts the transition.
type Updater func(domain.AppState) (domain.AppState, error)

// Listener is called after every successful transition with the new state,
// one transition at a time and in the order transitions were installed.
type Listener func(domain.AppState)

// Store owns the live AppState. It is safe for concurrent use; Apply calls
// are serialized so each updater sees the result of the previous one.
type Store struct {
	mu      sync.Mutex
	state   domain.AppState
	applied uint64

	// delivered is the sequence number of the last notified transition.
	notifyMu   sync.Mutex
	notifyCond *sync.Cond
	delivered  uint64

	kv     repository.KVStore
	key    string
	logger *slog.Logger

	listenersMu sync.Mutex
	listeners   map[int]Listener
	nextID      int

	loadWarning error
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for load and persistence warnings.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithStateKey overrides DefaultStateKey.
func WithStateKey(key string) Option {
	return func(s *Store) {
		s.key = key
	}
}

// WithListener registers a change listener at construction time.
func WithListener(l Listener) Option {
	return func(s *Store) {
		s.addListener(l)
	}
}

// New loads the persisted state. A missing record yields the empty state.
// A record that cannot be decoded also yields the empty state; the problem is
// logged and kept in LoadWarning. Only a failing read returns an error.
func New(ctx context.Context, kv repository.KVStore, opts ...Option) (*Store, error) {
	s := &Store{
		kv:        kv,
		key:       DefaultStateKey,
		logger:    slog.New(slog.DiscardHandler),
		listeners: make(map[int]Listener),
	}
	s.notifyCond = sync.NewCond(&s.notifyMu)
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "store")

	data, ok, err := kv.Load(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("%w: loading state: %w", domain.ErrPersistence, err)
	}
	if !ok {
		s.state = domain.EmptyState()
		return s, nil
	}

	state, err := decodeState(data)
	if err != nil {
		s.loadWarning = fmt.Errorf("stored state unreadable, starting empty: %w", err)
		s.logger.WarnContext(ctx, "discarding corrupt state", "key", s.key, "error", err)
		s.state = domain.EmptyState()
		return s, nil
	}
	s.state = state
	return s, nil
}

// LoadWarning reports why the persisted state was discarded at startup, or nil.
func (s *Store) LoadWarning() error {
	return s.loadWarning
}

// Current returns a copy of the live state.
func (s *Store) Current() domain.AppState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Apply runs fn against the live state and installs the result.
//
// If fn returns an error nothing changes and that error is returned. If the
// new state cannot be persisted, the live state still advances, listeners are
// still notified, and the returned error wraps domain.ErrPersistence; the
// returned state is the new live state in that case too.
//
// Listeners see transitions in the order they were installed, even when
// Apply is called concurrently. A listener must not call Apply itself.
func (s *Store) Apply(ctx context.Context, fn Updater) (domain.AppState, error) {
	view, seq, persistErr, err := s.transition(ctx, fn)
	if err != nil {
		return domain.AppState{}, err
	}

	s.deliver(seq, view)

	if persistErr != nil {
		s.logger.WarnContext(ctx, "state changed but was not persisted", "key", s.key, "error", persistErr)
		return view.Clone(), persistErr
	}
	return view.Clone(), nil
}

// transition computes, persists and installs the next state under mu and
// numbers it. A panicking updater leaves the store unlocked and unchanged.
func (s *Store) transition(ctx context.Context, fn Updater) (view domain.AppState, seq uint64, persistErr, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := fn(s.state.Clone())
	if err != nil {
		return domain.AppState{}, 0, nil, err
	}
	next = next.Normalize()

	persistErr = s.persistLocked(ctx, next)
	s.state = next
	s.applied++
	return next.Clone(), s.applied, persistErr, nil
}

// deliver notifies listeners of transition seq once every earlier transition
// has been delivered.
func (s *Store) deliver(seq uint64, state domain.AppState) {
	s.notifyMu.Lock()
	for s.delivered != seq-1 {
		s.notifyCond.Wait()
	}
	s.notifyMu.Unlock()

	defer func() {
		s.notifyMu.Lock()
		s.delivered = seq
		s.notifyCond.Broadcast()
		s.notifyMu.Unlock()
	}()
	s.notify(state)
}

// Persist writes the current state again. It is the way to retry after Apply
// reported a persistence failure.
func (s *Store) Persist(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persistLocked(ctx, s.state)
}

// Subscribe registers l and returns a function that removes it.
func (s *Store) Subscribe(l Listener) (unsubscribe func()) {
	id := s.addListener(l)
	return func() {
		s.listenersMu.Lock()
		delete(s.listeners, id)
		s.listenersMu.Unlock()
	}
}

func (s *Store) addListener(l Listener) int {
	s.listenersMu.Lock()
	defer s.listenersMu.Unlock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = l
	return id
}

func (s *Store) notify(state domain.AppState) {
	s.listenersMu.Lock()
	ls := make([]Listener, 0, len(s.listeners))
	// Registration order.
	for id := 0; id < s.nextID; id++ {
		if l, ok := s.listeners[id]; ok {
			ls = append(ls, l)
		}
	}
	s.listenersMu.Unlock()

	for _, l := range ls {
		l(state.Clone())
	}
}

func (s *Store) persistLocked(ctx context.Context, state domain.AppState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("%w: encoding state: %w", domain.ErrPersistence, err)
	}
	if err := s.kv.Save(ctx, s.key, data); err != nil {
		return fmt.Errorf("%w: saving state: %w", domain.ErrPersistence, err)
	}
	return nil
}

func decodeState(data []byte) (domain.AppState, error) {
	var state domain.AppState
	if err := json.Unmarshal(data, &state); err != nil {
		return domain.AppState{}, err
	}
	return state.Normalize(), nil
}
