package catalog

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/dmitrijs2005/realty/internal/logging"
)

// ReloadObserver is told about every reload outcome. stale is true when a
// response was dropped because a newer one had already been applied.
type ReloadObserver interface {
	ObserveReload(size int, stale bool, err error)
}

// Store is an in-memory mirror of a Collection. It is only ever replaced
// wholesale by Reload; callers get copies.
type Store struct {
	collection Collection
	logger     logging.Logger
	observer   ReloadObserver

	issued atomic.Uint64

	mu      sync.RWMutex
	items   []Property
	applied uint64
	loaded  bool
}

type StoreOption func(*Store)

func WithReloadObserver(o ReloadObserver) StoreOption {
	return func(s *Store) { s.observer = o }
}

func NewStore(c Collection, l logging.Logger, opts ...StoreOption) *Store {
	s := &Store{
		collection: c,
		logger:     l.With("module", "catalog_store"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Reload fetches the whole collection and replaces the current set with it.
// Every call takes a sequence number up front; a response is only applied
// if no later call has been applied already, so a slow request can never
// overwrite fresher data. On failure the previous set is kept and the error
// is logged and returned.
func (s *Store) Reload(ctx context.Context) error {
	seq := s.issued.Add(1)

	items, err := s.collection.List(ctx)
	if err != nil {
		s.logger.Error(ctx, "catalog reload failed", "seq", seq, "error", err)
		s.observe(0, false, err)
		return fmt.Errorf("reload catalog: %w", err)
	}

	s.mu.Lock()
	if seq < s.applied {
		s.mu.Unlock()
		s.logger.Warn(ctx, "discarding stale catalog response", "seq", seq)
		s.observe(len(items), true, nil)
		return nil
	}
	s.items = append([]Property(nil), items...)
	s.applied = seq
	s.loaded = true
	s.mu.Unlock()

	s.logger.Debug(ctx, "catalog reloaded", "seq", seq, "count", len(items))
	s.observe(len(items), false, nil)
	return nil
}

func (s *Store) observe(size int, stale bool, err error) {
	if s.observer != nil {
		s.observer.ObserveReload(size, stale, err)
	}
}

// All returns a copy of the current set in collection order.
func (s *Store) All() []Property {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Property(nil), s.items...)
}

// Loaded reports whether at least one reload has succeeded. Until then
// views show a loading indicator.
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Query filters the current set.
func (s *Store) Query(c Criteria) []Property {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Filter(s.items, c)
}

// Lookup finds a listing by id in the current set.
func (s *Store) Lookup(id int64) (Property, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.items {
		if p.ID == id {
			return p, true
		}
	}
	return Property{}, false
}
