// Package store persists catalog collections in a Badger key-value
// store. Each collection is one JSON value plus a version counter that
// is bumped on every write; the counter lets the sync orchestrator
// detect concurrent admin edits.
package store

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/dgraph-io/badger/v4"
)

// Collection names a cached catalog collection.
type Collection string

// Cached collections.
const (
	CollectionProducts   Collection = "products"
	CollectionCategories Collection = "categories"
	CollectionMenu       Collection = "menu"
	CollectionPages      Collection = "pages"
	CollectionTags       Collection = "tags"
	CollectionTypes      Collection = "types"
	CollectionLevels     Collection = "levels"
	CollectionFacebook   Collection = "fb_urls"
)

// ChangeListener is notified after a collection commit. Listeners keep
// derived state (views, search index) in sync without the store
// depending on their implementations.
type ChangeListener interface {
	CollectionChanged(c Collection)
}

// NoopListener is a no-op ChangeListener for testing.
type NoopListener struct{}

// CollectionChanged implements ChangeListener as a no-op.
func (NoopListener) CollectionChanged(Collection) {}

// Store wraps a Badger database instance.
type Store struct {
	db     *badger.DB
	logger *slog.Logger

	mu        sync.RWMutex
	listeners []ChangeListener
}

// Open opens (or creates) the store at the given path.
func Open(path string, logger *slog.Logger) (*Store, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil            // Disable Badger's internal logging
	opts.SyncWrites = true       // Sync writes to disk to prevent corruption on crashes
	opts.CompactL0OnClose = true // Compact L0 tables on close for faster startup

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db: %w", err)
	}

	if logger != nil {
		logger.Info("badger database opened", "path", path)
	}

	return &Store{db: db, logger: logger}, nil
}

// OpenInMemory opens an ephemeral store. Intended for tests.
func OpenInMemory(logger *slog.Logger) (*Store, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory badger db: %w", err)
	}
	return &Store{db: db, logger: logger}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Subscribe registers a change listener. Listeners are invoked
// synchronously after a successful commit, in registration order.
func (s *Store) Subscribe(l ChangeListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

// notify fans a commit out to the registered listeners.
func (s *Store) notify(c Collection) {
	s.mu.RLock()
	listeners := make([]ChangeListener, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.RUnlock()

	for _, l := range listeners {
		l.CollectionChanged(c)
	}
}

func valueKey(c Collection) []byte {
	return []byte("col:" + string(c))
}

func versionKey(c Collection) []byte {
	return []byte("ver:" + string(c))
}
