// Package memory provides an in-process Store. It is the default backend
// for tests and for running the server without persistence.
package memory

import (
	"context"
	"sync"

	"github.com/phrazzld/scry-decks/internal/store"
)

// Store keeps every collection in memory.
type Store struct {
	mu   sync.RWMutex
	data map[string]store.Collection
}

var (
	_ store.Store     = (*Store)(nil)
	_ store.KeyReader = (*Store)(nil)
	_ store.Batcher   = (*Store)(nil)
)

// New returns an empty Store.
func New() *Store {
	return &Store{data: make(map[string]store.Collection)}
}

// GetCollection returns a copy of the named collection.
func (s *Store) GetCollection(ctx context.Context, name string) (store.Collection, error) {
	if err := store.ValidateCollection(name); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.data[name].Clone(), nil
}

// PutCollection replaces the named collection with a copy of c.
func (s *Store) PutCollection(ctx context.Context, name string, c store.Collection) error {
	if err := store.ValidateCollection(name); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[name] = c.Clone()
	return nil
}

// DeleteKey removes key from the named collection.
func (s *Store) DeleteKey(ctx context.Context, name, key string) error {
	if err := store.ValidateCollection(name); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data[name], key)
	return nil
}

// GetKey returns a copy of the value stored under key.
func (s *Store) GetKey(ctx context.Context, collection, key string) ([]byte, error) {
	if err := store.ValidateCollection(collection); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.data[collection][key]
	if !ok {
		return nil, store.ErrNotFound
	}
	return append([]byte(nil), value...), nil
}

// Apply writes all mutations under one lock. The mutations are checked
// before any of them is applied.
func (s *Store) Apply(ctx context.Context, mutations []store.Mutation) error {
	for _, m := range mutations {
		if err := store.ValidateCollection(m.Collection); err != nil {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, m := range mutations {
		c, ok := s.data[m.Collection]
		if !ok {
			c = make(store.Collection)
			s.data[m.Collection] = c
		}
		if m.Delete {
			delete(c, m.Key)
			continue
		}
		c[m.Key] = append([]byte(nil), m.Value...)
	}
	return nil
}
