// Package cache puts a freecache read cache in front of a store.Store.
//
// Writes must go through the cached Store so that stale entries are dropped.
package cache

import (
	"context"
	"log/slog"
	"strconv"
	"sync"

	"github.com/coocood/freecache"
	"github.com/phrazzld/scry-decks/internal/store"
)

// DefaultTTLSeconds bounds how long a cached document can outlive an
// out-of-band write.
const DefaultTTLSeconds = 300

// Store caches single-key reads of an underlying store.
type Store struct {
	inner store.Store
	cache *freecache.Cache
	ttl   int

	// generations are bumped by PutCollection so that every cached key of the
	// collection becomes unreachable at once.
	mu          sync.RWMutex
	generations map[string]uint64
}

var (
	_ store.Store     = (*Store)(nil)
	_ store.KeyReader = (*Store)(nil)
	_ store.Batcher   = (*Store)(nil)
)

// Stats reports cache effectiveness.
type Stats struct {
	Hits      int64
	Misses    int64
	Entries   int64
	Evictions int64
}

// New wraps inner with a cache of sizeMB megabytes. A non-positive size
// returns inner unchanged.
func New(inner store.Store, sizeMB int, logger *slog.Logger) store.Store {
	if sizeMB <= 0 {
		if logger != nil {
			logger.Info("store cache disabled")
		}
		return inner
	}
	if logger != nil {
		logger.Info("store cache initialized",
			slog.Int("size_mb", sizeMB),
			slog.Int("ttl_seconds", DefaultTTLSeconds))
	}
	return newStore(inner, sizeMB*1024*1024, DefaultTTLSeconds)
}

func newStore(inner store.Store, sizeBytes, ttl int) *Store {
	return &Store{
		inner:       inner,
		cache:       freecache.NewCache(sizeBytes),
		ttl:         ttl,
		generations: make(map[string]uint64),
	}
}

// Unwrap returns the underlying store.
func (s *Store) Unwrap() store.Store {
	return s.inner
}

// Stats returns the current cache counters.
func (s *Store) Stats() Stats {
	return Stats{
		Hits:      s.cache.HitCount(),
		Misses:    s.cache.MissCount(),
		Entries:   s.cache.EntryCount(),
		Evictions: s.cache.EvacuateCount(),
	}
}

func (s *Store) cacheKey(collection, key string) []byte {
	s.mu.RLock()
	gen := s.generations[collection]
	s.mu.RUnlock()

	b := make([]byte, 0, len(collection)+len(key)+24)
	b = append(b, collection...)
	b = append(b, 0)
	b = strconv.AppendUint(b, gen, 10)
	b = append(b, 0)
	return append(b, key...)
}

// GetKey serves from the cache and falls back to the underlying store.
// Missing keys are not cached.
func (s *Store) GetKey(ctx context.Context, collection, key string) ([]byte, error) {
	ck := s.cacheKey(collection, key)
	if value, err := s.cache.Get(ck); err == nil {
		return value, nil
	}

	value, err := store.GetKey(ctx, s.inner, collection, key)
	if err != nil {
		return nil, err
	}
	// Values larger than the cache segment are simply not cached.
	_ = s.cache.Set(ck, value, s.ttl)
	return value, nil
}

// GetCollection reads through to the underlying store.
func (s *Store) GetCollection(ctx context.Context, name string) (store.Collection, error) {
	return s.inner.GetCollection(ctx, name)
}

// PutCollection writes through and invalidates the whole collection.
func (s *Store) PutCollection(ctx context.Context, name string, c store.Collection) error {
	err := s.inner.PutCollection(ctx, name, c)
	s.mu.Lock()
	s.generations[name]++
	s.mu.Unlock()
	return err
}

// DeleteKey writes through and invalidates key.
func (s *Store) DeleteKey(ctx context.Context, name, key string) error {
	err := s.inner.DeleteKey(ctx, name, key)
	s.cache.Del(s.cacheKey(name, key))
	return err
}

// Apply writes through and invalidates every mutated key, even when the
// underlying write fails part way.
func (s *Store) Apply(ctx context.Context, mutations []store.Mutation) error {
	err := store.ApplyMutations(ctx, s.inner, mutations)
	for _, m := range mutations {
		s.cache.Del(s.cacheKey(m.Collection, m.Key))
	}
	return err
}
