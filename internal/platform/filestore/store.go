// Package filestore keeps every collection in a single zstd-compressed JSON
// file. Each write replaces the file atomically, so a crash leaves either the
// previous or the new contents on disk.
package filestore

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	json "github.com/goccy/go-json"
	"github.com/phrazzld/scry-decks/internal/store"
)

// snapshot is the on-disk layout: collection -> key -> document.
type snapshot map[string]map[string]json.RawMessage

// Store is a store.Store persisted to one file.
type Store struct {
	mu         sync.RWMutex
	path       string
	data       map[string]store.Collection
	compressor *zstdCompression
	logger     *slog.Logger
	closed     bool
}

var (
	_ store.Store     = (*Store)(nil)
	_ store.KeyReader = (*Store)(nil)
	_ store.Batcher   = (*Store)(nil)
)

// Open loads path, creating an empty store when the file does not exist.
func Open(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	compressor, err := newZstdCompression()
	if err != nil {
		return nil, err
	}

	s := &Store{
		path:       path,
		data:       make(map[string]store.Collection),
		compressor: compressor,
		logger:     logger.With(slog.String("component", "file_store"), slog.String("path", path)),
	}
	if err := s.load(); err != nil {
		compressor.close()
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Info("store file not found, starting empty")
			return nil
		}
		return fmt.Errorf("failed to read store file: %w", err)
	}

	decompressed, err := s.compressor.decompress(raw)
	if err != nil {
		return store.NewStoreError("file", "load", "failed to decompress store file",
			fmt.Errorf("%w: %v", store.ErrInvalidEntity, err))
	}

	var snap snapshot
	if err := json.Unmarshal(decompressed, &snap); err != nil {
		return store.NewStoreError("file", "load", "failed to decode store file",
			fmt.Errorf("%w: %v", store.ErrInvalidEntity, err))
	}

	for name, docs := range snap {
		if err := store.ValidateCollection(name); err != nil {
			s.logger.Warn("ignoring unknown collection in store file", slog.String("collection", name))
			continue
		}
		c := make(store.Collection, len(docs))
		for key, doc := range docs {
			c[key] = []byte(doc)
		}
		s.data[name] = c
	}

	s.logger.Info("store file loaded", slog.Int("collections", len(s.data)))
	return nil
}

// persist writes data to a temporary file and renames it over the store file.
func (s *Store) persist(data map[string]store.Collection) error {
	snap := make(snapshot, len(data))
	for name, c := range data {
		docs := make(map[string]json.RawMessage, len(c))
		for key, value := range c {
			if !json.Valid(value) {
				return fmt.Errorf("%w: %s/%s is not valid JSON", store.ErrInvalidEntity, name, key)
			}
			docs[key] = json.RawMessage(value)
		}
		snap[name] = docs
	}

	jsonData, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}
	compressed := s.compressor.compress(jsonData)

	if err := os.MkdirAll(filepath.Dir(s.path), 0o750); err != nil {
		return err
	}

	tmpFile := s.path + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	if _, err = file.Write(compressed); err != nil {
		_ = file.Close()
		_ = os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		_ = file.Close()
		_ = os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		_ = os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, s.path)
}

// update applies fn to a copy of the data and swaps it in once the copy is
// on disk. Callers must hold s.mu.
func (s *Store) update(op string, fn func(map[string]store.Collection)) error {
	if s.closed {
		return store.ErrClosed
	}

	next := make(map[string]store.Collection, len(s.data))
	for name, c := range s.data {
		next[name] = c
	}
	fn(next)

	if err := s.persist(next); err != nil {
		return store.NewStoreError("file", op, "failed to write store file", err)
	}
	s.data = next
	return nil
}

// GetCollection implements store.Store.
func (s *Store) GetCollection(ctx context.Context, name string) (store.Collection, error) {
	if err := store.ValidateCollection(name); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, store.ErrClosed
	}
	return s.data[name].Clone(), nil
}

// GetKey implements store.KeyReader.
func (s *Store) GetKey(ctx context.Context, collection, key string) ([]byte, error) {
	if err := store.ValidateCollection(collection); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, store.ErrClosed
	}
	value, ok := s.data[collection][key]
	if !ok {
		return nil, store.ErrNotFound
	}
	return append([]byte(nil), value...), nil
}

// PutCollection implements store.Store.
func (s *Store) PutCollection(ctx context.Context, name string, c store.Collection) error {
	if err := store.ValidateCollection(name); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.update("put", func(data map[string]store.Collection) {
		data[name] = c.Clone()
	})
}

// DeleteKey implements store.Store.
func (s *Store) DeleteKey(ctx context.Context, name, key string) error {
	if err := store.ValidateCollection(name); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data[name][key]; !ok {
		return nil
	}
	return s.update("delete", func(data map[string]store.Collection) {
		c := data[name].Clone()
		delete(c, key)
		data[name] = c
	})
}

// Apply implements store.Batcher. The file is written once for the whole batch.
func (s *Store) Apply(ctx context.Context, mutations []store.Mutation) error {
	for _, m := range mutations {
		if err := store.ValidateCollection(m.Collection); err != nil {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.update("apply", func(data map[string]store.Collection) {
		touched := make(map[string]bool)
		for _, m := range mutations {
			if !touched[m.Collection] {
				c := data[m.Collection].Clone()
				data[m.Collection] = c
				touched[m.Collection] = true
			}
			if m.Delete {
				delete(data[m.Collection], m.Key)
				continue
			}
			data[m.Collection][m.Key] = append([]byte(nil), m.Value...)
		}
	})
}

// Close releases the compressor. The store cannot be used afterwards.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	s.compressor.close()
	return nil
}
