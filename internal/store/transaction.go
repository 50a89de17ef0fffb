package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/phrazzld/scry-decks/internal/platform/logger"
)

type txKey struct {
	collection string
	key        string
}

type txEntry struct {
	value   []byte
	deleted bool
}

// Tx buffers the reads and writes of one operation.
//
// Reads see the operation's own writes. Nothing reaches the backing store
// until the transaction function returns nil.
type Tx struct {
	backend Store
	reads   map[txKey]txEntry
	writes  map[txKey]txEntry
	order   []txKey
}

func newTx(backend Store) *Tx {
	return &Tx{
		backend: backend,
		reads:   make(map[txKey]txEntry),
		writes:  make(map[txKey]txEntry),
	}
}

// Get returns the document stored under key, or ErrNotFound.
func (tx *Tx) Get(ctx context.Context, collection, key string) ([]byte, error) {
	k := txKey{collection: collection, key: key}

	if e, ok := tx.writes[k]; ok {
		if e.deleted {
			return nil, ErrNotFound
		}
		return e.value, nil
	}
	if e, ok := tx.reads[k]; ok {
		if e.deleted {
			return nil, ErrNotFound
		}
		return e.value, nil
	}

	value, err := GetKey(ctx, tx.backend, collection, key)
	switch {
	case errors.Is(err, ErrNotFound):
		tx.reads[k] = txEntry{deleted: true}
		return nil, ErrNotFound
	case err != nil:
		return nil, err
	}

	tx.reads[k] = txEntry{value: value}
	return value, nil
}

// Put buffers a write of value under key.
func (tx *Tx) Put(collection, key string, value []byte) {
	tx.record(txKey{collection: collection, key: key}, txEntry{value: value})
}

// Delete buffers the removal of key.
func (tx *Tx) Delete(collection, key string) {
	tx.record(txKey{collection: collection, key: key}, txEntry{deleted: true})
}

func (tx *Tx) record(k txKey, e txEntry) {
	if _, ok := tx.writes[k]; !ok {
		tx.order = append(tx.order, k)
	}
	tx.writes[k] = e
}

// Mutations returns the buffered writes in first-write order.
func (tx *Tx) Mutations() []Mutation {
	mutations := make([]Mutation, 0, len(tx.order))
	for _, k := range tx.order {
		e := tx.writes[k]
		mutations = append(mutations, Mutation{
			Collection: k.collection,
			Key:        k.key,
			Value:      e.value,
			Delete:     e.deleted,
		})
	}
	return mutations
}

// TxFn is a function that executes within a store transaction.
// The buffered writes are applied if the function returns nil and discarded
// if it returns an error.
type TxFn func(ctx context.Context, tx *Tx) error

// Transactor runs operations against a Store one at a time.
type Transactor struct {
	mu    sync.Mutex
	store Store
}

// NewTransactor creates a Transactor over s.
func NewTransactor(s Store) *Transactor {
	return &Transactor{store: s}
}

// Store returns the backing store.
func (t *Transactor) Store() Store {
	return t.store
}

// RunInTransaction executes fn with a fresh Tx while holding the transactor
// lock. If fn returns an error or panics, nothing is written. Otherwise every
// buffered write is applied with ApplyMutations.
func (t *Transactor) RunInTransaction(ctx context.Context, fn TxFn) error {
	log := logger.FromContextOrDefault(ctx, slog.Default())

	t.mu.Lock()
	defer t.mu.Unlock()

	tx := newTx(t.store)

	defer func() {
		if p := recover(); p != nil {
			log.Error("discarded transaction after panic",
				slog.Any("panic", p))
			// ALLOW-PANIC: Propagating caught panic from transaction
			panic(p)
		}
	}()

	if err := fn(ctx, tx); err != nil {
		log.Debug("discarded transaction due to error",
			slog.String("error", err.Error()))
		return err
	}

	mutations := tx.Mutations()
	if len(mutations) == 0 {
		return nil
	}

	if err := ApplyMutations(ctx, t.store, mutations); err != nil {
		log.Error("failed to apply transaction",
			slog.String("error", err.Error()),
			slog.Int("mutations", len(mutations)))
		return fmt.Errorf("%w: %w", ErrTransactionFailed, err)
	}

	log.Debug("transaction applied",
		slog.Int("mutations", len(mutations)))
	return nil
}
