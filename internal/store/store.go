package store

import (
	"context"
	"fmt"
)

// Collection names.
const (
	CollectionDecks = "decks"
	CollectionCards = "cards"
	CollectionStats = "stats"
)

// Collections lists every collection the application writes.
var Collections = []string{CollectionDecks, CollectionCards, CollectionStats}

// Collection maps a user id to that user's encoded document.
type Collection map[string][]byte

// Clone returns a copy of c whose values do not alias c's.
func (c Collection) Clone() Collection {
	out := make(Collection, len(c))
	for k, v := range c {
		out[k] = append([]byte(nil), v...)
	}
	return out
}

// Keys returns the keys of c in no particular order.
func (c Collection) Keys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	return keys
}

// Store is the persistence substrate.
//
// A missing collection reads as an empty Collection, never as an error.
// Implementations must be safe for concurrent use.
type Store interface {
	// GetCollection returns a copy of the named collection.
	GetCollection(ctx context.Context, name string) (Collection, error)

	// PutCollection replaces the named collection.
	PutCollection(ctx context.Context, name string, c Collection) error

	// DeleteKey removes one key from the named collection. Deleting a missing
	// key is not an error.
	DeleteKey(ctx context.Context, name, key string) error
}

// KeyReader is implemented by stores that can read a single key without
// loading the whole collection. GetKey returns ErrNotFound for a missing key.
type KeyReader interface {
	GetKey(ctx context.Context, collection, key string) ([]byte, error)
}

// Mutation is one buffered write. Delete takes precedence over Value.
type Mutation struct {
	Collection string
	Key        string
	Value      []byte
	Delete     bool
}

// Batcher is implemented by stores that can apply a set of mutations
// atomically, for example inside a single SQL transaction.
type Batcher interface {
	Apply(ctx context.Context, mutations []Mutation) error
}

// GetKey reads one key from s, using KeyReader when s implements it.
func GetKey(ctx context.Context, s Store, collection, key string) ([]byte, error) {
	if kr, ok := s.(KeyReader); ok {
		return kr.GetKey(ctx, collection, key)
	}

	c, err := s.GetCollection(ctx, collection)
	if err != nil {
		return nil, err
	}
	value, ok := c[key]
	if !ok {
		return nil, ErrNotFound
	}
	return value, nil
}

// ApplyMutations writes mutations to s.
//
// Stores implementing Batcher apply the whole set atomically. For any other
// store the mutations are folded into one PutCollection per touched
// collection, which is atomic per collection only.
func ApplyMutations(ctx context.Context, s Store, mutations []Mutation) error {
	if len(mutations) == 0 {
		return nil
	}

	if b, ok := s.(Batcher); ok {
		return b.Apply(ctx, mutations)
	}

	byCollection := make(map[string][]Mutation)
	order := make([]string, 0, len(mutations))
	for _, m := range mutations {
		if _, seen := byCollection[m.Collection]; !seen {
			order = append(order, m.Collection)
		}
		byCollection[m.Collection] = append(byCollection[m.Collection], m)
	}

	for _, name := range order {
		c, err := s.GetCollection(ctx, name)
		if err != nil {
			return fmt.Errorf("failed to read collection %q: %w", name, err)
		}
		for _, m := range byCollection[name] {
			if m.Delete {
				delete(c, m.Key)
				continue
			}
			c[m.Key] = m.Value
		}
		if err := s.PutCollection(ctx, name, c); err != nil {
			return fmt.Errorf("failed to write collection %q: %w", name, err)
		}
	}

	return nil
}
