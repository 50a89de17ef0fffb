package metrics

import (
	"context"
	"time"

	"github.com/phrazzld/scry-decks/internal/store"
)

// instrumentedStore times every call to the wrapped store.
type instrumentedStore struct {
	inner store.Store
	rec   Recorder
}

var (
	_ store.Store     = (*instrumentedStore)(nil)
	_ store.KeyReader = (*instrumentedStore)(nil)
	_ store.Batcher   = (*instrumentedStore)(nil)
)

// InstrumentStore wraps s so that each operation is reported to rec.
func InstrumentStore(s store.Store, rec Recorder) store.Store {
	return &instrumentedStore{inner: s, rec: rec}
}

func (s *instrumentedStore) observe(op string, start time.Time, err error) {
	s.rec.ObserveStoreOperation(op, time.Since(start), err)
}

func (s *instrumentedStore) GetCollection(ctx context.Context, name string) (c store.Collection, err error) {
	start := time.Now()
	c, err = s.inner.GetCollection(ctx, name)
	s.observe("get_collection", start, err)
	return c, err
}

func (s *instrumentedStore) PutCollection(ctx context.Context, name string, c store.Collection) (err error) {
	start := time.Now()
	err = s.inner.PutCollection(ctx, name, c)
	s.observe("put_collection", start, err)
	return err
}

func (s *instrumentedStore) DeleteKey(ctx context.Context, name, key string) (err error) {
	start := time.Now()
	err = s.inner.DeleteKey(ctx, name, key)
	s.observe("delete_key", start, err)
	return err
}

func (s *instrumentedStore) GetKey(ctx context.Context, collection, key string) (value []byte, err error) {
	start := time.Now()
	value, err = store.GetKey(ctx, s.inner, collection, key)
	if store.IsNotFoundError(err) {
		s.observe("get_key", start, nil)
	} else {
		s.observe("get_key", start, err)
	}
	return value, err
}

func (s *instrumentedStore) Apply(ctx context.Context, mutations []store.Mutation) (err error) {
	start := time.Now()
	err = store.ApplyMutations(ctx, s.inner, mutations)
	s.observe("apply", start, err)
	return err
}
