package service_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/phrazzld/scry-decks/internal/domain/srs"
	"github.com/phrazzld/scry-decks/internal/identity"
	"github.com/phrazzld/scry-decks/internal/platform/memory"
	"github.com/phrazzld/scry-decks/internal/service"
	"github.com/phrazzld/scry-decks/internal/store"
	"github.com/stretchr/testify/require"
)

var errDiskFull = errors.New("disk full")

// spyStore counts backend calls and can be told to reject batches.
type spyStore struct {
	*memory.Store
	calls     atomic.Int64
	failApply atomic.Bool
}

func newSpyStore() *spyStore {
	return &spyStore{Store: memory.New()}
}

func (s *spyStore) GetCollection(ctx context.Context, name string) (store.Collection, error) {
	s.calls.Add(1)
	return s.Store.GetCollection(ctx, name)
}

func (s *spyStore) GetKey(ctx context.Context, collection, key string) ([]byte, error) {
	s.calls.Add(1)
	return s.Store.GetKey(ctx, collection, key)
}

func (s *spyStore) Apply(ctx context.Context, mutations []store.Mutation) error {
	s.calls.Add(1)
	if s.failApply.Load() {
		return errDiskFull
	}
	return s.Store.Apply(ctx, mutations)
}

// snapshot returns every collection of the store.
func (s *spyStore) snapshot(t *testing.T) map[string]store.Collection {
	t.Helper()
	out := make(map[string]store.Collection)
	for _, c := range store.Collections {
		got, err := s.Store.GetCollection(context.Background(), c)
		require.NoError(t, err)
		out[c] = got
	}
	return out
}

type fixture struct {
	store  *spyStore
	now    time.Time
	decks  service.DeckService
	cards  service.CardService
	stats  service.StatsService
	wipe   service.AccountService
	userID string
}

// newFixture builds the services for one authenticated user over a shared
// store and a fixed clock.
func newFixture(t *testing.T, s *spyStore, id identity.Identity, now *time.Time) *fixture {
	t.Helper()

	tr := store.NewTransactor(s)
	clock := service.WithClock(func() time.Time { return *now })

	decks, err := service.NewDeckService(tr, id, nil, clock)
	require.NoError(t, err)
	cards, err := service.NewCardService(tr, id, nil, clock)
	require.NoError(t, err)
	stats, err := service.NewStatsService(tr, id, srs.NewTracker(srs.NewDefaultParams()), nil, clock)
	require.NoError(t, err)
	wipe, err := service.NewAccountService(tr, id, nil, clock)
	require.NoError(t, err)

	return &fixture{
		store:  s,
		now:    *now,
		decks:  decks,
		cards:  cards,
		stats:  stats,
		wipe:   wipe,
		userID: id.CurrentUserID(context.Background()),
	}
}

func fixedNow() time.Time {
	return time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
}

func newUserFixture(t *testing.T) *fixture {
	t.Helper()
	now := fixedNow()
	return newFixture(t, newSpyStore(), identity.Static("user-1"), &now)
}
