package service_test

import (
	"context"
	"testing"

	"github.com/phrazzld/scry-decks/internal/domain"
	"github.com/phrazzld/scry-decks/internal/identity"
	"github.com/phrazzld/scry-decks/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountService_DeleteAllData(t *testing.T) {
	s := newSpyStore()
	now := fixedNow()
	alice := newFixture(t, s, identity.Static("alice"), &now)
	bob := newFixture(t, s, identity.Static("bob"), &now)
	ctx := context.Background()

	for _, f := range []*fixture{alice, bob} {
		deck, err := f.decks.Create(ctx, "Spanish")
		require.NoError(t, err)
		_, err = f.cards.Add(ctx, deck.ID, "hola", "hello")
		require.NoError(t, err)
		_, err = f.stats.GetStats(ctx)
		require.NoError(t, err)
	}

	require.NoError(t, alice.wipe.DeleteAllData(ctx))

	for _, c := range store.Collections {
		got, err := s.Store.GetCollection(ctx, c)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"bob"}, got.Keys(), "collection %s", c)
	}

	decks, err := alice.decks.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, decks)

	// Deleting again is a no-op.
	require.NoError(t, alice.wipe.DeleteAllData(ctx))
}

func TestAccountService_Unauthenticated(t *testing.T) {
	s := newSpyStore()
	now := fixedNow()
	f := newFixture(t, s, identity.Anonymous{}, &now)

	assert.ErrorIs(t, f.wipe.DeleteAllData(context.Background()), domain.ErrNotAuthenticated)
	assert.Zero(t, s.calls.Load())
}
