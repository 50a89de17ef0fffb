package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/phrazzld/scry-decks/internal/domain"
	"github.com/phrazzld/scry-decks/internal/platform/memory"
	"github.com/phrazzld/scry-decks/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserData_RoundTrip(t *testing.T) {
	backend := memory.New()
	tr := store.NewTransactor(backend)
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	deck, err := domain.NewDeck("Spanish", now)
	require.NoError(t, err)
	card, err := domain.NewCard(deck.ID, "hola", "hello", now)
	require.NoError(t, err)
	stats := domain.NewStats()
	stats.TotalSessions = 3

	err = tr.RunInTransaction(ctx, func(ctx context.Context, tx *store.Tx) error {
		require.NoError(t, store.SaveDecks(tx, "u1", []*domain.Deck{deck}))
		require.NoError(t, store.SaveCards(tx, "u1", map[string][]*domain.Card{deck.ID: {card}}))
		return store.SaveStats(tx, "u1", stats)
	})
	require.NoError(t, err)

	err = tr.RunInTransaction(ctx, func(ctx context.Context, tx *store.Tx) error {
		decks, err := store.LoadDecks(ctx, tx, "u1")
		require.NoError(t, err)
		require.Len(t, decks, 1)
		assert.Equal(t, "Spanish", decks[0].Name)
		assert.True(t, decks[0].CreatedAt.Equal(now))

		cards, err := store.LoadCards(ctx, tx, "u1")
		require.NoError(t, err)
		require.Len(t, cards[deck.ID], 1)
		assert.Equal(t, "hola", cards[deck.ID][0].Front)
		assert.Equal(t, domain.InitialEase, cards[deck.ID][0].Ease)

		got, found, err := store.LoadStats(ctx, tx, "u1")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, 3, got.TotalSessions)
		assert.NotNil(t, got.DailyStats)
		return nil
	})
	require.NoError(t, err)
}

func TestUserData_MissingDocuments(t *testing.T) {
	tr := store.NewTransactor(memory.New())
	ctx := context.Background()

	err := tr.RunInTransaction(ctx, func(ctx context.Context, tx *store.Tx) error {
		decks, err := store.LoadDecks(ctx, tx, "nobody")
		require.NoError(t, err)
		assert.NotNil(t, decks)
		assert.Empty(t, decks)

		cards, err := store.LoadCards(ctx, tx, "nobody")
		require.NoError(t, err)
		assert.NotNil(t, cards)
		assert.Empty(t, cards)

		stats, found, err := store.LoadStats(ctx, tx, "nobody")
		require.NoError(t, err)
		assert.False(t, found)
		assert.Equal(t, domain.NewStats(), stats)
		return nil
	})
	require.NoError(t, err)
}

func TestUserData_CorruptDocument(t *testing.T) {
	backend := memory.New()
	ctx := context.Background()
	require.NoError(t, backend.PutCollection(ctx, store.CollectionDecks, store.Collection{
		"u1": []byte(`{not json`),
	}))

	tr := store.NewTransactor(backend)
	err := tr.RunInTransaction(ctx, func(ctx context.Context, tx *store.Tx) error {
		_, err := store.LoadDecks(ctx, tx, "u1")
		return err
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrInvalidEntity)

	var storeErr *store.StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, store.CollectionDecks, storeErr.Entity)
	assert.Equal(t, "decode", storeErr.Operation)
}

func TestUserData_DeleteUserData(t *testing.T) {
	backend := memory.New()
	tr := store.NewTransactor(backend)
	ctx := context.Background()

	require.NoError(t, tr.RunInTransaction(ctx, func(ctx context.Context, tx *store.Tx) error {
		for _, u := range []string{"u1", "u2"} {
			require.NoError(t, store.SaveDecks(tx, u, nil))
			require.NoError(t, store.SaveCards(tx, u, nil))
			require.NoError(t, store.SaveStats(tx, u, domain.NewStats()))
		}
		return nil
	}))

	require.NoError(t, tr.RunInTransaction(ctx, func(ctx context.Context, tx *store.Tx) error {
		store.DeleteUserData(tx, "u1")
		return nil
	}))

	for _, c := range store.Collections {
		got, err := backend.GetCollection(ctx, c)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"u2"}, got.Keys(), "collection %s", c)
	}
}
