package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/phrazzld/scry-decks/internal/domain"
)

// LoadDecks returns the decks of userID in insertion order. A user without a
// decks document has no decks.
func LoadDecks(ctx context.Context, tx *Tx, userID string) ([]*domain.Deck, error) {
	var decks []*domain.Deck
	if err := load(ctx, tx, CollectionDecks, userID, &decks); err != nil {
		return nil, err
	}
	if decks == nil {
		decks = []*domain.Deck{}
	}
	return decks, nil
}

// SaveDecks buffers the decks document of userID.
func SaveDecks(tx *Tx, userID string, decks []*domain.Deck) error {
	if decks == nil {
		decks = []*domain.Deck{}
	}
	return save(tx, CollectionDecks, userID, decks)
}

// LoadCards returns the cards of userID grouped by deck id.
func LoadCards(ctx context.Context, tx *Tx, userID string) (map[string][]*domain.Card, error) {
	var cards map[string][]*domain.Card
	if err := load(ctx, tx, CollectionCards, userID, &cards); err != nil {
		return nil, err
	}
	if cards == nil {
		cards = make(map[string][]*domain.Card)
	}
	return cards, nil
}

// SaveCards buffers the cards document of userID.
func SaveCards(tx *Tx, userID string, cards map[string][]*domain.Card) error {
	if cards == nil {
		cards = make(map[string][]*domain.Card)
	}
	return save(tx, CollectionCards, userID, cards)
}

// LoadStats returns the stats record of userID. found is false, and stats is
// a zeroed record, when the user has none yet.
func LoadStats(ctx context.Context, tx *Tx, userID string) (stats *domain.Stats, found bool, err error) {
	stats = domain.NewStats()

	raw, err := tx.Get(ctx, CollectionStats, userID)
	switch {
	case errors.Is(err, ErrNotFound):
		return stats, false, nil
	case err != nil:
		return nil, false, NewStoreError(CollectionStats, "get", "failed to read document", err)
	}

	if err := json.Unmarshal(raw, stats); err != nil {
		return nil, false, decodeError(CollectionStats, err)
	}
	if stats.DailyStats == nil {
		stats.DailyStats = []domain.DailyStat{}
	}
	return stats, true, nil
}

// SaveStats buffers the stats document of userID.
func SaveStats(tx *Tx, userID string, stats *domain.Stats) error {
	return save(tx, CollectionStats, userID, stats)
}

// DeleteUserData buffers the removal of every document of userID.
func DeleteUserData(tx *Tx, userID string) {
	for _, c := range Collections {
		tx.Delete(c, userID)
	}
}

func load(ctx context.Context, tx *Tx, collection, userID string, v any) error {
	raw, err := tx.Get(ctx, collection, userID)
	switch {
	case errors.Is(err, ErrNotFound):
		return nil
	case err != nil:
		return NewStoreError(collection, "get", "failed to read document", err)
	}

	if err := json.Unmarshal(raw, v); err != nil {
		return decodeError(collection, err)
	}
	return nil
}

func save(tx *Tx, collection, userID string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return NewStoreError(collection, "encode", "failed to encode document",
			fmt.Errorf("%w: %v", ErrInvalidEntity, err))
	}
	tx.Put(collection, userID, raw)
	return nil
}

func decodeError(collection string, err error) error {
	return NewStoreError(collection, "decode", "stored document is not valid",
		fmt.Errorf("%w: %v", ErrInvalidEntity, err))
}
