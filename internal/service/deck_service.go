package service

import (
	"context"
	"log/slog"
	"slices"

	"github.com/phrazzld/scry-decks/internal/domain"
	"github.com/phrazzld/scry-decks/internal/identity"
	"github.com/phrazzld/scry-decks/internal/store"
)

// DeckService manages the decks of the current user.
type DeckService interface {
	// Create adds an empty deck named name. Deck names are unique per user,
	// compared case-sensitively.
	Create(ctx context.Context, name string) (*domain.Deck, error)

	// Rename changes the name of a deck. Renaming a deck to its current name succeeds.
	Rename(ctx context.Context, deckID, newName string) (*domain.Deck, error)

	// Delete removes a deck together with all of its cards.
	Delete(ctx context.Context, deckID string) error

	// List returns the user's decks in creation order.
	List(ctx context.Context) ([]*domain.Deck, error)

	// Get returns a single deck.
	Get(ctx context.Context, deckID string) (*domain.Deck, error)
}

var _ DeckService = (*deckServiceImpl)(nil)

type deckServiceImpl struct {
	base
}

// NewDeckService creates a new DeckService.
// It returns an error if any of the required dependencies are nil.
func NewDeckService(
	transactor *store.Transactor,
	id identity.Identity,
	logger *slog.Logger,
	opts ...Option,
) (DeckService, error) {
	b, err := newBase("deck", transactor, id, logger, opts)
	if err != nil {
		return nil, err
	}
	return &deckServiceImpl{base: b}, nil
}

func (s *deckServiceImpl) Create(ctx context.Context, name string) (*domain.Deck, error) {
	userID, log, err := s.begin(ctx)
	if err != nil {
		return nil, err
	}

	deck, err := domain.NewDeck(name, s.clock())
	if err != nil {
		return nil, err
	}

	err = s.transactor.RunInTransaction(ctx, func(ctx context.Context, tx *store.Tx) error {
		decks, err := store.LoadDecks(ctx, tx, userID)
		if err != nil {
			return err
		}
		if nameTaken(decks, name, "") {
			return domain.ErrDuplicateDeckName
		}

		cards, err := store.LoadCards(ctx, tx, userID)
		if err != nil {
			return err
		}
		cards[deck.ID] = []*domain.Card{}

		if err := store.SaveDecks(tx, userID, append(decks, deck)); err != nil {
			return err
		}
		return store.SaveCards(tx, userID, cards)
	})
	if err != nil {
		return nil, s.finish(log, "create", err)
	}

	log.Info("deck created", slog.String("deck_id", deck.ID))
	return deck, nil
}

func (s *deckServiceImpl) Rename(ctx context.Context, deckID, newName string) (*domain.Deck, error) {
	userID, log, err := s.begin(ctx)
	if err != nil {
		return nil, err
	}

	var renamed *domain.Deck
	err = s.transactor.RunInTransaction(ctx, func(ctx context.Context, tx *store.Tx) error {
		decks, err := store.LoadDecks(ctx, tx, userID)
		if err != nil {
			return err
		}
		i, err := domain.FindDeck(decks, deckID)
		if err != nil {
			return err
		}
		if nameTaken(decks, newName, deckID) {
			return domain.ErrDuplicateDeckName
		}
		if err := decks[i].Rename(newName); err != nil {
			return err
		}
		renamed = decks[i]
		return store.SaveDecks(tx, userID, decks)
	})
	if err != nil {
		return nil, s.finish(log, "rename", err)
	}

	log.Info("deck renamed", slog.String("deck_id", deckID))
	return renamed, nil
}

func (s *deckServiceImpl) Delete(ctx context.Context, deckID string) error {
	userID, log, err := s.begin(ctx)
	if err != nil {
		return err
	}

	err = s.transactor.RunInTransaction(ctx, func(ctx context.Context, tx *store.Tx) error {
		decks, err := store.LoadDecks(ctx, tx, userID)
		if err != nil {
			return err
		}
		i, err := domain.FindDeck(decks, deckID)
		if err != nil {
			return err
		}

		cards, err := store.LoadCards(ctx, tx, userID)
		if err != nil {
			return err
		}
		delete(cards, deckID)

		if err := store.SaveDecks(tx, userID, slices.Delete(decks, i, i+1)); err != nil {
			return err
		}
		return store.SaveCards(tx, userID, cards)
	})
	if err != nil {
		return s.finish(log, "delete", err)
	}

	log.Info("deck deleted", slog.String("deck_id", deckID))
	return nil
}

func (s *deckServiceImpl) List(ctx context.Context) ([]*domain.Deck, error) {
	userID, log, err := s.begin(ctx)
	if err != nil {
		return nil, err
	}

	var decks []*domain.Deck
	err = s.transactor.RunInTransaction(ctx, func(ctx context.Context, tx *store.Tx) error {
		decks, err = store.LoadDecks(ctx, tx, userID)
		return err
	})
	if err != nil {
		return nil, s.finish(log, "list", err)
	}
	return decks, nil
}

func (s *deckServiceImpl) Get(ctx context.Context, deckID string) (*domain.Deck, error) {
	userID, log, err := s.begin(ctx)
	if err != nil {
		return nil, err
	}

	var deck *domain.Deck
	err = s.transactor.RunInTransaction(ctx, func(ctx context.Context, tx *store.Tx) error {
		decks, err := store.LoadDecks(ctx, tx, userID)
		if err != nil {
			return err
		}
		i, err := domain.FindDeck(decks, deckID)
		if err != nil {
			return err
		}
		deck = decks[i]
		return nil
	})
	if err != nil {
		return nil, s.finish(log, "get", err)
	}
	return deck, nil
}

// nameTaken reports whether a deck other than exceptID is named name.
func nameTaken(decks []*domain.Deck, name, exceptID string) bool {
	for _, d := range decks {
		if d.Name == name && d.ID != exceptID {
			return true
		}
	}
	return false
}
