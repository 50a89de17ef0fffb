package service

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/phrazzld/scry-decks/internal/domain"
	"github.com/phrazzld/scry-decks/internal/identity"
	"github.com/phrazzld/scry-decks/internal/store"
)

// CardService manages the cards inside the current user's decks.
//
// Every operation first resolves the deck and returns domain.ErrDeckNotFound
// when it does not exist.
type CardService interface {
	// Add creates a card that is due immediately and bumps the deck's card count.
	Add(ctx context.Context, deckID, front, back string) (*domain.Card, error)

	// Update replaces the text of a card. Its schedule is left untouched.
	Update(ctx context.Context, deckID, cardID, front, back string) (*domain.Card, error)

	// Delete removes a card and decrements the deck's card count.
	Delete(ctx context.Context, deckID, cardID string) error

	// List returns every card of a deck in creation order.
	List(ctx context.Context, deckID string) ([]*domain.Card, error)

	// Due returns the cards of a deck that are due at asOf.
	Due(ctx context.Context, deckID string, asOf time.Time) ([]*domain.Card, error)

	// Get returns a single card.
	Get(ctx context.Context, deckID, cardID string) (*domain.Card, error)
}

var _ CardService = (*cardServiceImpl)(nil)

type cardServiceImpl struct {
	base
}

// NewCardService creates a new CardService.
// It returns an error if any of the required dependencies are nil.
func NewCardService(
	transactor *store.Transactor,
	id identity.Identity,
	logger *slog.Logger,
	opts ...Option,
) (CardService, error) {
	b, err := newBase("card", transactor, id, logger, opts)
	if err != nil {
		return nil, err
	}
	return &cardServiceImpl{base: b}, nil
}

// deckCards is the state of one deck loaded inside a transaction.
type deckCards struct {
	decks []*domain.Deck
	deck  *domain.Deck
	all   map[string][]*domain.Card
	cards []*domain.Card
}

func loadDeckCards(ctx context.Context, tx *store.Tx, userID, deckID string) (*deckCards, error) {
	decks, err := store.LoadDecks(ctx, tx, userID)
	if err != nil {
		return nil, err
	}
	i, err := domain.FindDeck(decks, deckID)
	if err != nil {
		return nil, err
	}

	all, err := store.LoadCards(ctx, tx, userID)
	if err != nil {
		return nil, err
	}

	return &deckCards{
		decks: decks,
		deck:  decks[i],
		all:   all,
		cards: all[deckID],
	}, nil
}

func (dc *deckCards) save(tx *store.Tx, userID string) error {
	dc.all[dc.deck.ID] = dc.cards
	if err := store.SaveDecks(tx, userID, dc.decks); err != nil {
		return err
	}
	return store.SaveCards(tx, userID, dc.all)
}

func (s *cardServiceImpl) Add(ctx context.Context, deckID, front, back string) (*domain.Card, error) {
	userID, log, err := s.begin(ctx)
	if err != nil {
		return nil, err
	}

	var card *domain.Card
	err = s.transactor.RunInTransaction(ctx, func(ctx context.Context, tx *store.Tx) error {
		dc, err := loadDeckCards(ctx, tx, userID, deckID)
		if err != nil {
			return err
		}

		card, err = domain.NewCard(deckID, front, back, s.clock())
		if err != nil {
			return err
		}

		dc.cards = append(dc.cards, card)
		dc.deck.CardAdded()
		return dc.save(tx, userID)
	})
	if err != nil {
		return nil, s.finish(log, "add", err)
	}

	log.Info("card added",
		slog.String("deck_id", deckID),
		slog.String("card_id", card.ID))
	return card, nil
}

func (s *cardServiceImpl) Update(
	ctx context.Context,
	deckID, cardID, front, back string,
) (*domain.Card, error) {
	userID, log, err := s.begin(ctx)
	if err != nil {
		return nil, err
	}

	var card *domain.Card
	err = s.transactor.RunInTransaction(ctx, func(ctx context.Context, tx *store.Tx) error {
		dc, err := loadDeckCards(ctx, tx, userID, deckID)
		if err != nil {
			return err
		}
		i, err := domain.FindCard(dc.cards, cardID)
		if err != nil {
			return err
		}

		card = dc.cards[i]
		if err := card.UpdateContent(front, back); err != nil {
			return err
		}
		return dc.save(tx, userID)
	})
	if err != nil {
		return nil, s.finish(log, "update", err)
	}

	log.Debug("card updated",
		slog.String("deck_id", deckID),
		slog.String("card_id", cardID))
	return card, nil
}

func (s *cardServiceImpl) Delete(ctx context.Context, deckID, cardID string) error {
	userID, log, err := s.begin(ctx)
	if err != nil {
		return err
	}

	err = s.transactor.RunInTransaction(ctx, func(ctx context.Context, tx *store.Tx) error {
		dc, err := loadDeckCards(ctx, tx, userID, deckID)
		if err != nil {
			return err
		}
		i, err := domain.FindCard(dc.cards, cardID)
		if err != nil {
			return err
		}

		dc.cards = slices.Delete(dc.cards, i, i+1)
		dc.deck.CardRemoved()
		return dc.save(tx, userID)
	})
	if err != nil {
		return s.finish(log, "delete", err)
	}

	log.Info("card deleted",
		slog.String("deck_id", deckID),
		slog.String("card_id", cardID))
	return nil
}

func (s *cardServiceImpl) List(ctx context.Context, deckID string) ([]*domain.Card, error) {
	return s.filter(ctx, "list", deckID, func(*domain.Card) bool { return true })
}

func (s *cardServiceImpl) Due(ctx context.Context, deckID string, asOf time.Time) ([]*domain.Card, error) {
	return s.filter(ctx, "due", deckID, func(c *domain.Card) bool { return c.IsDue(asOf) })
}

func (s *cardServiceImpl) Get(ctx context.Context, deckID, cardID string) (*domain.Card, error) {
	userID, log, err := s.begin(ctx)
	if err != nil {
		return nil, err
	}

	var card *domain.Card
	err = s.transactor.RunInTransaction(ctx, func(ctx context.Context, tx *store.Tx) error {
		dc, err := loadDeckCards(ctx, tx, userID, deckID)
		if err != nil {
			return err
		}
		i, err := domain.FindCard(dc.cards, cardID)
		if err != nil {
			return err
		}
		card = dc.cards[i]
		return nil
	})
	if err != nil {
		return nil, s.finish(log, "get", err)
	}
	return card, nil
}

func (s *cardServiceImpl) filter(
	ctx context.Context,
	operation, deckID string,
	keep func(*domain.Card) bool,
) ([]*domain.Card, error) {
	userID, log, err := s.begin(ctx)
	if err != nil {
		return nil, err
	}

	cards := []*domain.Card{}
	err = s.transactor.RunInTransaction(ctx, func(ctx context.Context, tx *store.Tx) error {
		dc, err := loadDeckCards(ctx, tx, userID, deckID)
		if err != nil {
			return err
		}
		for _, c := range dc.cards {
			if keep(c) {
				cards = append(cards, c)
			}
		}
		return nil
	})
	if err != nil {
		return nil, s.finish(log, operation, err)
	}
	return cards, nil
}
