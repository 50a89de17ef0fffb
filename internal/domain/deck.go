package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Deck groups a user's cards. CardCount and LastStudied are derived fields owned by
// the deck and card services: CardCount always equals the number of cards stored
// under the deck.
type Deck struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	CreatedAt   time.Time  `json:"createdAt"`
	LastStudied *time.Time `json:"lastStudied,omitempty"`
	CardCount   int        `json:"cardCount"`
}

// NewDeck creates an empty deck named name. The deck has never been studied.
func NewDeck(name string, now time.Time) (*Deck, error) {
	deck := &Deck{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: now,
		CardCount: 0,
	}

	if err := deck.Validate(); err != nil {
		return nil, err
	}

	return deck, nil
}

// Validate checks if the Deck has valid data.
func (d *Deck) Validate() error {
	if d.ID == "" {
		return ErrIDEmpty
	}
	if strings.TrimSpace(d.Name) == "" {
		return ErrDeckNameEmpty
	}
	if d.CardCount < 0 {
		return ErrValidation
	}
	return nil
}

// Rename changes the deck name, leaving the deck untouched if the name is blank.
func (d *Deck) Rename(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrDeckNameEmpty
	}
	d.Name = name
	return nil
}

// CardAdded increments the card counter.
func (d *Deck) CardAdded() {
	d.CardCount++
}

// CardRemoved decrements the card counter, never going below zero.
func (d *Deck) CardRemoved() {
	d.CardCount = max(0, d.CardCount-1)
}

// MarkStudied records now as the last time any card of the deck was reviewed.
func (d *Deck) MarkStudied(now time.Time) {
	t := now
	d.LastStudied = &t
}

// FindDeck returns the position of deckID in decks, or ErrDeckNotFound.
func FindDeck(decks []*Deck, deckID string) (int, error) {
	for i, d := range decks {
		if d.ID == deckID {
			return i, nil
		}
	}
	return -1, ErrDeckNotFound
}
