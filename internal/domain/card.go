package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Scheduling defaults for freshly created cards.
const (
	// InitialEase is the ease factor every new card starts with.
	InitialEase = 2.5

	// MinEase is the floor the ease factor can never drop below.
	MinEase = 1.3
)

// Card is a single front/back flashcard together with its review schedule.
//
// Ease, Interval and Repetitions are owned by the scheduler; Front and Back are
// owned by the card service. A zero DueDate means the card carries no due date,
// which is treated as due.
type Card struct {
	ID           string     `json:"id"`
	DeckID       string     `json:"deckId"`
	Front        string     `json:"front"`
	Back         string     `json:"back"`
	CreatedAt    time.Time  `json:"createdAt"`
	LastReviewed *time.Time `json:"lastReviewed,omitempty"`
	Ease         float64    `json:"ease"`
	Interval     int        `json:"interval"`    // days until the next review
	Repetitions  int        `json:"repetitions"` // consecutive passing reviews
	DueDate      time.Time  `json:"dueDate"`
}

// NewCard creates a card in deckID that is due immediately.
func NewCard(deckID, front, back string, now time.Time) (*Card, error) {
	card := &Card{
		ID:          uuid.NewString(),
		DeckID:      deckID,
		Front:       front,
		Back:        back,
		CreatedAt:   now,
		Ease:        InitialEase,
		Interval:    0,
		Repetitions: 0,
		DueDate:     now,
	}

	if err := card.Validate(); err != nil {
		return nil, err
	}

	return card, nil
}

// Validate checks if the Card has valid data.
func (c *Card) Validate() error {
	if c.ID == "" || c.DeckID == "" {
		return ErrIDEmpty
	}
	if strings.TrimSpace(c.Front) == "" || strings.TrimSpace(c.Back) == "" {
		return ErrCardContentEmpty
	}
	if c.Ease < MinEase || c.Interval < 0 || c.Repetitions < 0 {
		return ErrInvalidSchedule
	}
	return nil
}

// UpdateContent replaces the front and back text. Scheduling fields are untouched.
// The card is left unchanged if the new content is invalid.
func (c *Card) UpdateContent(front, back string) error {
	if strings.TrimSpace(front) == "" || strings.TrimSpace(back) == "" {
		return ErrCardContentEmpty
	}
	c.Front = front
	c.Back = back
	return nil
}

// IsDue reports whether the card may be reviewed at asOf.
func (c *Card) IsDue(asOf time.Time) bool {
	return c.DueDate.IsZero() || !c.DueDate.After(asOf)
}

// FindCard returns the position of cardID in cards, or ErrCardNotFound.
func FindCard(cards []*Card, cardID string) (int, error) {
	for i, c := range cards {
		if c.ID == cardID {
			return i, nil
		}
	}
	return -1, ErrCardNotFound
}
