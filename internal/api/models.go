package api

import (
	"time"

	"github.com/phrazzld/scry-decks/internal/domain"
)

// DeckRequest is the payload of the create and rename deck endpoints.
type DeckRequest struct {
	Name string `json:"name" validate:"required,max=200"`
}

// CardRequest is the payload of the create and update card endpoints.
type CardRequest struct {
	Front string `json:"front" validate:"required,max=10000"`
	Back  string `json:"back"  validate:"required,max=10000"`
}

// DeckResponse is the JSON representation of a deck.
type DeckResponse struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	CreatedAt   time.Time  `json:"createdAt"`
	LastStudied *time.Time `json:"lastStudied,omitempty"`
	CardCount   int        `json:"cardCount"`
}

// CardResponse is the JSON representation of a card and its schedule.
type CardResponse struct {
	ID           string     `json:"id"`
	DeckID       string     `json:"deckId"`
	Front        string     `json:"front"`
	Back         string     `json:"back"`
	CreatedAt    time.Time  `json:"createdAt"`
	LastReviewed *time.Time `json:"lastReviewed,omitempty"`
	Ease         float64    `json:"ease"`
	Interval     int        `json:"interval"`
	Repetitions  int        `json:"repetitions"`
	DueDate      time.Time  `json:"dueDate"`
}

// DailyStatResponse is one day of the stats history.
type DailyStatResponse struct {
	Date    string `json:"date"`
	Count   int    `json:"count"`
	Correct int    `json:"correct"`
}

// StatsResponse is the JSON representation of the caller's statistics.
type StatsResponse struct {
	StudiedToday  int                 `json:"studiedToday"`
	TotalSessions int                 `json:"totalSessions"`
	LastStudied   *time.Time          `json:"lastStudied,omitempty"`
	DailyStats    []DailyStatResponse `json:"dailyStats"`
	Retention     int                 `json:"retention"`
}

func deckToResponse(d *domain.Deck) DeckResponse {
	return DeckResponse{
		ID:          d.ID,
		Name:        d.Name,
		CreatedAt:   d.CreatedAt,
		LastStudied: d.LastStudied,
		CardCount:   d.CardCount,
	}
}

func decksToResponse(decks []*domain.Deck) []DeckResponse {
	out := make([]DeckResponse, 0, len(decks))
	for _, d := range decks {
		out = append(out, deckToResponse(d))
	}
	return out
}

func cardToResponse(c *domain.Card) CardResponse {
	return CardResponse{
		ID:           c.ID,
		DeckID:       c.DeckID,
		Front:        c.Front,
		Back:         c.Back,
		CreatedAt:    c.CreatedAt,
		LastReviewed: c.LastReviewed,
		Ease:         c.Ease,
		Interval:     c.Interval,
		Repetitions:  c.Repetitions,
		DueDate:      c.DueDate,
	}
}

func cardsToResponse(cards []*domain.Card) []CardResponse {
	out := make([]CardResponse, 0, len(cards))
	for _, c := range cards {
		out = append(out, cardToResponse(c))
	}
	return out
}

func statsToResponse(s *domain.Stats) StatsResponse {
	daily := make([]DailyStatResponse, 0, len(s.DailyStats))
	for _, d := range s.DailyStats {
		daily = append(daily, DailyStatResponse(d))
	}
	return StatsResponse{
		StudiedToday:  s.StudiedToday,
		TotalSessions: s.TotalSessions,
		LastStudied:   s.LastStudied,
		DailyStats:    daily,
		Retention:     s.Retention,
	}
}
