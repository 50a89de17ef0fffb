package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/scry-decks/internal/domain"
	"github.com/phrazzld/scry-decks/internal/service/card_review"
)

// ReviewCall records one call to MockReviewService.Review.
type ReviewCall struct {
	DeckID  string
	CardID  string
	Quality domain.ReviewQuality
}

// MockReviewService implements card_review.ReviewService for testing
type MockReviewService struct {
	ReviewFn   func(ctx context.Context, deckID, cardID string, quality domain.ReviewQuality) (*domain.Card, error)
	NextCardFn func(ctx context.Context, deckID string) (*domain.Card, error)

	// Default response values
	Card *domain.Card
	Err  error

	// Call tracking for verification
	mu          sync.Mutex
	ReviewCalls []ReviewCall
}

var _ card_review.ReviewService = (*MockReviewService)(nil)

// Review implements the card_review.ReviewService interface
func (m *MockReviewService) Review(
	ctx context.Context,
	deckID, cardID string,
	quality domain.ReviewQuality,
) (*domain.Card, error) {
	m.mu.Lock()
	m.ReviewCalls = append(m.ReviewCalls, ReviewCall{DeckID: deckID, CardID: cardID, Quality: quality})
	m.mu.Unlock()

	if m.ReviewFn != nil {
		return m.ReviewFn(ctx, deckID, cardID, quality)
	}
	return m.Card, m.Err
}

// NextCard implements the card_review.ReviewService interface
func (m *MockReviewService) NextCard(ctx context.Context, deckID string) (*domain.Card, error) {
	if m.NextCardFn != nil {
		return m.NextCardFn(ctx, deckID)
	}
	return m.Card, m.Err
}

// Calls returns a copy of the recorded Review calls.
func (m *MockReviewService) Calls() []ReviewCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]ReviewCall(nil), m.ReviewCalls...)
}
