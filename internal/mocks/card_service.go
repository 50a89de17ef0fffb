package mocks

import (
	"context"
	"time"

	"github.com/phrazzld/scry-decks/internal/domain"
	"github.com/phrazzld/scry-decks/internal/service"
)

// MockCardService implements service.CardService for testing
type MockCardService struct {
	AddFn    func(ctx context.Context, deckID, front, back string) (*domain.Card, error)
	UpdateFn func(ctx context.Context, deckID, cardID, front, back string) (*domain.Card, error)
	DeleteFn func(ctx context.Context, deckID, cardID string) error
	ListFn   func(ctx context.Context, deckID string) ([]*domain.Card, error)
	DueFn    func(ctx context.Context, deckID string, asOf time.Time) ([]*domain.Card, error)
	GetFn    func(ctx context.Context, deckID, cardID string) (*domain.Card, error)

	// Default return values
	Card  *domain.Card
	Cards []*domain.Card
	Err   error
}

var _ service.CardService = (*MockCardService)(nil)

func (m *MockCardService) Add(ctx context.Context, deckID, front, back string) (*domain.Card, error) {
	if m.AddFn != nil {
		return m.AddFn(ctx, deckID, front, back)
	}
	return m.Card, m.Err
}

func (m *MockCardService) Update(ctx context.Context, deckID, cardID, front, back string) (*domain.Card, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, deckID, cardID, front, back)
	}
	return m.Card, m.Err
}

func (m *MockCardService) Delete(ctx context.Context, deckID, cardID string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, deckID, cardID)
	}
	return m.Err
}

func (m *MockCardService) List(ctx context.Context, deckID string) ([]*domain.Card, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, deckID)
	}
	return m.Cards, m.Err
}

func (m *MockCardService) Due(ctx context.Context, deckID string, asOf time.Time) ([]*domain.Card, error) {
	if m.DueFn != nil {
		return m.DueFn(ctx, deckID, asOf)
	}
	return m.Cards, m.Err
}

func (m *MockCardService) Get(ctx context.Context, deckID, cardID string) (*domain.Card, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, deckID, cardID)
	}
	return m.Card, m.Err
}
