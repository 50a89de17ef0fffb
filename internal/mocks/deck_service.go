package mocks

import (
	"context"

	"github.com/phrazzld/scry-decks/internal/domain"
	"github.com/phrazzld/scry-decks/internal/service"
)

// MockDeckService implements service.DeckService for testing
type MockDeckService struct {
	CreateFn func(ctx context.Context, name string) (*domain.Deck, error)
	RenameFn func(ctx context.Context, deckID, newName string) (*domain.Deck, error)
	DeleteFn func(ctx context.Context, deckID string) error
	ListFn   func(ctx context.Context) ([]*domain.Deck, error)
	GetFn    func(ctx context.Context, deckID string) (*domain.Deck, error)

	// Default return values
	Deck  *domain.Deck
	Decks []*domain.Deck
	Err   error
}

var _ service.DeckService = (*MockDeckService)(nil)

func (m *MockDeckService) Create(ctx context.Context, name string) (*domain.Deck, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, name)
	}
	return m.Deck, m.Err
}

func (m *MockDeckService) Rename(ctx context.Context, deckID, newName string) (*domain.Deck, error) {
	if m.RenameFn != nil {
		return m.RenameFn(ctx, deckID, newName)
	}
	return m.Deck, m.Err
}

func (m *MockDeckService) Delete(ctx context.Context, deckID string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, deckID)
	}
	return m.Err
}

func (m *MockDeckService) List(ctx context.Context) ([]*domain.Deck, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return m.Decks, m.Err
}

func (m *MockDeckService) Get(ctx context.Context, deckID string) (*domain.Deck, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, deckID)
	}
	return m.Deck, m.Err
}
