package mocks

import (
	"context"
	"time"

	"github.com/phrazzld/scry-decks/internal/domain"
	"github.com/phrazzld/scry-decks/internal/service"
	"github.com/phrazzld/scry-decks/internal/store"
)

// MockStatsService implements service.StatsService for testing
type MockStatsService struct {
	GetStatsFn     func(ctx context.Context) (*domain.Stats, error)
	RecordReviewFn func(ctx context.Context, tx *store.Tx, userID string, now time.Time, pass bool) (*domain.Stats, error)

	// Default return values
	Stats *domain.Stats
	Err   error
}

var _ service.StatsService = (*MockStatsService)(nil)

func (m *MockStatsService) GetStats(ctx context.Context) (*domain.Stats, error) {
	if m.GetStatsFn != nil {
		return m.GetStatsFn(ctx)
	}
	return m.Stats, m.Err
}

func (m *MockStatsService) RecordReview(
	ctx context.Context,
	tx *store.Tx,
	userID string,
	now time.Time,
	pass bool,
) (*domain.Stats, error) {
	if m.RecordReviewFn != nil {
		return m.RecordReviewFn(ctx, tx, userID, now, pass)
	}
	return m.Stats, m.Err
}
