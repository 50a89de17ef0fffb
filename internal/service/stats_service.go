package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/phrazzld/scry-decks/internal/domain"
	"github.com/phrazzld/scry-decks/internal/domain/srs"
	"github.com/phrazzld/scry-decks/internal/identity"
	"github.com/phrazzld/scry-decks/internal/store"
)

// StatsService reads and updates the per-user study statistics.
type StatsService interface {
	// GetStats returns the caller's statistics, creating and persisting a
	// zeroed record on first access. StudiedToday reads zero when the last
	// study day is over; the stored record is not changed for that.
	GetStats(ctx context.Context) (*domain.Stats, error)

	// RecordReview counts one review at now inside an existing transaction.
	// It is the building block of the review operation and does not check
	// the identity itself.
	RecordReview(
		ctx context.Context,
		tx *store.Tx,
		userID string,
		now time.Time,
		pass bool,
	) (*domain.Stats, error)
}

var _ StatsService = (*statsServiceImpl)(nil)

type statsServiceImpl struct {
	base
	tracker *srs.Tracker
}

// NewStatsService creates a new StatsService.
// It returns an error if any of the required dependencies are nil.
func NewStatsService(
	transactor *store.Transactor,
	id identity.Identity,
	tracker *srs.Tracker,
	logger *slog.Logger,
	opts ...Option,
) (StatsService, error) {
	if tracker == nil {
		return nil, nilDependency("tracker")
	}
	b, err := newBase("stats", transactor, id, logger, opts)
	if err != nil {
		return nil, err
	}
	return &statsServiceImpl{base: b, tracker: tracker}, nil
}

func (s *statsServiceImpl) GetStats(ctx context.Context) (*domain.Stats, error) {
	userID, log, err := s.begin(ctx)
	if err != nil {
		return nil, err
	}

	var stats *domain.Stats
	err = s.transactor.RunInTransaction(ctx, func(ctx context.Context, tx *store.Tx) error {
		loaded, found, err := store.LoadStats(ctx, tx, userID)
		if err != nil {
			return err
		}
		stats = loaded
		if !found {
			log.Debug("creating stats record")
			return store.SaveStats(tx, userID, loaded)
		}
		return nil
	})
	if err != nil {
		return nil, s.finish(log, "get_stats", err)
	}

	return s.tracker.View(stats, s.clock()), nil
}

func (s *statsServiceImpl) RecordReview(
	ctx context.Context,
	tx *store.Tx,
	userID string,
	now time.Time,
	pass bool,
) (*domain.Stats, error) {
	current, _, err := store.LoadStats(ctx, tx, userID)
	if err != nil {
		return nil, err
	}

	next, err := s.tracker.RecordReview(current, now, pass)
	if err != nil {
		return nil, err
	}

	if err := store.SaveStats(tx, userID, next); err != nil {
		return nil, err
	}
	return next, nil
}
