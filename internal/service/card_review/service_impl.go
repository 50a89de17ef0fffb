package card_review

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/phrazzld/scry-decks/internal/domain"
	"github.com/phrazzld/scry-decks/internal/domain/srs"
	"github.com/phrazzld/scry-decks/internal/identity"
	"github.com/phrazzld/scry-decks/internal/platform/logger"
	"github.com/phrazzld/scry-decks/internal/store"
)

// Verify interface compliance at compile time
var _ ReviewService = (*reviewServiceImpl)(nil)

// reviewServiceImpl implements the ReviewService interface.
type reviewServiceImpl struct {
	transactor *store.Transactor
	identity   identity.Identity
	srsService srs.Service
	stats      StatsRecorder
	observer   Observer
	clock      func() time.Time
	logger     *slog.Logger
}

// Option configures the review service.
type Option func(*reviewServiceImpl)

// WithClock replaces time.Now as the source of the review time.
func WithClock(clock func() time.Time) Option {
	return func(s *reviewServiceImpl) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithObserver registers an observer of committed reviews.
func WithObserver(o Observer) Option {
	return func(s *reviewServiceImpl) {
		s.observer = o
	}
}

// NewReviewService creates a new ReviewService implementation.
func NewReviewService(
	transactor *store.Transactor,
	id identity.Identity,
	srsService srs.Service,
	stats StatsRecorder,
	logger *slog.Logger,
	opts ...Option,
) ReviewService {
	// Validate inputs
	if transactor == nil {
		panic("transactor cannot be nil")
	}
	if id == nil {
		panic("identity cannot be nil")
	}
	if srsService == nil {
		panic("srsService cannot be nil")
	}
	if stats == nil {
		panic("stats cannot be nil")
	}

	// Use provided logger or create default
	if logger == nil {
		logger = slog.Default()
	}

	s := &reviewServiceImpl{
		transactor: transactor,
		identity:   id,
		srsService: srsService,
		stats:      stats,
		clock:      time.Now,
		logger:     logger.With(slog.String("component", "card_review_service")),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Review implements ReviewService.Review.
func (s *reviewServiceImpl) Review(
	ctx context.Context,
	deckID, cardID string,
	quality domain.ReviewQuality,
) (*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !s.identity.IsAuthenticated(ctx) {
		return nil, domain.ErrNotAuthenticated
	}
	userID := s.identity.CurrentUserID(ctx)

	log = log.With(
		slog.String("user_id", userID),
		slog.String("deck_id", deckID),
		slog.String("card_id", cardID))

	if !quality.IsValid() {
		log.Warn("invalid review quality", slog.Int("quality", int(quality)))
		return nil, domain.ErrInvalidQuality
	}

	log.Debug("processing review", slog.String("quality", quality.String()))

	now := s.clock()
	var reviewed *domain.Card
	err := s.transactor.RunInTransaction(ctx, func(ctx context.Context, tx *store.Tx) error {
		decks, err := store.LoadDecks(ctx, tx, userID)
		if err != nil {
			return err
		}
		di, err := domain.FindDeck(decks, deckID)
		if err != nil {
			return err
		}

		cards, err := store.LoadCards(ctx, tx, userID)
		if err != nil {
			return err
		}
		ci, err := domain.FindCard(cards[deckID], cardID)
		if err != nil {
			return err
		}

		// Calculate new review schedule using SRS algorithm
		next, err := s.srsService.CalculateNextReview(cards[deckID][ci], quality, now)
		if err != nil {
			return err
		}
		cards[deckID][ci] = next
		decks[di].MarkStudied(now)

		if err := store.SaveCards(tx, userID, cards); err != nil {
			return err
		}
		if err := store.SaveDecks(tx, userID, decks); err != nil {
			return err
		}
		if _, err := s.stats.RecordReview(ctx, tx, userID, now, quality.IsPass()); err != nil {
			return err
		}

		reviewed = next
		return nil
	})

	if err != nil {
		// If the error is already one of our expected errors, pass it through
		if domain.IsNotFound(err) || errors.Is(err, domain.ErrInvalidQuality) {
			log.Debug("review rejected", slog.String("error", err.Error()))
			return nil, err
		}

		log.Error("failed to review card", slog.String("error", err.Error()))
		return nil, NewReviewError("failed to review card", err)
	}

	if s.observer != nil {
		s.observer.ObserveReview(quality)
	}

	log.Debug("successfully processed review",
		slog.Float64("ease_factor", reviewed.Ease),
		slog.Int("interval", reviewed.Interval),
		slog.Time("due_date", reviewed.DueDate))

	return reviewed, nil
}

// NextCard implements ReviewService.NextCard.
func (s *reviewServiceImpl) NextCard(ctx context.Context, deckID string) (*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !s.identity.IsAuthenticated(ctx) {
		return nil, domain.ErrNotAuthenticated
	}
	userID := s.identity.CurrentUserID(ctx)
	now := s.clock()

	var next *domain.Card
	err := s.transactor.RunInTransaction(ctx, func(ctx context.Context, tx *store.Tx) error {
		decks, err := store.LoadDecks(ctx, tx, userID)
		if err != nil {
			return err
		}
		if _, err := domain.FindDeck(decks, deckID); err != nil {
			return err
		}

		cards, err := store.LoadCards(ctx, tx, userID)
		if err != nil {
			return err
		}
		for _, c := range cards[deckID] {
			if !c.IsDue(now) {
				continue
			}
			if next == nil || c.DueDate.Before(next.DueDate) {
				next = c
			}
		}
		return nil
	})
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, err
		}
		log.Error("failed to get next card",
			slog.String("error", err.Error()),
			slog.String("user_id", userID),
			slog.String("deck_id", deckID))
		return nil, NewNextCardError("failed to get next card", err)
	}

	if next == nil {
		log.Debug("no cards due for review",
			slog.String("user_id", userID),
			slog.String("deck_id", deckID))
		return nil, ErrNoCardsDue
	}
	return next, nil
}
