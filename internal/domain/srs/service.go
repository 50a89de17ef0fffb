package srs

import (
	"errors"
	"time"

	"github.com/phrazzld/scry-decks/internal/domain"
)

// Common errors
var (
	ErrNilCard  = errors.New("card cannot be nil")
	ErrNilStats = errors.New("stats cannot be nil")
)

// Service defines the interface for SRS algorithm operations
type Service interface {
	// CalculateNextReview returns a rescheduled copy of card after a review
	// graded quality at time now. It returns domain.ErrInvalidQuality for
	// grades outside 1..4.
	CalculateNextReview(
		card *domain.Card,
		quality domain.ReviewQuality,
		now time.Time,
	) (*domain.Card, error)
}

// defaultService is the standard implementation of the Service interface
type defaultService struct {
	params *Params
}

// NewDefaultService creates a new SRS service with default parameters
func NewDefaultService() Service {
	return &defaultService{
		params: NewDefaultParams(),
	}
}

// NewServiceWithParams creates a new SRS service with custom parameters
func NewServiceWithParams(params *Params) Service {
	if params == nil {
		params = NewDefaultParams()
	}
	return &defaultService{
		params: params,
	}
}

// CalculateNextReview implements the Service interface for calculating the next schedule
func (s *defaultService) CalculateNextReview(
	card *domain.Card,
	quality domain.ReviewQuality,
	now time.Time,
) (*domain.Card, error) {
	if card == nil {
		return nil, ErrNilCard
	}

	if !quality.IsValid() {
		return nil, domain.ErrInvalidQuality
	}

	return calculateNextSchedule(card, quality, now, s.params), nil
}
