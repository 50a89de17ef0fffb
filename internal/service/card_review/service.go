// Package card_review implements the review operation: grading a card,
// rescheduling it, marking its deck as studied and counting the review in
// the user's statistics, all as one unit.
package card_review

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/phrazzld/scry-decks/internal/domain"
	"github.com/phrazzld/scry-decks/internal/store"
)

// ReviewAnswer is the body of a review submission.
type ReviewAnswer struct {
	Quality domain.ReviewQuality `json:"quality" validate:"required,min=1,max=4"`
}

// ReviewService provides methods for reviewing flashcards
// using a spaced repetition algorithm.
type ReviewService interface {
	// Review grades a card with quality and reschedules it.
	//
	// In one transaction it:
	//  1. Loads the deck and the card
	//  2. Computes the next schedule with the SRS algorithm
	//  3. Stores the card and sets the deck's LastStudied
	//  4. Counts the review in the user's statistics
	//
	// Returns:
	//   - (*domain.Card, nil): The rescheduled card
	//   - (nil, domain.ErrNotAuthenticated): No authenticated caller
	//   - (nil, domain.ErrInvalidQuality): quality outside 1..4
	//   - (nil, domain.ErrDeckNotFound / domain.ErrCardNotFound): Unknown ids
	//   - (nil, *ServiceError): Any other failure; nothing was written
	Review(
		ctx context.Context,
		deckID, cardID string,
		quality domain.ReviewQuality,
	) (*domain.Card, error)

	// NextCard returns the due card of a deck with the earliest due date.
	// It returns ErrNoCardsDue when nothing in the deck is due.
	NextCard(ctx context.Context, deckID string) (*domain.Card, error)
}

// StatsRecorder counts a review inside an open store transaction.
type StatsRecorder interface {
	RecordReview(
		ctx context.Context,
		tx *store.Tx,
		userID string,
		now time.Time,
		pass bool,
	) (*domain.Stats, error)
}

// Observer is notified after every committed review.
type Observer interface {
	ObserveReview(quality domain.ReviewQuality)
}

// Common error types for ReviewService
var (
	// ErrNoCardsDue indicates that no card of the deck is due for review.
	ErrNoCardsDue = errors.New("no cards due for review")
)

// ServiceError wraps errors from the card review service with additional context.
// This allows consumers to differentiate between different types of service errors
// using errors.As instead of string matching.
type ServiceError struct {
	// Operation is the operation that failed (e.g., "review", "next_card")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewReviewError returns a new ServiceError for the review operation.
func NewReviewError(message string, err error) *ServiceError {
	return &ServiceError{
		Operation: "review",
		Message:   message,
		Err:       err,
	}
}

// NewNextCardError returns a new ServiceError for the next_card operation.
func NewNextCardError(message string, err error) *ServiceError {
	return &ServiceError{
		Operation: "next_card",
		Message:   message,
		Err:       err,
	}
}
