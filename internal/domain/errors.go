// Package domain defines the core business entities and errors.
package domain

import (
	"errors"
	"fmt"
)

// Errors returned by deck, card, review and stats operations. They are expected,
// recoverable outcomes; callers match them with errors.Is.
var (
	// ErrNotAuthenticated is returned when the caller has no authenticated identity.
	// It is checked before any store access.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrDeckNotFound is returned when a deck id does not exist for the current user.
	ErrDeckNotFound = errors.New("deck not found")

	// ErrCardNotFound is returned when a card id does not exist within its deck.
	ErrCardNotFound = errors.New("card not found")

	// ErrDuplicateDeckName is returned when another deck of the same user already
	// uses the requested name. Names are compared case-sensitively.
	ErrDuplicateDeckName = errors.New("a deck with this name already exists")

	// ErrInvalidQuality is returned when a review grade is outside 1..4.
	ErrInvalidQuality = errors.New("invalid quality rating")
)

// Validation errors.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrDeckNameEmpty is returned when a deck name is blank.
	ErrDeckNameEmpty = fmt.Errorf("%w: deck name cannot be empty", ErrValidation)

	// ErrCardContentEmpty is returned when the front or back of a card is blank.
	ErrCardContentEmpty = fmt.Errorf("%w: card front and back cannot be empty", ErrValidation)

	// ErrIDEmpty is returned when an entity has no identifier.
	ErrIDEmpty = fmt.Errorf("%w: id cannot be empty", ErrValidation)

	// ErrInvalidSchedule is returned when a card's scheduling fields break their bounds.
	ErrInvalidSchedule = fmt.Errorf("%w: invalid scheduling state", ErrValidation)

	// ErrInvalidStats is returned when a stats record breaks its bounds.
	ErrInvalidStats = fmt.Errorf("%w: invalid stats record", ErrValidation)
)

// IsNotFound reports whether err is a deck or card lookup failure.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrDeckNotFound) || errors.Is(err, ErrCardNotFound)
}
