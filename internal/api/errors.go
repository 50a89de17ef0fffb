package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/scry-decks/internal/domain"
	"github.com/phrazzld/scry-decks/internal/service/auth"
	"github.com/phrazzld/scry-decks/internal/service/card_review"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, domain.ErrNotAuthenticated),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrMissingToken):
		return http.StatusUnauthorized

	// Not found errors
	case errors.Is(err, domain.ErrDeckNotFound),
		errors.Is(err, domain.ErrCardNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, domain.ErrDuplicateDeckName):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidQuality):
		return http.StatusBadRequest

	// Special cases
	case errors.Is(err, card_review.ErrNoCardsDue):
		return http.StatusNoContent

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, domain.ErrNotAuthenticated):
		return "Authentication required"

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrMissingToken):
		return "Invalid token"

	case errors.Is(err, domain.ErrDeckNotFound):
		return "Deck not found"

	case errors.Is(err, domain.ErrCardNotFound):
		return "Card not found"

	case errors.Is(err, domain.ErrDuplicateDeckName):
		return "A deck with this name already exists"

	case errors.Is(err, domain.ErrDeckNameEmpty):
		return "Deck name cannot be empty"

	case errors.Is(err, domain.ErrCardContentEmpty):
		return "Card front and back cannot be empty"

	case errors.Is(err, domain.ErrInvalidQuality):
		return "Quality must be between 1 and 4"

	case errors.Is(err, domain.ErrValidation):
		return "Validation error"

	// No cards due is handled separately with StatusNoContent

	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError turns validator errors into a short message naming
// the first failing field. Anything else becomes a generic message.
func SanitizeValidationError(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Sprintf("Invalid %s: %s", strings.ToLower(fe.Field()), getValidationTagMessage(fe.Tag()))
	}
	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		return "too small"
	case "max":
		return "too large"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}
