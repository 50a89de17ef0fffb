package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/scry-decks/internal/api/shared"
	"github.com/phrazzld/scry-decks/internal/platform/logger"
	"github.com/phrazzld/scry-decks/internal/redact"
)

// Path parameter names used by the router.
const (
	deckIDParam = "deckID"
	cardIDParam = "cardID"
)

// HandleAPIError maps err to a status code and a safe message and writes the
// error response. fallbackMsg replaces the generic message of 500 responses
// when it is not empty.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, fallbackMsg string) {
	statusCode := MapErrorToStatusCode(err)
	safeMessage := GetSafeErrorMessage(err)

	if statusCode == http.StatusInternalServerError && fallbackMsg != "" {
		safeMessage = fallbackMsg
	}

	shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
}

// getPathParam extracts a required path parameter. It writes a 400 response
// and returns false when the parameter is blank.
func getPathParam(w http.ResponseWriter, r *http.Request, paramName string, log *slog.Logger) (string, bool) {
	value := strings.TrimSpace(chi.URLParam(r, paramName))
	if value == "" {
		log.Warn("missing path parameter", slog.String("param_name", paramName))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Missing "+paramName)
		return "", false
	}
	return value, true
}

// decodeAndValidate decodes the JSON body into v and validates it. It writes
// the 400 response itself and returns false on failure.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v interface{}, log *slog.Logger) bool {
	if err := shared.DecodeJSON(r, v); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			shared.RespondWithErrorAndLog(w, r, http.StatusRequestEntityTooLarge, "Request body too large", err)
			return false
		}
		log.Warn("invalid request format", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return false
	}

	if err := shared.ValidateRequest(v); err != nil {
		log.Warn("validation error", slog.String("error", redact.Error(err)))
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return false
	}
	return true
}

// requestLogger returns the request-scoped logger, falling back to the
// handler's own logger.
func requestLogger(r *http.Request, fallback *slog.Logger) *slog.Logger {
	return logger.FromContextOrDefault(r.Context(), fallback)
}
