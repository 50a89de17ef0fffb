package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/phrazzld/scry-decks/internal/api/shared"
	"github.com/phrazzld/scry-decks/internal/service/card_review"
)

// ReviewHandler handles study session requests
type ReviewHandler struct {
	reviews card_review.ReviewService
	logger  *slog.Logger
}

// NewReviewHandler creates a new ReviewHandler
func NewReviewHandler(reviews card_review.ReviewService, logger *slog.Logger) *ReviewHandler {
	if reviews == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("review service cannot be nil for ReviewHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &ReviewHandler{
		reviews: reviews,
		logger:  logger.With(slog.String("component", "review_handler")),
	}
}

// GetNextReviewCard handles GET /decks/{deckID}/review/next requests.
// It responds 204 No Content when nothing in the deck is due.
func (h *ReviewHandler) GetNextReviewCard(w http.ResponseWriter, r *http.Request) {
	log := requestLogger(r, h.logger)

	deckID, ok := getPathParam(w, r, deckIDParam, log)
	if !ok {
		return
	}

	card, err := h.reviews.NextCard(r.Context(), deckID)
	if errors.Is(err, card_review.ErrNoCardsDue) {
		log.Debug("no cards due for review", slog.String("deck_id", deckID))
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get next review card")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, cardToResponse(card))
}

// SubmitReview handles POST /decks/{deckID}/cards/{cardID}/review requests.
// It grades the card and returns its new schedule.
func (h *ReviewHandler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	log := requestLogger(r, h.logger)

	deckID, ok := getPathParam(w, r, deckIDParam, log)
	if !ok {
		return
	}
	cardID, ok := getPathParam(w, r, cardIDParam, log)
	if !ok {
		return
	}

	var req card_review.ReviewAnswer
	if !decodeAndValidate(w, r, &req, log) {
		return
	}

	card, err := h.reviews.Review(r.Context(), deckID, cardID, req.Quality)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to submit review")
		return
	}

	log.Debug("review submitted",
		slog.String("card_id", card.ID),
		slog.String("quality", req.Quality.String()),
		slog.Int("interval", card.Interval))
	shared.RespondWithJSON(w, r, http.StatusOK, cardToResponse(card))
}
