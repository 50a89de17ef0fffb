package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/phrazzld/scry-decks/internal/api/shared"
	"github.com/phrazzld/scry-decks/internal/service"
)

// AsOfParam is the query parameter that overrides the instant used by the
// due cards endpoint. It takes an RFC 3339 timestamp.
const AsOfParam = "as_of"

// CardHandler handles card-related HTTP requests
type CardHandler struct {
	cards  service.CardService
	logger *slog.Logger
	now    func() time.Time
}

// NewCardHandler creates a new CardHandler
func NewCardHandler(cards service.CardService, logger *slog.Logger) *CardHandler {
	if cards == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("card service cannot be nil for CardHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &CardHandler{
		cards:  cards,
		logger: logger.With(slog.String("component", "card_handler")),
		now:    time.Now,
	}
}

// ListCards handles GET /decks/{deckID}/cards requests
func (h *CardHandler) ListCards(w http.ResponseWriter, r *http.Request) {
	deckID, ok := getPathParam(w, r, deckIDParam, requestLogger(r, h.logger))
	if !ok {
		return
	}

	cards, err := h.cards.List(r.Context(), deckID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list cards")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, cardsToResponse(cards))
}

// DueCards handles GET /decks/{deckID}/cards/due requests. Without an
// as_of parameter the current time is used.
func (h *CardHandler) DueCards(w http.ResponseWriter, r *http.Request) {
	log := requestLogger(r, h.logger)

	deckID, ok := getPathParam(w, r, deckIDParam, log)
	if !ok {
		return
	}

	asOf := h.now()
	if raw := r.URL.Query().Get(AsOfParam); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			log.Warn("invalid as_of parameter", slog.String("value", raw))
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid as_of: expected RFC 3339 timestamp")
			return
		}
		asOf = parsed
	}

	cards, err := h.cards.Due(r.Context(), deckID, asOf)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list due cards")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, cardsToResponse(cards))
}

// CreateCard handles POST /decks/{deckID}/cards requests
func (h *CardHandler) CreateCard(w http.ResponseWriter, r *http.Request) {
	log := requestLogger(r, h.logger)

	deckID, ok := getPathParam(w, r, deckIDParam, log)
	if !ok {
		return
	}

	var req CardRequest
	if !decodeAndValidate(w, r, &req, log) {
		return
	}

	card, err := h.cards.Add(r.Context(), deckID, req.Front, req.Back)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create card")
		return
	}

	log.Debug("card created", slog.String("deck_id", deckID), slog.String("card_id", card.ID))
	shared.RespondWithJSON(w, r, http.StatusCreated, cardToResponse(card))
}

// GetCard handles GET /decks/{deckID}/cards/{cardID} requests
func (h *CardHandler) GetCard(w http.ResponseWriter, r *http.Request) {
	deckID, cardID, ok := h.cardPath(w, r)
	if !ok {
		return
	}

	card, err := h.cards.Get(r.Context(), deckID, cardID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get card")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, cardToResponse(card))
}

// UpdateCard handles PUT /decks/{deckID}/cards/{cardID} requests. Only the
// text changes; the schedule is kept.
func (h *CardHandler) UpdateCard(w http.ResponseWriter, r *http.Request) {
	deckID, cardID, ok := h.cardPath(w, r)
	if !ok {
		return
	}

	var req CardRequest
	if !decodeAndValidate(w, r, &req, requestLogger(r, h.logger)) {
		return
	}

	card, err := h.cards.Update(r.Context(), deckID, cardID, req.Front, req.Back)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update card")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, cardToResponse(card))
}

// DeleteCard handles DELETE /decks/{deckID}/cards/{cardID} requests
func (h *CardHandler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	deckID, cardID, ok := h.cardPath(w, r)
	if !ok {
		return
	}

	if err := h.cards.Delete(r.Context(), deckID, cardID); err != nil {
		HandleAPIError(w, r, err, "Failed to delete card")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *CardHandler) cardPath(w http.ResponseWriter, r *http.Request) (string, string, bool) {
	log := requestLogger(r, h.logger)
	deckID, ok := getPathParam(w, r, deckIDParam, log)
	if !ok {
		return "", "", false
	}
	cardID, ok := getPathParam(w, r, cardIDParam, log)
	if !ok {
		return "", "", false
	}
	return deckID, cardID, true
}
