package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/scry-decks/internal/api/shared"
	"github.com/phrazzld/scry-decks/internal/service"
)

// DeckHandler handles deck-related HTTP requests
type DeckHandler struct {
	decks  service.DeckService
	logger *slog.Logger
}

// NewDeckHandler creates a new DeckHandler
func NewDeckHandler(decks service.DeckService, logger *slog.Logger) *DeckHandler {
	if decks == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("deck service cannot be nil for DeckHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &DeckHandler{
		decks:  decks,
		logger: logger.With(slog.String("component", "deck_handler")),
	}
}

// ListDecks handles GET /decks requests
func (h *DeckHandler) ListDecks(w http.ResponseWriter, r *http.Request) {
	decks, err := h.decks.List(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list decks")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, decksToResponse(decks))
}

// CreateDeck handles POST /decks requests
func (h *DeckHandler) CreateDeck(w http.ResponseWriter, r *http.Request) {
	log := requestLogger(r, h.logger)

	var req DeckRequest
	if !decodeAndValidate(w, r, &req, log) {
		return
	}

	deck, err := h.decks.Create(r.Context(), req.Name)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create deck")
		return
	}

	log.Debug("deck created", slog.String("deck_id", deck.ID))
	shared.RespondWithJSON(w, r, http.StatusCreated, deckToResponse(deck))
}

// GetDeck handles GET /decks/{deckID} requests
func (h *DeckHandler) GetDeck(w http.ResponseWriter, r *http.Request) {
	log := requestLogger(r, h.logger)

	deckID, ok := getPathParam(w, r, deckIDParam, log)
	if !ok {
		return
	}

	deck, err := h.decks.Get(r.Context(), deckID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get deck")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, deckToResponse(deck))
}

// RenameDeck handles PUT /decks/{deckID} requests
func (h *DeckHandler) RenameDeck(w http.ResponseWriter, r *http.Request) {
	log := requestLogger(r, h.logger)

	deckID, ok := getPathParam(w, r, deckIDParam, log)
	if !ok {
		return
	}

	var req DeckRequest
	if !decodeAndValidate(w, r, &req, log) {
		return
	}

	deck, err := h.decks.Rename(r.Context(), deckID, req.Name)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to rename deck")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, deckToResponse(deck))
}

// DeleteDeck handles DELETE /decks/{deckID} requests. The deck's cards are
// deleted with it.
func (h *DeckHandler) DeleteDeck(w http.ResponseWriter, r *http.Request) {
	log := requestLogger(r, h.logger)

	deckID, ok := getPathParam(w, r, deckIDParam, log)
	if !ok {
		return
	}

	if err := h.decks.Delete(r.Context(), deckID); err != nil {
		HandleAPIError(w, r, err, "Failed to delete deck")
		return
	}

	log.Debug("deck deleted", slog.String("deck_id", deckID))
	w.WriteHeader(http.StatusNoContent)
}
