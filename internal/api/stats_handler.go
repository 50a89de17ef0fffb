package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/scry-decks/internal/api/shared"
	"github.com/phrazzld/scry-decks/internal/service"
)

// StatsHandler serves the caller's study statistics.
type StatsHandler struct {
	stats  service.StatsService
	logger *slog.Logger
}

// NewStatsHandler creates a new StatsHandler
func NewStatsHandler(stats service.StatsService, logger *slog.Logger) *StatsHandler {
	if stats == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("stats service cannot be nil for StatsHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &StatsHandler{stats: stats, logger: logger.With(slog.String("component", "stats_handler"))}
}

// GetStats handles GET /stats requests
func (h *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.stats.GetStats(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get statistics")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, statsToResponse(stats))
}
