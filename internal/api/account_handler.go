package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/scry-decks/internal/service"
)

// AccountHandler handles requests that act on all of the caller's data.
type AccountHandler struct {
	accounts service.AccountService
	logger   *slog.Logger
}

// NewAccountHandler creates a new AccountHandler
func NewAccountHandler(accounts service.AccountService, logger *slog.Logger) *AccountHandler {
	if accounts == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("account service cannot be nil for AccountHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AccountHandler{accounts: accounts, logger: logger.With(slog.String("component", "account_handler"))}
}

// DeleteAccountData handles DELETE /account requests. It removes every deck,
// card and the statistics of the caller.
func (h *AccountHandler) DeleteAccountData(w http.ResponseWriter, r *http.Request) {
	if err := h.accounts.DeleteAllData(r.Context()); err != nil {
		HandleAPIError(w, r, err, "Failed to delete account data")
		return
	}

	requestLogger(r, h.logger).Info("account data deleted")
	w.WriteHeader(http.StatusNoContent)
}
