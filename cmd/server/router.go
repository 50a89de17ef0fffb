package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/phrazzld/scry-decks/internal/api"
	apiMiddleware "github.com/phrazzld/scry-decks/internal/api/middleware"
	"github.com/phrazzld/scry-decks/internal/platform/metrics"
)

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))
	r.Use(metrics.Middleware(app.metrics))
	if app.config.Server.RateLimit > 0 {
		r.Use(httprate.LimitByIP(app.config.Server.RateLimit, time.Minute))
	}

	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	deckHandler := api.NewDeckHandler(app.deckService, app.logger)
	cardHandler := api.NewCardHandler(app.cardService, app.logger)
	reviewHandler := api.NewReviewHandler(app.reviewService, app.logger)
	statsHandler := api.NewStatsHandler(app.statsService, app.logger)
	accountHandler := api.NewAccountHandler(app.accountService, app.logger)

	r.Route("/api", func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)

		r.Route("/decks", func(r chi.Router) {
			r.Get("/", deckHandler.ListDecks)
			r.Post("/", deckHandler.CreateDeck)

			r.Route("/{deckID}", func(r chi.Router) {
				r.Get("/", deckHandler.GetDeck)
				r.Put("/", deckHandler.RenameDeck)
				r.Delete("/", deckHandler.DeleteDeck)

				r.Get("/review/next", reviewHandler.GetNextReviewCard)

				r.Route("/cards", func(r chi.Router) {
					r.Get("/", cardHandler.ListCards)
					r.Post("/", cardHandler.CreateCard)
					r.Get("/due", cardHandler.DueCards)
					r.Get("/{cardID}", cardHandler.GetCard)
					r.Put("/{cardID}", cardHandler.UpdateCard)
					r.Delete("/{cardID}", cardHandler.DeleteCard)
					r.Post("/{cardID}/review", reviewHandler.SubmitReview)
				})
			})
		})

		r.Get("/stats", statsHandler.GetStats)
		r.Delete("/account", accountHandler.DeleteAccountData)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, err := w.Write([]byte("OK"))
		if err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})
	r.Method(http.MethodGet, "/metrics", app.metrics.Handler())

	return r
}
