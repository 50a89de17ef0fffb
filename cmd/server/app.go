package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/phrazzld/scry-decks/internal/config"
	"github.com/phrazzld/scry-decks/internal/domain/srs"
	"github.com/phrazzld/scry-decks/internal/identity"
	"github.com/phrazzld/scry-decks/internal/platform/cache"
	"github.com/phrazzld/scry-decks/internal/platform/filestore"
	"github.com/phrazzld/scry-decks/internal/platform/memory"
	"github.com/phrazzld/scry-decks/internal/platform/metrics"
	"github.com/phrazzld/scry-decks/internal/platform/postgres"
	"github.com/phrazzld/scry-decks/internal/platform/sqlite"
	"github.com/phrazzld/scry-decks/internal/service"
	"github.com/phrazzld/scry-decks/internal/service/auth"
	"github.com/phrazzld/scry-decks/internal/service/card_review"
	"github.com/phrazzld/scry-decks/internal/store"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config  *config.Config
	logger  *slog.Logger
	metrics *metrics.Metrics

	// backend is the raw store; closer releases it on shutdown when it
	// holds resources.
	backend store.Store
	closer  io.Closer

	jwtService     auth.JWTService
	deckService    service.DeckService
	cardService    service.CardService
	statsService   service.StatsService
	accountService service.AccountService
	reviewService  card_review.ReviewService
}

// openBackend opens the store selected by cfg.Store.Backend.
func openBackend(ctx context.Context, cfg *config.Config, logger *slog.Logger) (store.Store, io.Closer, error) {
	switch cfg.Store.Backend {
	case config.BackendMemory, "":
		return memory.New(), nil, nil
	case config.BackendSQLite:
		s, err := sqlite.Open(ctx, cfg.Store.SQLitePath, logger)
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	case config.BackendPostgres:
		s, err := postgres.Open(ctx, cfg.Database.URL, logger)
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	case config.BackendFile:
		s, err := filestore.Open(cfg.Store.FilePath, logger)
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

// newApplication creates a new application instance with all dependencies initialized.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config:  cfg,
		logger:  logger,
		metrics: metrics.New(),
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.backend, app.closer, err = openBackend(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", cfg.Store.Backend, err)
	}
	logger.Info("store opened", slog.String("backend", cfg.Store.Backend))

	// instrument(cache(backend)): metrics see every call, including cache hits.
	st := cache.New(app.backend, cfg.Store.CacheSizeMB, logger)
	if cached, ok := st.(*cache.Store); ok {
		app.metrics.RegisterGauge("cache_hits", "Read cache hits.",
			func() float64 { return float64(cached.Stats().Hits) })
		app.metrics.RegisterGauge("cache_misses", "Read cache misses.",
			func() float64 { return float64(cached.Stats().Misses) })
		app.metrics.RegisterGauge("cache_entries", "Documents held by the read cache.",
			func() float64 { return float64(cached.Stats().Entries) })
	}
	transactor := store.NewTransactor(metrics.InstrumentStore(st, app.metrics))

	params := srs.NewParams(srs.ParamsConfig{Location: cfg.Scheduler.Location()})
	id := identity.FromContext{}

	if err := app.initServices(transactor, id, params); err != nil {
		app.cleanup()
		return nil, err
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

func (app *application) initServices(transactor *store.Transactor, id identity.Identity, params *srs.Params) error {
	var err error

	app.deckService, err = service.NewDeckService(transactor, id, app.logger)
	if err != nil {
		return fmt.Errorf("failed to create deck service: %w", err)
	}

	app.cardService, err = service.NewCardService(transactor, id, app.logger)
	if err != nil {
		return fmt.Errorf("failed to create card service: %w", err)
	}

	app.statsService, err = service.NewStatsService(transactor, id, srs.NewTracker(params), app.logger)
	if err != nil {
		return fmt.Errorf("failed to create stats service: %w", err)
	}

	app.accountService, err = service.NewAccountService(transactor, id, app.logger)
	if err != nil {
		return fmt.Errorf("failed to create account service: %w", err)
	}

	app.reviewService = card_review.NewReviewService(
		transactor,
		id,
		srs.NewServiceWithParams(params),
		app.statsService,
		app.logger,
		card_review.WithObserver(app.metrics),
	)
	return nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.closer != nil {
		if err := app.closer.Close(); err != nil {
			app.logger.Error("Error closing store", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
