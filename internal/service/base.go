package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/phrazzld/scry-decks/internal/domain"
	"github.com/phrazzld/scry-decks/internal/identity"
	"github.com/phrazzld/scry-decks/internal/platform/logger"
	"github.com/phrazzld/scry-decks/internal/store"
)

// Option configures a service.
type Option func(*options)

type options struct {
	clock func() time.Time
}

// WithClock replaces time.Now as the source of the current time.
func WithClock(clock func() time.Time) Option {
	return func(o *options) {
		if clock != nil {
			o.clock = clock
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{clock: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// base carries the dependencies shared by every service in this package.
type base struct {
	name       string
	transactor *store.Transactor
	identity   identity.Identity
	clock      func() time.Time
	logger     *slog.Logger
}

func newBase(
	name string,
	transactor *store.Transactor,
	id identity.Identity,
	log *slog.Logger,
	opts []Option,
) (base, error) {
	if transactor == nil {
		return base{}, nilDependency("transactor")
	}
	if id == nil {
		return base{}, nilDependency("identity")
	}
	if log == nil {
		log = slog.Default()
	}

	o := buildOptions(opts)
	return base{
		name:       name,
		transactor: transactor,
		identity:   id,
		clock:      o.clock,
		logger:     log.With(slog.String("component", name+"_service")),
	}, nil
}

// begin resolves the caller and the request logger. It never touches the store.
func (b *base) begin(ctx context.Context) (string, *slog.Logger, error) {
	log := logger.FromContextOrDefault(ctx, b.logger)
	if !b.identity.IsAuthenticated(ctx) {
		log.Debug("rejected unauthenticated request")
		return "", log, domain.ErrNotAuthenticated
	}
	userID := b.identity.CurrentUserID(ctx)
	return userID, log.With(slog.String("user_id", userID)), nil
}

// finish classifies err: expected domain outcomes pass through, anything else
// is logged and wrapped in a ServiceError.
func (b *base) finish(log *slog.Logger, operation string, err error) error {
	if err == nil || isExpected(err) {
		return err
	}
	log.Error("operation failed",
		slog.String("operation", operation),
		slog.String("error", err.Error()))
	return NewServiceError(b.name, operation, "store operation failed", err)
}

func isExpected(err error) bool {
	return errors.Is(err, domain.ErrNotAuthenticated) ||
		errors.Is(err, domain.ErrDeckNotFound) ||
		errors.Is(err, domain.ErrCardNotFound) ||
		errors.Is(err, domain.ErrDuplicateDeckName) ||
		errors.Is(err, domain.ErrInvalidQuality) ||
		errors.Is(err, domain.ErrValidation)
}
