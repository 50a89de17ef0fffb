package service

import (
	"context"
	"log/slog"

	"github.com/phrazzld/scry-decks/internal/identity"
	"github.com/phrazzld/scry-decks/internal/store"
)

// AccountService manages the data of the current user as a whole.
type AccountService interface {
	// DeleteAllData removes every deck, card and the statistics of the
	// caller. Deleting a user without data succeeds.
	DeleteAllData(ctx context.Context) error
}

var _ AccountService = (*accountServiceImpl)(nil)

type accountServiceImpl struct {
	base
}

// NewAccountService creates a new AccountService.
// It returns an error if any of the required dependencies are nil.
func NewAccountService(
	transactor *store.Transactor,
	id identity.Identity,
	logger *slog.Logger,
	opts ...Option,
) (AccountService, error) {
	b, err := newBase("account", transactor, id, logger, opts)
	if err != nil {
		return nil, err
	}
	return &accountServiceImpl{base: b}, nil
}

func (s *accountServiceImpl) DeleteAllData(ctx context.Context) error {
	userID, log, err := s.begin(ctx)
	if err != nil {
		return err
	}

	err = s.transactor.RunInTransaction(ctx, func(ctx context.Context, tx *store.Tx) error {
		store.DeleteUserData(tx, userID)
		return nil
	})
	if err != nil {
		return s.finish(log, "delete_all_data", err)
	}

	log.Info("user data deleted")
	return nil
}
