package mocks

import (
	"context"

	"github.com/phrazzld/scry-decks/internal/service"
)

// MockAccountService implements service.AccountService for testing
type MockAccountService struct {
	DeleteAllDataFn func(ctx context.Context) error

	Err   error
	Calls int
}

var _ service.AccountService = (*MockAccountService)(nil)

func (m *MockAccountService) DeleteAllData(ctx context.Context) error {
	m.Calls++
	if m.DeleteAllDataFn != nil {
		return m.DeleteAllDataFn(ctx)
	}
	return m.Err
}
