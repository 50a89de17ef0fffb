// Package mocks provides function-field mocks of the service interfaces for
// handler and middleware tests.
//
// Each mock calls its Fn field when set and otherwise returns the default
// values stored on the struct:
//
//	decks := &mocks.MockDeckService{
//	    CreateFn: func(ctx context.Context, name string) (*domain.Deck, error) {
//	        return nil, domain.ErrDuplicateDeckName
//	    },
//	}
package mocks
