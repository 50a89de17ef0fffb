package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"
	"github.com/phrazzld/scry-decks/internal/api/shared"
	"github.com/phrazzld/scry-decks/internal/mocks"
	"github.com/stretchr/testify/require"
)

// testServices bundles the mocks behind a router built like the server's.
type testServices struct {
	decks    *mocks.MockDeckService
	cards    *mocks.MockCardService
	reviews  *mocks.MockReviewService
	stats    *mocks.MockStatsService
	accounts *mocks.MockAccountService
}

func newTestServices() *testServices {
	return &testServices{
		decks:    &mocks.MockDeckService{},
		cards:    &mocks.MockCardService{},
		reviews:  &mocks.MockReviewService{},
		stats:    &mocks.MockStatsService{},
		accounts: &mocks.MockAccountService{},
	}
}

func (s *testServices) router() http.Handler {
	deckHandler := NewDeckHandler(s.decks, nil)
	cardHandler := NewCardHandler(s.cards, nil)
	reviewHandler := NewReviewHandler(s.reviews, nil)
	statsHandler := NewStatsHandler(s.stats, nil)
	accountHandler := NewAccountHandler(s.accounts, nil)

	r := chi.NewRouter()
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
	return r
}

func doRequest(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), "body: %s", rr.Body.String())
	return v
}

func errorMessage(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	return decodeBody[shared.ErrorResponse](t, rr).Error
}
