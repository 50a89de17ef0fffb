package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/phrazzld/scry-decks/internal/api"
	"github.com/phrazzld/scry-decks/internal/config"
	"github.com/phrazzld/scry-decks/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "integration-secret-that-is-long-enough"

func testConfig(backend string) *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:                   0,
			LogLevel:               "debug",
			ShutdownTimeoutSeconds: 1,
		},
		Store: config.StoreConfig{Backend: backend, CacheSizeMB: 1},
		Auth: config.AuthConfig{
			JWTSecret:            testJWTSecret,
			TokenLifetimeMinutes: 60,
		},
		Scheduler: config.SchedulerConfig{Timezone: "UTC"},
	}
}

func newTestApp(t *testing.T, cfg *config.Config) *application {
	t.Helper()
	log, _ := logger.GetTestLogger(t)
	app, err := newApplication(context.Background(), cfg, log)
	require.NoError(t, err)
	t.Cleanup(app.cleanup)
	return app
}

// client issues requests against the router as one user.
type client struct {
	t      *testing.T
	router http.Handler
	token  string
}

func newClient(t *testing.T, app *application, router http.Handler, userID string) *client {
	t.Helper()
	token, err := app.jwtService.GenerateToken(context.Background(), userID)
	require.NoError(t, err)
	return &client{t: t, router: router, token: token}
}

func (c *client) do(method, path, body string) *httptest.ResponseRecorder {
	c.t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	rr := httptest.NewRecorder()
	c.router.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), "body: %s", rr.Body.String())
	return v
}

func TestStudySessionEndToEnd(t *testing.T) {
	app := newTestApp(t, testConfig(config.BackendMemory))
	router := app.setupRouter()
	alice := newClient(t, app, router, "alice")

	rr := alice.do(http.MethodPost, "/api/decks", `{"name":"Spanish"}`)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	deck := decode[api.DeckResponse](t, rr)
	assert.NotEmpty(t, rr.Header().Get("X-Trace-ID"))

	rr = alice.do(http.MethodPost, "/api/decks", `{"name":"Spanish"}`)
	assert.Equal(t, http.StatusConflict, rr.Code)

	rr = alice.do(http.MethodPost, "/api/decks/"+deck.ID+"/cards", `{"front":"hola","back":"hello"}`)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	card := decode[api.CardResponse](t, rr)

	rr = alice.do(http.MethodGet, "/api/decks/"+deck.ID+"/review/next", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, card.ID, decode[api.CardResponse](t, rr).ID)

	rr = alice.do(http.MethodPost, "/api/decks/"+deck.ID+"/cards/"+card.ID+"/review", `{"quality":3}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	reviewed := decode[api.CardResponse](t, rr)
	assert.Equal(t, 1, reviewed.Interval)
	assert.Equal(t, 1, reviewed.Repetitions)
	assert.NotNil(t, reviewed.LastReviewed)

	rr = alice.do(http.MethodGet, "/api/decks/"+deck.ID+"/review/next", "")
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = alice.do(http.MethodGet, "/api/stats", "")
	require.Equal(t, http.StatusOK, rr.Code)
	stats := decode[api.StatsResponse](t, rr)
	assert.Equal(t, 1, stats.StudiedToday)
	assert.Equal(t, 1, stats.TotalSessions)
	assert.Equal(t, 100, stats.Retention)
	require.Len(t, stats.DailyStats, 1)

	rr = alice.do(http.MethodGet, "/api/decks/"+deck.ID, "")
	require.Equal(t, http.StatusOK, rr.Code)
	got := decode[api.DeckResponse](t, rr)
	assert.Equal(t, 1, got.CardCount)
	assert.NotNil(t, got.LastStudied)

	rr = alice.do(http.MethodDelete, "/api/account", "")
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = alice.do(http.MethodGet, "/api/decks", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, decode[[]api.DeckResponse](t, rr))
}

func TestUsersAreIsolated(t *testing.T) {
	app := newTestApp(t, testConfig(config.BackendMemory))
	router := app.setupRouter()
	alice := newClient(t, app, router, "alice")
	bob := newClient(t, app, router, "bob")

	rr := alice.do(http.MethodPost, "/api/decks", `{"name":"Private"}`)
	require.Equal(t, http.StatusCreated, rr.Code)
	deck := decode[api.DeckResponse](t, rr)

	rr = bob.do(http.MethodGet, "/api/decks", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, decode[[]api.DeckResponse](t, rr))

	rr = bob.do(http.MethodGet, "/api/decks/"+deck.ID, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	// Same name is fine for another user.
	rr = bob.do(http.MethodPost, "/api/decks", `{"name":"Private"}`)
	assert.Equal(t, http.StatusCreated, rr.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	app := newTestApp(t, testConfig(config.BackendMemory))
	anonymous := &client{t: t, router: app.setupRouter()}

	for _, path := range []string{"/api/decks", "/api/stats"} {
		rr := anonymous.do(http.MethodGet, path, "")
		assert.Equal(t, http.StatusUnauthorized, rr.Code, path)
	}

	forged := &client{t: t, router: app.setupRouter(), token: "not-a-token"}
	rr := forged.do(http.MethodGet, "/api/decks", "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestHealthAndMetrics(t *testing.T) {
	app := newTestApp(t, testConfig(config.BackendMemory))
	router := app.setupRouter()
	alice := newClient(t, app, router, "alice")

	rr := alice.do(http.MethodPost, "/api/decks", `{"name":"Metrics"}`)
	require.Equal(t, http.StatusCreated, rr.Code)

	anonymous := &client{t: t, router: router}
	rr = anonymous.do(http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "OK", rr.Body.String())

	rr = anonymous.do(http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, "scry_http_requests_total")
	assert.Contains(t, body, "scry_store_operation_duration_seconds")
	assert.Contains(t, body, "scry_cache_hits")
}

func TestRateLimit(t *testing.T) {
	cfg := testConfig(config.BackendMemory)
	cfg.Server.RateLimit = 2
	app := newTestApp(t, cfg)
	anonymous := &client{t: t, router: app.setupRouter()}

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		codes = append(codes, anonymous.do(http.MethodGet, "/health", "").Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestOpenBackend(t *testing.T) {
	dir := t.TempDir()
	log, _ := logger.GetTestLogger(t)

	tests := []struct {
		name    string
		cfg     func() *config.Config
		closer  bool
		wantErr bool
	}{
		{
			name:   "memory",
			cfg:    func() *config.Config { return testConfig(config.BackendMemory) },
			closer: false,
		},
		{
			name: "sqlite",
			cfg: func() *config.Config {
				cfg := testConfig(config.BackendSQLite)
				cfg.Store.SQLitePath = filepath.Join(dir, "scry.db")
				return cfg
			},
			closer: true,
		},
		{
			name: "file",
			cfg: func() *config.Config {
				cfg := testConfig(config.BackendFile)
				cfg.Store.FilePath = filepath.Join(dir, "scry.zst")
				return cfg
			},
			closer: true,
		},
		{
			name:    "unknown",
			cfg:     func() *config.Config { return testConfig("cassandra") },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, closer, err := openBackend(context.Background(), tt.cfg(), log)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, s)
			assert.Equal(t, tt.closer, closer != nil)
			if closer != nil {
				assert.NoError(t, closer.Close())
			}
		})
	}
}

func TestSQLiteBackendPersistsAcrossRestarts(t *testing.T) {
	cfg := testConfig(config.BackendSQLite)
	cfg.Store.SQLitePath = filepath.Join(t.TempDir(), "scry.db")
	log, _ := logger.GetTestLogger(t)

	app, err := newApplication(context.Background(), cfg, log)
	require.NoError(t, err)
	rr := newClient(t, app, app.setupRouter(), "alice").do(http.MethodPost, "/api/decks", `{"name":"Kept"}`)
	require.Equal(t, http.StatusCreated, rr.Code)
	app.cleanup()

	app = newTestApp(t, cfg)
	rr = newClient(t, app, app.setupRouter(), "alice").do(http.MethodGet, "/api/decks", "")
	require.Equal(t, http.StatusOK, rr.Code)
	decks := decode[[]api.DeckResponse](t, rr)
	require.Len(t, decks, 1)
	assert.Equal(t, "Kept", decks[0].Name)
}
