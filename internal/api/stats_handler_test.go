package api

import (
	"net/http"
	"testing"
	"time"

	"github.com/phrazzld/scry-decks/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetStats(t *testing.T) {
	last := time.Date(2025, 3, 2, 18, 0, 0, 0, time.UTC)
	svcs := newTestServices()
	svcs.stats.Stats = &domain.Stats{
		StudiedToday:  3,
		TotalSessions: 2,
		LastStudied:   &last,
		DailyStats: []domain.DailyStat{
			{Date: "2025-03-01", Count: 1, Correct: 0},
			{Date: "2025-03-02", Count: 3, Correct: 3},
		},
		Retention: 75,
	}

	rr := doRequest(t, svcs.router(), http.MethodGet, "/stats", "")

	require.Equal(t, http.StatusOK, rr.Code)
	resp := decodeBody[StatsResponse](t, rr)
	assert.Equal(t, 3, resp.StudiedToday)
	assert.Equal(t, 75, resp.Retention)
	require.Len(t, resp.DailyStats, 2)
	assert.Equal(t, "2025-03-02", resp.DailyStats[1].Date)
	assert.Equal(t, 3, resp.DailyStats[1].Correct)
}

func TestGetStatsUnauthenticated(t *testing.T) {
	svcs := newTestServices()
	svcs.stats.Err = domain.ErrNotAuthenticated

	rr := doRequest(t, svcs.router(), http.MethodGet, "/stats", "")

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestDeleteAccountData(t *testing.T) {
	svcs := newTestServices()

	rr := doRequest(t, svcs.router(), http.MethodDelete, "/account", "")

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, 1, svcs.accounts.Calls)
}
