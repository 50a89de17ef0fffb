package srs

import (
	"math"
	"time"

	"github.com/phrazzld/scry-decks/internal/domain"
)

const dateLayout = "2006-01-02"

// Tracker maintains the rolling daily study record of a user.
//
// Day boundaries are calendar days in the tracker's location, not elapsed
// 24-hour windows: a review at 23:59 and one at 00:01 belong to different days.
type Tracker struct {
	location    *time.Location
	historyDays int
}

// NewTracker creates a Tracker using the location and history size of params.
func NewTracker(params *Params) *Tracker {
	if params == nil {
		params = NewDefaultParams()
	}
	return &Tracker{
		location:    params.Location,
		historyDays: params.DailyHistoryDays,
	}
}

// SameDay reports whether a and b fall on the same calendar day in the
// tracker's location.
func (t *Tracker) SameDay(a, b time.Time) bool {
	ay, am, ad := a.In(t.location).Date()
	by, bm, bd := b.In(t.location).Date()
	return ay == by && am == bm && ad == bd
}

// RecordReview returns a copy of stats updated with one review at now.
//
// The first review of a new calendar day starts a new history entry and a new
// session; older entries beyond the history size are dropped oldest first.
// Retention is recomputed over the retained entries on every call.
func (t *Tracker) RecordReview(stats *domain.Stats, now time.Time, pass bool) (*domain.Stats, error) {
	if stats == nil {
		return nil, ErrNilStats
	}

	next := stats.Clone()
	correct := 0
	if pass {
		correct = 1
	}

	newDay := next.LastStudied == nil || !t.SameDay(*next.LastStudied, now)
	if newDay || len(next.DailyStats) == 0 {
		if newDay {
			next.StudiedToday = 1
			next.TotalSessions++
		} else {
			next.StudiedToday++
		}
		next.DailyStats = append(next.DailyStats, domain.DailyStat{
			Date:    now.In(t.location).Format(dateLayout),
			Count:   1,
			Correct: correct,
		})
		if excess := len(next.DailyStats) - t.historyDays; excess > 0 {
			next.DailyStats = append([]domain.DailyStat(nil), next.DailyStats[excess:]...)
		}
	} else {
		next.StudiedToday++
		last := &next.DailyStats[len(next.DailyStats)-1]
		last.Count++
		last.Correct += correct
	}

	next.Retention = Retention(next.DailyStats)
	studied := now
	next.LastStudied = &studied

	return next, nil
}

// View returns the stats as seen at now: StudiedToday reads zero once the
// last study day is over. The input is not modified.
func (t *Tracker) View(stats *domain.Stats, now time.Time) *domain.Stats {
	view := stats.Clone()
	if view.LastStudied == nil || !t.SameDay(*view.LastStudied, now) {
		view.StudiedToday = 0
	}
	return view
}

// Retention is the rounded percentage of correct reviews across days, or 0
// when no reviews are recorded.
func Retention(days []domain.DailyStat) int {
	var count, correct int
	for _, day := range days {
		count += day.Count
		correct += day.Correct
	}
	if count == 0 {
		return 0
	}
	return int(math.Round(100 * float64(correct) / float64(count)))
}
