package domain

import "time"

// MaxDailyStats is the number of study days kept in Stats.DailyStats.
const MaxDailyStats = 30

// DailyStat summarizes one calendar day of reviews.
type DailyStat struct {
	Date    string `json:"date"` // YYYY-MM-DD
	Count   int    `json:"count"`
	Correct int    `json:"correct"`
}

// Stats is the per-user rolling study record.
//
// DailyStats is ordered oldest first and never holds more than MaxDailyStats
// entries. Retention is the percentage of passing reviews across DailyStats.
type Stats struct {
	StudiedToday  int         `json:"studiedToday"`
	// TotalSessions counts study days: it goes up by one on the first review
	// of each calendar day, not once per review.
	TotalSessions int         `json:"totalSessions"`
	LastStudied   *time.Time  `json:"lastStudied,omitempty"`
	DailyStats    []DailyStat `json:"dailyStats"`
	Retention     int         `json:"retention"`
}

// NewStats returns the zeroed record of a user with no study activity.
func NewStats() *Stats {
	return &Stats{
		DailyStats: []DailyStat{},
	}
}

// Validate checks if the Stats record is within its bounds.
func (s *Stats) Validate() error {
	if s.StudiedToday < 0 || s.TotalSessions < 0 {
		return ErrInvalidStats
	}
	if len(s.DailyStats) > MaxDailyStats {
		return ErrInvalidStats
	}
	if s.Retention < 0 || s.Retention > 100 {
		return ErrInvalidStats
	}
	for _, day := range s.DailyStats {
		if day.Count < 0 || day.Correct < 0 || day.Correct > day.Count {
			return ErrInvalidStats
		}
	}
	return nil
}

// Clone returns a deep copy of s.
func (s *Stats) Clone() *Stats {
	c := *s
	if s.LastStudied != nil {
		t := *s.LastStudied
		c.LastStudied = &t
	}
	c.DailyStats = make([]DailyStat, len(s.DailyStats))
	copy(c.DailyStats, s.DailyStats)
	return &c
}
