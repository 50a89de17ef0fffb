package srs

import "time"

// Params defines all configurable parameters for the SRS algorithm and the
// daily statistics tracker.
type Params struct {
	// MinEaseFactor is the floor applied after every ease adjustment.
	MinEaseFactor float64

	// FirstInterval and SecondInterval are the fixed intervals, in days, for the
	// first and second consecutive passing reviews. Later passes multiply the
	// previous interval by the previous ease factor.
	FirstInterval  int
	SecondInterval int

	// MaxInterval caps every interval, in days, so due dates stay within the
	// range time.Time can encode as JSON.
	MaxInterval int

	// DailyHistoryDays caps the number of study days kept in the stats history.
	DailyHistoryDays int

	// Location decides calendar-day boundaries for due dates and daily stats.
	Location *time.Location
}

// ParamsConfig allows overriding the default parameters when creating a new Params instance.
// Zero values keep the default.
type ParamsConfig struct {
	MinEaseFactor    float64
	FirstInterval    int
	SecondInterval   int
	MaxInterval      int
	DailyHistoryDays int
	Location         *time.Location
}

// NewDefaultParams creates a new Params instance with default values
func NewDefaultParams() *Params {
	return &Params{
		MinEaseFactor:    1.3,
		FirstInterval:    1,
		SecondInterval:   6,
		MaxInterval:      36500,
		DailyHistoryDays: 30,
		Location:         time.UTC,
	}
}

// NewParams creates a new Params instance with custom values, falling back to
// defaults for unset fields.
func NewParams(config ParamsConfig) *Params {
	params := NewDefaultParams()

	if config.MinEaseFactor > 0 {
		params.MinEaseFactor = config.MinEaseFactor
	}
	if config.FirstInterval > 0 {
		params.FirstInterval = config.FirstInterval
	}
	if config.SecondInterval > 0 {
		params.SecondInterval = config.SecondInterval
	}
	if config.MaxInterval > 0 {
		params.MaxInterval = config.MaxInterval
	}
	if config.DailyHistoryDays > 0 {
		params.DailyHistoryDays = config.DailyHistoryDays
	}
	if config.Location != nil {
		params.Location = config.Location
	}

	return params
}
