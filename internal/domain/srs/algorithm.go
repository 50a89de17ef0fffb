package srs

import (
	"math"
	"time"

	"github.com/phrazzld/scry-decks/internal/domain"
)

// calculateNewEaseFactor adjusts the ease factor from the quality grade.
//
// The adjustment scales with how far the grade is from a perfect recall (5 on
// the classic SM-2 scale), independent of whether the grade passes:
//
//	ease' = ease + (0.1 - (5-q) * (0.08 + (5-q) * 0.02))
//
// so "easy" (4) keeps the ease, "good" (3) lowers it by 0.14, "hard" (2) by 0.32
// and "again" (1) by 0.54. The result never drops below params.MinEaseFactor.
func calculateNewEaseFactor(currentEF float64, quality domain.ReviewQuality, params *Params) float64 {
	d := float64(5 - quality)
	newEF := currentEF + (0.1 - d*(0.08+d*0.02))

	return math.Max(params.MinEaseFactor, newEF)
}

// calculateNewInterval determines the new interval in days and the new
// repetition streak.
//
// A passing grade grows the interval: the first pass schedules the card
// params.FirstInterval days out, the second params.SecondInterval days, and
// every later pass multiplies the previous interval by the previous ease factor.
// A failing grade resets both the interval and the streak to zero.
func calculateNewInterval(
	currentInterval int,
	repetitions int,
	easeFactor float64,
	quality domain.ReviewQuality,
	params *Params,
) (interval int, newRepetitions int) {
	if !quality.IsPass() {
		return 0, 0
	}

	switch repetitions {
	case 0:
		interval = params.FirstInterval
	case 1:
		interval = params.SecondInterval
	default:
		interval = int(math.Round(math.Min(float64(currentInterval)*easeFactor, float64(params.MaxInterval))))
	}
	interval = min(interval, params.MaxInterval)

	return interval, repetitions + 1
}

// calculateNextReviewDate adds interval calendar days to now.
//
// Days are added on the calendar of params.Location, so month and year
// rollovers and DST transitions keep the wall-clock time of the review. An
// interval of zero makes the card due at the review instant itself.
func calculateNextReviewDate(interval int, now time.Time, params *Params) time.Time {
	if interval == 0 {
		return now
	}
	return now.In(params.Location).AddDate(0, 0, interval).In(now.Location())
}

// calculateNextSchedule returns a copy of card rescheduled after a review with
// the given quality. The input card is never modified.
func calculateNextSchedule(
	card *domain.Card,
	quality domain.ReviewQuality,
	now time.Time,
	params *Params,
) *domain.Card {
	next := *card

	reviewed := now
	next.LastReviewed = &reviewed

	// The interval uses the ease factor from before this review.
	next.Interval, next.Repetitions = calculateNewInterval(
		card.Interval,
		card.Repetitions,
		card.Ease,
		quality,
		params,
	)
	next.Ease = calculateNewEaseFactor(card.Ease, quality, params)
	next.DueDate = calculateNextReviewDate(next.Interval, now, params)

	return &next
}
