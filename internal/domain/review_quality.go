package domain

import "fmt"

// ReviewQuality is the recall grade a user gives a card after reviewing it.
type ReviewQuality int

// Possible review grades.
const (
	QualityAgain ReviewQuality = 1
	QualityHard  ReviewQuality = 2
	QualityGood  ReviewQuality = 3
	QualityEasy  ReviewQuality = 4
)

// IsValid reports whether q is one of the four grades.
func (q ReviewQuality) IsValid() bool {
	return q >= QualityAgain && q <= QualityEasy
}

// IsPass reports whether q counts as successful recall.
func (q ReviewQuality) IsPass() bool {
	return q >= QualityGood
}

func (q ReviewQuality) String() string {
	switch q {
	case QualityAgain:
		return "again"
	case QualityHard:
		return "hard"
	case QualityGood:
		return "good"
	case QualityEasy:
		return "easy"
	default:
		return fmt.Sprintf("quality(%d)", int(q))
	}
}
