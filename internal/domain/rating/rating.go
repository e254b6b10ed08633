// Package rating folds submitted feedback into the aggregates the widget
// displays: a review count and a one-decimal average.
package rating

import (
	"fmt"
	"math"

	"github.com/cmcleod/classpulse/internal/domain/model"
)

// decimalScale keeps one digit after the decimal point.
const decimalScale = 10

// Summary captures a teacher's aggregate rating state.
type Summary struct {
	Count   int     // number of reviews
	Average float64 // mean rating rounded to one decimal; 0 with no reviews
}

// Summarize computes the Summary for one teacher's feedback list.
// The average is rounded to one decimal before it is stored, so sorting
// by rating compares exactly the numbers users see on screen.
func Summarize(entries []model.Feedback) Summary {
	if len(entries) == 0 {
		return Summary{}
	}

	sum := 0
	for _, fb := range entries {
		sum += fb.Rating
	}

	mean := float64(sum) / float64(len(entries))
	return Summary{
		Count:   len(entries),
		Average: Round(mean),
	}
}

// Round rounds a mean to one decimal place, halves away from zero.
func Round(mean float64) float64 {
	return math.Round(mean*decimalScale) / decimalScale
}

// DisplayAverage formats the average for display: always one decimal,
// "0.0" for a teacher with no reviews.
func (s Summary) DisplayAverage() string {
	return fmt.Sprintf("%.1f", s.Average)
}
