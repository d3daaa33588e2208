// Package scoring computes the derived applicant score from skill ratings.
package scoring

import (
	"errors"
	"fmt"
	"math"

	"github.com/LeifStrom/hiring/internal/domain/model"
)

// Rating domain bounds.
const (
	MinRating = 1
	MaxRating = 10
)

// ErrRatingRange marks a rating outside the [MinRating, MaxRating] domain.
var ErrRatingRange = errors.New("rating out of range")

// Score returns the arithmetic mean of all seven ratings, rounded to two
// decimal places. Every rating must be inside the valid domain; out-of-range
// values are rejected, never clamped.
func Score(r model.Ratings) (float64, error) {
	sum := 0
	for i, v := range r.Values() {
		if v < MinRating || v > MaxRating {
			return 0, fmt.Errorf("%w: skill %d has rating %d", ErrRatingRange, i+1, v)
		}
		sum += v
	}
	return round2(float64(sum) / model.SkillCount), nil
}

// Recorded returns the display score over the subset of ratings that have
// been set (non-zero). Unrated applicants score 0. This mirrors how scores
// already present in the sheet were produced, so freshly loaded rows render
// consistently even when only some skills are rated.
func Recorded(r model.Ratings) float64 {
	sum, n := 0, 0
	for _, v := range r.Values() {
		if v > 0 {
			sum += v
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return round2(float64(sum) / float64(n))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
