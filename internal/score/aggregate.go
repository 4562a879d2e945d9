package score

import (
	"math"

	"github.com/beydemirfurkan/seo-analyze/internal/seo"
)

// Aggregate combines category sub-scores into one overall score using the
// supplied weight lookup: round(Σ score·w / Σ w). Categories absent from the
// input are excluded from both numerator and denominator, so one
// inapplicable category never craters the aggregate. Returns
// ErrAggregationImpossible when no weighted category is present.
func Aggregate(scores []seo.CategoryScore, weight func(seo.Category) int) (int, error) {
	num, den := 0, 0
	for _, cs := range scores {
		w := weight(cs.Category)
		if w <= 0 {
			continue
		}
		num += cs.Score * w
		den += w
	}
	if den == 0 {
		return 0, seo.ErrAggregationImpossible
	}
	return int(math.Round(float64(num) / float64(den))), nil
}
