// Package score implements the per-category SEO scorers and the aggregator.
//
// Every scorer is a pure, deterministic function of (bundle, thresholds):
// identical inputs always yield the identical CategoryScore. Scorers never
// read each other's output, so they can run concurrently in any order.
package score

import (
	"fmt"

	"github.com/beydemirfurkan/seo-analyze/internal/config"
	"github.com/beydemirfurkan/seo-analyze/internal/seo"
)

// CodeScorerFault is the finding code attached when a scorer panics.
const CodeScorerFault = "scorer_fault"

// Scorer binds a category to its scoring function.
type Scorer struct {
	Category seo.Category
	fn       func(seo.SignalBundle, config.ThresholdConfig) (int, []seo.Finding)
}

// All returns every scorer in the declared category order.
func All() []Scorer {
	return []Scorer{
		{seo.CategoryTitle, scoreTitle},
		{seo.CategoryMeta, scoreMeta},
		{seo.CategoryHeadings, scoreHeadings},
		{seo.CategoryContent, scoreContent},
		{seo.CategoryImages, scoreImages},
		{seo.CategoryLinks, scoreLinks},
		{seo.CategoryMobile, scoreMobile},
		{seo.CategoryAccessibility, scoreAccessibility},
		{seo.CategorySocial, scoreSocial},
		{seo.CategoryStructuredData, scoreStructuredData},
	}
}

// Run evaluates the scorer with fault isolation: a panic never crosses the
// scorer boundary, it becomes a zero score plus one critical finding so
// sibling scorers keep running.
func (s Scorer) Run(bundle seo.SignalBundle, t config.ThresholdConfig) (cs seo.CategoryScore) {
	defer func() {
		if r := recover(); r != nil {
			cs = seo.CategoryScore{
				Category: s.Category,
				Score:    0,
				Findings: []seo.Finding{{
					Category: s.Category,
					Code:     CodeScorerFault,
					Severity: seo.SeverityCritical,
					Message:  fmt.Sprintf("%s scorer failed: %v", s.Category, r),
				}},
			}
		}
	}()
	score, findings := s.fn(bundle, t)
	return seo.CategoryScore{
		Category: s.Category,
		Score:    clamp(score),
		Findings: findings,
	}
}

func clamp(n int) int {
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}

func finding(cat seo.Category, code string, sev seo.Severity, msg string) seo.Finding {
	return seo.Finding{Category: cat, Code: code, Severity: sev, Message: msg}
}

// lengthWindowScore is the shared piecewise length scheme: full score inside
// [min,max], linear decay per character outside, floored at zero.
func lengthWindowScore(length, min, max, decayPerChar int) int {
	switch {
	case length < min:
		return clamp(100 - decayPerChar*(min-length))
	case length > max:
		return clamp(100 - decayPerChar*(length-max))
	default:
		return 100
	}
}
