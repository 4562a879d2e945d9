// Package recommend turns raw scorer findings into a ranked action list.
package recommend

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/beydemirfurkan/seo-analyze/internal/metrics"
	"github.com/beydemirfurkan/seo-analyze/internal/seo"
)

// Engine deduplicates, prioritizes, and optionally enriches findings.
type Engine struct {
	insight seo.InsightGenerator
	topN    int
	timeout time.Duration
	logger  *zap.Logger
	rank    map[seo.Category]int
}

// New creates an Engine. insight may be nil to disable enrichment entirely.
func New(insight seo.InsightGenerator, topN int, timeout time.Duration, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	rank := make(map[seo.Category]int, len(seo.Categories()))
	for i, c := range seo.Categories() {
		rank[c] = i
	}
	return &Engine{
		insight: insight,
		topN:    topN,
		timeout: timeout,
		logger:  logger,
		rank:    rank,
	}
}

// Rank produces the final recommendation list: findings deduplicated on
// {category, code} (first occurrence wins, in category-scorer order), sorted
// by severity then category priority, with the top N enriched best-effort.
// The scores slice must be in the declared category order for the
// deduplication to be deterministic.
func (e *Engine) Rank(ctx context.Context, scores []seo.CategoryScore) []seo.Finding {
	type key struct {
		cat  seo.Category
		code string
	}
	seen := make(map[key]struct{})
	findings := make([]seo.Finding, 0)
	for _, cs := range scores {
		for _, f := range cs.Findings {
			k := key{f.Category, f.Code}
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			findings = append(findings, f)
		}
	}

	sort.SliceStable(findings, func(i, j int) bool {
		if findings[i].Severity.Rank() != findings[j].Severity.Rank() {
			return findings[i].Severity.Rank() > findings[j].Severity.Rank()
		}
		return e.rank[findings[i].Category] < e.rank[findings[j].Category]
	})

	e.enrich(ctx, findings)
	return findings
}

// enrich asks the insight generator to elaborate the top findings. Every
// call is bounded by the configured timeout; a failure leaves the finding's
// message unchanged and never propagates.
func (e *Engine) enrich(ctx context.Context, findings []seo.Finding) {
	if e.insight == nil || e.topN <= 0 {
		return
	}
	n := e.topN
	if n > len(findings) {
		n = len(findings)
	}
	for i := 0; i < n; i++ {
		callCtx, cancel := context.WithTimeout(ctx, e.timeout)
		detail, err := e.insight.Elaborate(callCtx, findings[i])
		cancel()
		if err != nil {
			metrics.EnrichmentFailuresTotal.Inc()
			e.logger.Warn("insight enrichment failed",
				zap.String("category", string(findings[i].Category)),
				zap.String("code", findings[i].Code),
				zap.Error(err),
			)
			continue
		}
		if detail != "" {
			findings[i].Detail = detail
		}
	}
}
