// Package analyzer drives the scoring pipeline for one signal bundle.
package analyzer

import (
	"context"
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/beydemirfurkan/seo-analyze/internal/config"
	"github.com/beydemirfurkan/seo-analyze/internal/metrics"
	"github.com/beydemirfurkan/seo-analyze/internal/normalize"
	"github.com/beydemirfurkan/seo-analyze/internal/recommend"
	"github.com/beydemirfurkan/seo-analyze/internal/score"
	"github.com/beydemirfurkan/seo-analyze/internal/seo"
)

// Pipeline runs normalize, parallel category scoring, aggregation, and
// recommendation ranking for one bundle at a time.
type Pipeline struct {
	cfg    config.Config
	engine *recommend.Engine
	clock  seo.Clock
	logger *zap.Logger
}

// New constructs a Pipeline. insight may be nil; enrichment is then skipped.
func New(cfg config.Config, insight seo.InsightGenerator, clock seo.Clock, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	topN := 0
	if cfg.Enrichment.Enabled {
		topN = cfg.Enrichment.TopN
	}
	return &Pipeline{
		cfg:    cfg,
		engine: recommend.New(insight, topN, cfg.EnrichmentTimeout(), logger),
		clock:  clock,
		logger: logger,
	}
}

// Analyze scores the raw bundle and returns the finalized Report. Scorers
// are pure and independent, so they run concurrently; results land in a
// fixed slot per category, keeping the report deterministic regardless of
// completion order. onProgress, when non-nil, receives a monotonically
// increasing percentage as categories finish.
func (p *Pipeline) Analyze(ctx context.Context, raw seo.SignalBundle, onProgress func(percent int)) (seo.Report, error) {
	bundle := normalize.Bundle(raw, p.cfg.Analyzer)

	scorers := score.All()
	results := make([]seo.CategoryScore, len(scorers))
	var done atomic.Int32

	g, _ := errgroup.WithContext(ctx)
	for i, s := range scorers {
		g.Go(func() error {
			results[i] = s.Run(bundle, p.cfg.Thresholds)
			for _, f := range results[i].Findings {
				if f.Code == score.CodeScorerFault {
					metrics.ScorerFaultsTotal.WithLabelValues(string(s.Category)).Inc()
					p.logger.Error("scorer fault isolated",
						zap.String("category", string(s.Category)),
						zap.String("message", f.Message),
					)
				}
			}
			if onProgress != nil {
				n := int(done.Add(1))
				onProgress(n * 100 / len(scorers))
			}
			return nil
		})
	}
	// Fan-in join: scorers never return errors (faults are isolated), so
	// Wait only synchronizes completion.
	_ = g.Wait()

	overall, err := score.Aggregate(results, p.cfg.Weight)
	if err != nil {
		return seo.Report{}, fmt.Errorf("aggregate scores for %s: %w", raw.URL, err)
	}

	return seo.Report{
		URL:             bundle.URL,
		Domain:          bundle.Domain,
		Categories:      results,
		OverallScore:    overall,
		Band:            p.cfg.BandFor(overall),
		Recommendations: p.engine.Rank(ctx, results),
		GeneratedAt:     p.clock.Now(),
	}, nil
}
