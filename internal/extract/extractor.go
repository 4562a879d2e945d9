package extract

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/beydemirfurkan/seo-analyze/internal/seo"
)

// pageFetcher downloads one page; satisfied by *Fetcher and test fakes.
type pageFetcher interface {
	Fetch(ctx context.Context, domain string) (fetchResult, error)
}

// Extractor resolves an analysis request to a raw signal bundle.
type Extractor struct {
	fetcher pageFetcher
	logger  *zap.Logger
}

// New builds an Extractor around a Fetcher.
func New(fetcher *Fetcher, logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{fetcher: fetcher, logger: logger}
}

// Extract fetches the requested domain and parses its markup into signals.
// The target keyword rides along on the bundle so scorers can use it without
// seeing the request.
func (e *Extractor) Extract(ctx context.Context, req seo.AnalysisRequest) (seo.SignalBundle, error) {
	if req.Domain == "" {
		return seo.SignalBundle{}, fmt.Errorf("domain is required")
	}

	page, err := e.fetcher.Fetch(ctx, req.Domain)
	if err != nil {
		return seo.SignalBundle{}, err
	}
	e.logger.Debug("page fetched",
		zap.String("domain", req.Domain),
		zap.String("url", page.URL),
		zap.Int("bytes", len(page.Body)),
	)

	bundle, err := ParsePage(page.URL, page.Body)
	if err != nil {
		return seo.SignalBundle{}, fmt.Errorf("parse %s: %w", page.URL, err)
	}
	bundle.TargetKeyword = req.TargetKeyword
	return bundle, nil
}
