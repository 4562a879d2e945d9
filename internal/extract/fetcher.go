// Package extract fetches a page and distills it into the signal bundle the
// scoring pipeline consumes.
package extract

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"
	"go.uber.org/zap"
)

// FetcherConfig controls collector behavior.
type FetcherConfig struct {
	UserAgent string
	Timeout   time.Duration
}

// fetchResult is one successful page download.
type fetchResult struct {
	URL        string
	StatusCode int
	Body       []byte
}

// Fetcher downloads a single page using the Colly collector. Domains are
// probed over HTTPS first with an HTTP fallback, mirroring what browsers do
// for bare domain input.
type Fetcher struct {
	cfg           FetcherConfig
	baseCollector *colly.Collector
	logger        *zap.Logger
}

// NewFetcher builds a Fetcher.
func NewFetcher(cfg FetcherConfig, logger *zap.Logger) *Fetcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := colly.NewCollector(colly.Async(false))
	c.WithTransport(newHTTPTransport())
	return &Fetcher{
		cfg:           cfg,
		baseCollector: c,
		logger:        logger,
	}
}

// Fetch resolves a domain (or full URL) to its page body.
func (f *Fetcher) Fetch(ctx context.Context, domain string) (fetchResult, error) {
	var lastErr error
	for _, target := range candidateURLs(domain) {
		result, err := f.fetchURL(ctx, target)
		if err == nil {
			return result, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
		f.logger.Debug("fetch attempt failed",
			zap.String("url", target),
			zap.Error(err),
		)
	}
	return fetchResult{}, fmt.Errorf("fetch %s: %w", domain, lastErr)
}

// candidateURLs returns the URLs to try, in order. Explicit schemes are
// honored as-is.
func candidateURLs(domain string) []string {
	domain = strings.TrimSpace(domain)
	if strings.HasPrefix(domain, "http://") || strings.HasPrefix(domain, "https://") {
		return []string{domain}
	}
	return []string{"https://" + domain, "http://" + domain}
}

func (f *Fetcher) fetchURL(ctx context.Context, url string) (fetchResult, error) {
	var (
		result   fetchResult
		fetchErr error
	)
	collector := f.baseCollector.Clone()
	if f.cfg.UserAgent != "" {
		collector.UserAgent = f.cfg.UserAgent
	}
	timeout := f.cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	collector.SetRequestTimeout(timeout)

	collector.OnResponse(func(r *colly.Response) {
		result = fetchResult{
			URL:        r.Request.URL.String(),
			StatusCode: r.StatusCode,
			Body:       append([]byte(nil), r.Body...),
		}
	})
	collector.OnError(func(_ *colly.Response, err error) {
		fetchErr = err
	})

	done := make(chan error, 1)
	go func() {
		done <- collector.Visit(url)
	}()

	select {
	case <-ctx.Done():
		return fetchResult{}, fmt.Errorf("fetch canceled: %w", ctx.Err())
	case err := <-done:
		if err != nil {
			return fetchResult{}, fmt.Errorf("visit failed: %w", err)
		}
		if fetchErr != nil {
			return fetchResult{}, fmt.Errorf("response failed: %w", fetchErr)
		}
		if result.StatusCode >= http.StatusBadRequest {
			return fetchResult{}, fmt.Errorf("unexpected status %d", result.StatusCode)
		}
		return result, nil
	}
}

func newHTTPTransport() *http.Transport {
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout:   15 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
	}
}
