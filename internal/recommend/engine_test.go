package recommend

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/beydemirfurkan/seo-analyze/internal/seo"
)

type fakeInsight struct {
	detail string
	err    error
	calls  []seo.Finding
	delay  time.Duration
}

func (f *fakeInsight) Elaborate(ctx context.Context, finding seo.Finding) (string, error) {
	f.calls = append(f.calls, finding)
	if f.delay > 0 {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(f.delay):
		}
	}
	return f.detail, f.err
}

func scoreWith(cat seo.Category, findings ...seo.Finding) seo.CategoryScore {
	return seo.CategoryScore{Category: cat, Score: 50, Findings: findings}
}

func f(cat seo.Category, code string, sev seo.Severity) seo.Finding {
	return seo.Finding{Category: cat, Code: code, Severity: sev, Message: code}
}

func TestRankSortsBySeverityThenCategoryPriority(t *testing.T) {
	e := New(nil, 0, time.Second, zap.NewNop())

	scores := []seo.CategoryScore{
		scoreWith(seo.CategoryTitle, f(seo.CategoryTitle, "title_too_short", seo.SeverityWarning)),
		scoreWith(seo.CategoryMeta, f(seo.CategoryMeta, "meta_description_missing", seo.SeverityCritical)),
		scoreWith(seo.CategoryLinks, f(seo.CategoryLinks, "links_no_external", seo.SeverityInfo)),
		scoreWith(seo.CategoryMobile, f(seo.CategoryMobile, "mobile_no_viewport", seo.SeverityCritical)),
	}

	got := e.Rank(context.Background(), scores)

	require.Len(t, got, 4)
	// Criticals first, in category priority order, then warning, then info.
	require.Equal(t, "meta_description_missing", got[0].Code)
	require.Equal(t, "mobile_no_viewport", got[1].Code)
	require.Equal(t, "title_too_short", got[2].Code)
	require.Equal(t, "links_no_external", got[3].Code)
}

func TestRankDeduplicatesFirstWins(t *testing.T) {
	e := New(nil, 0, time.Second, zap.NewNop())

	first := f(seo.CategoryImages, "images_missing_alt", seo.SeverityWarning)
	first.Message = "image \"/a.png\" has no alt text"
	second := f(seo.CategoryImages, "images_missing_alt", seo.SeverityWarning)
	second.Message = "image \"/b.png\" has no alt text"

	got := e.Rank(context.Background(), []seo.CategoryScore{
		scoreWith(seo.CategoryImages, first, second),
	})

	require.Len(t, got, 1)
	require.Equal(t, first.Message, got[0].Message)
}

func TestRankEnrichesTopN(t *testing.T) {
	insight := &fakeInsight{detail: "rewrite the tag with the primary keyword"}
	e := New(insight, 2, time.Second, zap.NewNop())

	scores := []seo.CategoryScore{
		scoreWith(seo.CategoryTitle, f(seo.CategoryTitle, "title_missing", seo.SeverityCritical)),
		scoreWith(seo.CategoryMeta, f(seo.CategoryMeta, "meta_description_missing", seo.SeverityCritical)),
		scoreWith(seo.CategoryLinks, f(seo.CategoryLinks, "links_no_external", seo.SeverityInfo)),
	}

	got := e.Rank(context.Background(), scores)

	require.Len(t, insight.calls, 2)
	require.Equal(t, insight.detail, got[0].Detail)
	require.Equal(t, insight.detail, got[1].Detail)
	require.Empty(t, got[2].Detail)
}

func TestRankEnrichmentFailureLeavesFindingIntact(t *testing.T) {
	insight := &fakeInsight{err: errors.New("quota exhausted")}
	e := New(insight, 3, time.Second, zap.NewNop())

	scores := []seo.CategoryScore{
		scoreWith(seo.CategoryTitle, f(seo.CategoryTitle, "title_missing", seo.SeverityCritical)),
	}

	got := e.Rank(context.Background(), scores)

	require.Len(t, got, 1)
	require.Equal(t, "title_missing", got[0].Message)
	require.Empty(t, got[0].Detail)
}

func TestRankEnrichmentTimeoutIsBounded(t *testing.T) {
	insight := &fakeInsight{detail: "slow", delay: 200 * time.Millisecond}
	e := New(insight, 1, 10*time.Millisecond, zap.NewNop())

	start := time.Now()
	got := e.Rank(context.Background(), []seo.CategoryScore{
		scoreWith(seo.CategoryTitle, f(seo.CategoryTitle, "title_missing", seo.SeverityCritical)),
	})

	require.Less(t, time.Since(start), 150*time.Millisecond)
	require.Empty(t, got[0].Detail)
}

func TestRankNilInsightSkipsEnrichment(t *testing.T) {
	e := New(nil, 5, time.Second, nil)

	got := e.Rank(context.Background(), []seo.CategoryScore{
		scoreWith(seo.CategoryTitle, f(seo.CategoryTitle, "title_missing", seo.SeverityCritical)),
	})

	require.Len(t, got, 1)
	require.Empty(t, got[0].Detail)
}
