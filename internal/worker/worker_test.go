package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/beydemirfurkan/seo-analyze/internal/analyzer"
	"github.com/beydemirfurkan/seo-analyze/internal/config"
	pubmemory "github.com/beydemirfurkan/seo-analyze/internal/publisher/memory"
	qmemory "github.com/beydemirfurkan/seo-analyze/internal/queue/memory"
	"github.com/beydemirfurkan/seo-analyze/internal/seo"
	smemory "github.com/beydemirfurkan/seo-analyze/internal/storage/memory"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

type fakeExtractor struct {
	bundle seo.SignalBundle
	err    error
}

func (e *fakeExtractor) Extract(_ context.Context, _ seo.AnalysisRequest) (seo.SignalBundle, error) {
	if e.err != nil {
		return seo.SignalBundle{}, e.err
	}
	return e.bundle, nil
}

func healthyBundle() seo.SignalBundle {
	title := "A Perfectly Sized Page Title For Search Results"
	desc := "This meta description sits comfortably inside the recommended length window " +
		"and describes the page content well enough for a search snippet to make sense."
	return seo.SignalBundle{
		URL:             "https://example.com",
		Domain:          "example.com",
		Title:           &title,
		MetaDescription: &desc,
		Language:        "en",
		Headings: []seo.Heading{
			{Level: 1, Text: "Welcome", Position: 0},
			{Level: 2, Text: "Details", Position: 1},
		},
		Images: []seo.Image{{Src: "/a.png", Alt: "diagram"}},
		Links: []seo.Link{
			{Href: "/about", Text: "about us", Internal: true},
			{Href: "https://other.org", Text: "reference", Internal: false},
		},
		Social: map[string]string{
			"og:title": "t", "og:description": "d", "og:image": "i", "twitter:card": "summary",
		},
		Structured:    []seo.StructuredBlock{{Format: "json-ld", Type: "WebPage"}},
		WordCount:     450,
		SentenceCount: 30,
		Readability:   seo.ReadabilityMetrics{FleschReadingEase: 65, AvgWordsPerSentence: 15},
		Technical: seo.TechnicalSignals{
			HasViewportMeta: true,
			HasMediaQueries: true,
			TouchElements:   2,
			IsHTTPS:         true,
		},
	}
}

func newWorkerFixture(t *testing.T, extractor seo.Extractor) (*Worker, *smemory.JobStore, *smemory.BlobStore, *pubmemory.Publisher, *qmemory.Queue) {
	t.Helper()

	cfg, err := config.Load("")
	require.NoError(t, err)

	clock := &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	jobStore := smemory.NewJobStore(clock)
	blobStore := smemory.NewBlobStore()
	publisher := pubmemory.New()
	queue := qmemory.NewQueue(4)
	pipeline := analyzer.New(cfg, nil, clock, zap.NewNop())

	w := New(
		queue,
		jobStore,
		blobStore,
		publisher,
		extractor,
		pipeline,
		clock,
		Config{BlobPrefix: "reports", Topic: "analyses"},
		zap.NewNop(),
	)
	return w, jobStore, blobStore, publisher, queue
}

func submitJob(t *testing.T, store *smemory.JobStore, queue *qmemory.Queue, id, domain string) {
	t.Helper()
	ctx := context.Background()
	err := store.CreateJob(ctx, seo.Job{
		ID:        id,
		Status:    seo.JobStatusPending,
		Request:   seo.AnalysisRequest{Domain: domain},
		Submitted: time.Now(),
	})
	require.NoError(t, err)
	require.NoError(t, queue.Enqueue(ctx, seo.QueueItem{
		JobID:   id,
		Request: seo.AnalysisRequest{Domain: domain},
	}))
}

func TestWorker_ProcessJob_SuccessFlow(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w, jobStore, blobStore, publisher, queue := newWorkerFixture(t, &fakeExtractor{bundle: healthyBundle()})
	submitJob(t, jobStore, queue, "job-success", "example.com")

	go w.Run(ctx)

	require.Eventually(t, func() bool {
		job, err := jobStore.GetJob(context.Background(), "job-success")
		return err == nil && job.Status == seo.JobStatusCompleted
	}, time.Second, 10*time.Millisecond)

	job, err := jobStore.GetJob(ctx, "job-success")
	require.NoError(t, err)
	require.Equal(t, 100, job.Progress)

	report, err := jobStore.GetReport(ctx, "job-success")
	require.NoError(t, err)
	require.Equal(t, "example.com", report.Domain)
	require.GreaterOrEqual(t, report.OverallScore, 0)
	require.LessOrEqual(t, report.OverallScore, 100)
	require.NotEmpty(t, report.Band)
	require.Len(t, report.Categories, len(seo.Categories()))

	_, ok := blobStore.Object("reports/example.com/job-success.json")
	require.True(t, ok)

	msgs := publisher.Messages()
	require.Len(t, msgs, 1)
	require.Equal(t, "analyses", msgs[0].Topic)
	cancel()
}

func TestWorker_ProcessJob_ExtractFailureMarksJobFailed(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	extractor := &fakeExtractor{err: errors.New("connection refused")}
	w, jobStore, _, publisher, queue := newWorkerFixture(t, extractor)
	submitJob(t, jobStore, queue, "job-fail", "unreachable.example")

	go w.Run(ctx)

	require.Eventually(t, func() bool {
		job, err := jobStore.GetJob(context.Background(), "job-fail")
		return err == nil && job.Status == seo.JobStatusFailed
	}, time.Second, 10*time.Millisecond)

	job, err := jobStore.GetJob(ctx, "job-fail")
	require.NoError(t, err)
	require.Contains(t, job.ErrorText, "connection refused")

	_, err = jobStore.GetReport(ctx, "job-fail")
	require.ErrorIs(t, err, seo.ErrResultNotReady)
	require.Empty(t, publisher.Messages())
	cancel()
}

func TestWorker_ProgressNeverRegresses(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w, jobStore, _, _, queue := newWorkerFixture(t, &fakeExtractor{bundle: healthyBundle()})
	submitJob(t, jobStore, queue, "job-progress", "example.com")

	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	last := 0
	require.Eventually(t, func() bool {
		job, err := jobStore.GetJob(context.Background(), "job-progress")
		if err != nil {
			return false
		}
		require.GreaterOrEqual(t, job.Progress, last)
		last = job.Progress
		return job.Status.Terminal()
	}, time.Second, time.Millisecond)

	cancel()
	<-done
}
