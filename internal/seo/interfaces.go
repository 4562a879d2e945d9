package seo

import (
	"context"
	"time"
)

// JobStore persists job records and finalized reports. Implementations must
// apply every mutation atomically, reject transitions out of a terminal
// status, and never let Progress regress.
type JobStore interface {
	CreateJob(ctx context.Context, job Job) error
	SetRunning(ctx context.Context, jobID string) error
	SetProgress(ctx context.Context, jobID string, progress int) error
	Complete(ctx context.Context, jobID string, report Report) error
	Fail(ctx context.Context, jobID string, errText string) error
	GetJob(ctx context.Context, jobID string) (Job, error)
	// GetReport returns ErrResultNotReady for a known but unfinished job and
	// ErrJobNotFound for an unknown id.
	GetReport(ctx context.Context, jobID string) (Report, error)
	ListJobs(ctx context.Context) ([]Job, error)
	DeleteExpired(ctx context.Context, cutoff time.Time) (int, error)
}

// Queue provides enqueue/dequeue semantics for analysis jobs.
type Queue interface {
	Enqueue(ctx context.Context, item QueueItem) error
	Dequeue(ctx context.Context) (QueueItem, error)
}

// Extractor resolves a domain to a raw signal bundle.
type Extractor interface {
	Extract(ctx context.Context, req AnalysisRequest) (SignalBundle, error)
}

// InsightGenerator elaborates a finding with natural-language advice. Callers
// treat it as best-effort: any error or timeout drops the enrichment only.
type InsightGenerator interface {
	Elaborate(ctx context.Context, finding Finding) (string, error)
}

// Publisher pushes completion events to Pub/Sub (or similar).
type Publisher interface {
	Publish(ctx context.Context, topic string, payload any) (string, error)
}

// BlobStore writes report artifacts and returns a URI.
type BlobStore interface {
	PutObject(ctx context.Context, path string, contentType string, data []byte) (string, error)
}

// IDGenerator produces job IDs (UUIDs).
type IDGenerator interface {
	NewID() (string, error)
}

// Clock returns the current time (useful for testing).
type Clock interface {
	Now() time.Time
}
