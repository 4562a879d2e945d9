// Package memory provides in-memory store implementations.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/beydemirfurkan/seo-analyze/internal/seo"
)

// JobStore keeps job records and finalized reports in memory. All lifecycle
// transitions are applied under one lock, so readers never observe a
// half-applied state, and terminal jobs are immutable until evicted.
type JobStore struct {
	mu      sync.RWMutex
	jobs    map[string]seo.Job
	reports map[string]seo.Report
	clock   seo.Clock
}

// NewJobStore constructs a JobStore.
func NewJobStore(clock seo.Clock) *JobStore {
	return &JobStore{
		jobs:    make(map[string]seo.Job),
		reports: make(map[string]seo.Report),
		clock:   clock,
	}
}

// CreateJob stores a new job in pending status.
func (s *JobStore) CreateJob(_ context.Context, job seo.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.jobs[job.ID]; exists {
		return seo.ErrJobExists
	}
	s.jobs[job.ID] = job
	return nil
}

// SetRunning transitions a pending job to running.
func (s *JobStore) SetRunning(_ context.Context, jobID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	job, err := s.mutable(jobID)
	if err != nil {
		return err
	}
	now := s.clock.Now()
	job.Status = seo.JobStatusRunning
	job.Updated = now
	if job.Started == nil {
		started := now
		job.Started = &started
	}
	s.jobs[jobID] = job
	return nil
}

// SetProgress raises the job's progress. Progress is monotonic: a lower
// value than the current one is ignored, never an error, so concurrent
// scorer completions cannot make it regress.
func (s *JobStore) SetProgress(_ context.Context, jobID string, progress int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	job, err := s.mutable(jobID)
	if err != nil {
		return err
	}
	if progress > 100 {
		progress = 100
	}
	if progress <= job.Progress {
		return nil
	}
	job.Progress = progress
	job.Updated = s.clock.Now()
	s.jobs[jobID] = job
	return nil
}

// Complete finalizes a job with its report.
func (s *JobStore) Complete(_ context.Context, jobID string, report seo.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	job, err := s.mutable(jobID)
	if err != nil {
		return err
	}
	now := s.clock.Now()
	job.Status = seo.JobStatusCompleted
	job.Progress = 100
	job.Updated = now
	job.Finished = &now
	s.jobs[jobID] = job
	s.reports[jobID] = report
	return nil
}

// Fail finalizes a job with an error message.
func (s *JobStore) Fail(_ context.Context, jobID string, errText string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	job, err := s.mutable(jobID)
	if err != nil {
		return err
	}
	now := s.clock.Now()
	job.Status = seo.JobStatusFailed
	job.ErrorText = errText
	job.Updated = now
	job.Finished = &now
	s.jobs[jobID] = job
	return nil
}

// GetJob fetches a job by ID.
func (s *JobStore) GetJob(_ context.Context, jobID string) (seo.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	job, ok := s.jobs[jobID]
	if !ok {
		return seo.Job{}, seo.ErrJobNotFound
	}
	return job, nil
}

// GetReport returns the finalized report. Unknown ids and unfinished jobs
// are distinguishable outcomes.
func (s *JobStore) GetReport(_ context.Context, jobID string) (seo.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	job, ok := s.jobs[jobID]
	if !ok {
		return seo.Report{}, seo.ErrJobNotFound
	}
	if job.Status != seo.JobStatusCompleted {
		return seo.Report{}, seo.ErrResultNotReady
	}
	return s.reports[jobID], nil
}

// ListJobs returns all known jobs, oldest first.
func (s *JobStore) ListJobs(_ context.Context) ([]seo.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]seo.Job, 0, len(s.jobs))
	for _, job := range s.jobs {
		out = append(out, job)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Submitted.Equal(out[j].Submitted) {
			return out[i].Submitted.Before(out[j].Submitted)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// DeleteExpired evicts terminal jobs that finished before the cutoff and
// returns how many were removed. Running and pending jobs are never evicted.
func (s *JobStore) DeleteExpired(_ context.Context, cutoff time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, job := range s.jobs {
		if !job.Status.Terminal() || job.Finished == nil || !job.Finished.Before(cutoff) {
			continue
		}
		delete(s.jobs, id)
		delete(s.reports, id)
		removed++
	}
	return removed, nil
}

// mutable returns the job when it can still transition.
func (s *JobStore) mutable(jobID string) (seo.Job, error) {
	job, ok := s.jobs[jobID]
	if !ok {
		return seo.Job{}, seo.ErrJobNotFound
	}
	if job.Status.Terminal() {
		return seo.Job{}, seo.ErrJobTerminal
	}
	return job, nil
}
