// Package postgres provides Postgres-backed persistence implementations.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/beydemirfurkan/seo-analyze/internal/seo"
)

var validTableName = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// JobStoreConfig controls the Postgres connection pool used for job rows.
type JobStoreConfig struct {
	DSN             string
	Table           string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
}

type dbPool interface {
	Exec(context.Context, string, ...any) (pgconn.CommandTag, error)
	Query(context.Context, string, ...any) (pgx.Rows, error)
	QueryRow(context.Context, string, ...any) pgx.Row
	Close()
}

// JobStore persists jobs and their reports in a single Postgres table.
// Reports are stored as JSONB alongside the job row, so a completed job and
// its report survive restarts together.
type JobStore struct {
	pool  dbPool
	table string
	clock seo.Clock
}

// NewJobStore creates a Postgres-backed JobStore using the provided config.
func NewJobStore(ctx context.Context, cfg JobStoreConfig, clock seo.Clock) (*JobStore, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("database.dsn is required")
	}
	table := cfg.Table
	if table == "" {
		table = "analysis_jobs"
	}
	if !validTableName.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		poolCfg.MinConns = cfg.MinConns
	}
	if cfg.MaxConnLifetime > 0 {
		poolCfg.MaxConnLifetime = cfg.MaxConnLifetime
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return &JobStore{pool: pool, table: table, clock: clock}, nil
}

// NewJobStoreWithPool constructs a store from an existing pool (primarily for testing).
func NewJobStoreWithPool(pool dbPool, table string, clock seo.Clock) (*JobStore, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is required")
	}
	if table == "" {
		table = "analysis_jobs"
	}
	if !validTableName.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	return &JobStore{pool: pool, table: table, clock: clock}, nil
}

// Close releases the underlying pool resources.
func (s *JobStore) Close() {
	if s == nil || s.pool == nil {
		return
	}
	s.pool.Close()
}

// CreateJob inserts a new job row.
func (s *JobStore) CreateJob(ctx context.Context, job seo.Job) error {
	if job.ID == "" {
		return fmt.Errorf("job id is required")
	}
	query := fmt.Sprintf(`
INSERT INTO %s (
	id, status, progress, domain, target_keyword, submitted_at, updated_at, error_text
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
ON CONFLICT (id) DO NOTHING`, s.table)
	tag, err := s.pool.Exec(ctx, query,
		job.ID,
		string(job.Status),
		job.Progress,
		job.Request.Domain,
		job.Request.TargetKeyword,
		job.Submitted,
		job.Updated,
		job.ErrorText,
	)
	if err != nil {
		return fmt.Errorf("insert job: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return seo.ErrJobExists
	}
	return nil
}

// SetRunning transitions a pending job to running.
func (s *JobStore) SetRunning(ctx context.Context, jobID string) error {
	now := s.clock.Now()
	query := fmt.Sprintf(`
UPDATE %s SET status = $2, updated_at = $3, started_at = COALESCE(started_at, $3)
WHERE id = $1 AND status NOT IN ('completed','failed')`, s.table)
	tag, err := s.pool.Exec(ctx, query, jobID, string(seo.JobStatusRunning), now)
	if err != nil {
		return fmt.Errorf("mark job running: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return s.transitionError(ctx, jobID)
	}
	return nil
}

// SetProgress raises the job's progress. Lower values never regress the
// stored one.
func (s *JobStore) SetProgress(ctx context.Context, jobID string, progress int) error {
	if progress > 100 {
		progress = 100
	}
	query := fmt.Sprintf(`
UPDATE %s SET progress = GREATEST(progress, $2), updated_at = $3
WHERE id = $1 AND status NOT IN ('completed','failed')`, s.table)
	tag, err := s.pool.Exec(ctx, query, jobID, progress, s.clock.Now())
	if err != nil {
		return fmt.Errorf("update job progress: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return s.transitionError(ctx, jobID)
	}
	return nil
}

// Complete finalizes a job and stores its report as JSONB.
func (s *JobStore) Complete(ctx context.Context, jobID string, report seo.Report) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	now := s.clock.Now()
	query := fmt.Sprintf(`
UPDATE %s SET status = $2, progress = 100, updated_at = $3, finished_at = $3, report = $4
WHERE id = $1 AND status NOT IN ('completed','failed')`, s.table)
	tag, err := s.pool.Exec(ctx, query, jobID, string(seo.JobStatusCompleted), now, payload)
	if err != nil {
		return fmt.Errorf("complete job: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return s.transitionError(ctx, jobID)
	}
	return nil
}

// Fail finalizes a job with an error message.
func (s *JobStore) Fail(ctx context.Context, jobID string, errText string) error {
	now := s.clock.Now()
	query := fmt.Sprintf(`
UPDATE %s SET status = $2, updated_at = $3, finished_at = $3, error_text = $4
WHERE id = $1 AND status NOT IN ('completed','failed')`, s.table)
	tag, err := s.pool.Exec(ctx, query, jobID, string(seo.JobStatusFailed), now, errText)
	if err != nil {
		return fmt.Errorf("fail job: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return s.transitionError(ctx, jobID)
	}
	return nil
}

// GetJob fetches a job row by ID.
func (s *JobStore) GetJob(ctx context.Context, jobID string) (seo.Job, error) {
	query := fmt.Sprintf(`
SELECT id, status, progress, domain, target_keyword, submitted_at, updated_at,
       started_at, finished_at, error_text
FROM %s WHERE id = $1`, s.table)
	job, err := scanJob(s.pool.QueryRow(ctx, query, jobID))
	if errors.Is(err, pgx.ErrNoRows) {
		return seo.Job{}, seo.ErrJobNotFound
	}
	if err != nil {
		return seo.Job{}, fmt.Errorf("select job: %w", err)
	}
	return job, nil
}

// GetReport returns the finalized report for a completed job.
func (s *JobStore) GetReport(ctx context.Context, jobID string) (seo.Report, error) {
	query := fmt.Sprintf(`SELECT status, report FROM %s WHERE id = $1`, s.table)
	var status string
	var payload []byte
	err := s.pool.QueryRow(ctx, query, jobID).Scan(&status, &payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return seo.Report{}, seo.ErrJobNotFound
	}
	if err != nil {
		return seo.Report{}, fmt.Errorf("select report: %w", err)
	}
	if seo.JobStatus(status) != seo.JobStatusCompleted || len(payload) == 0 {
		return seo.Report{}, seo.ErrResultNotReady
	}
	var report seo.Report
	if err := json.Unmarshal(payload, &report); err != nil {
		return seo.Report{}, fmt.Errorf("unmarshal report: %w", err)
	}
	return report, nil
}

// ListJobs returns all job rows, oldest first.
func (s *JobStore) ListJobs(ctx context.Context) ([]seo.Job, error) {
	query := fmt.Sprintf(`
SELECT id, status, progress, domain, target_keyword, submitted_at, updated_at,
       started_at, finished_at, error_text
FROM %s ORDER BY submitted_at, id`, s.table)
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	var out []seo.Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}
		out = append(out, job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	return out, nil
}

// DeleteExpired removes terminal job rows that finished before the cutoff.
func (s *JobStore) DeleteExpired(ctx context.Context, cutoff time.Time) (int, error) {
	query := fmt.Sprintf(`
DELETE FROM %s WHERE status IN ('completed','failed') AND finished_at < $1`, s.table)
	tag, err := s.pool.Exec(ctx, query, cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete expired jobs: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

// transitionError decides why a lifecycle update matched no rows.
func (s *JobStore) transitionError(ctx context.Context, jobID string) error {
	query := fmt.Sprintf(`SELECT status FROM %s WHERE id = $1`, s.table)
	var status string
	err := s.pool.QueryRow(ctx, query, jobID).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return seo.ErrJobNotFound
	}
	if err != nil {
		return fmt.Errorf("select job status: %w", err)
	}
	if seo.JobStatus(status).Terminal() {
		return seo.ErrJobTerminal
	}
	return seo.ErrJobNotFound
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (seo.Job, error) {
	var job seo.Job
	var status string
	err := row.Scan(
		&job.ID,
		&status,
		&job.Progress,
		&job.Request.Domain,
		&job.Request.TargetKeyword,
		&job.Submitted,
		&job.Updated,
		&job.Started,
		&job.Finished,
		&job.ErrorText,
	)
	if err != nil {
		return seo.Job{}, err
	}
	job.Status = seo.JobStatus(status)
	return job, nil
}
