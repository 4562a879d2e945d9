package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/require"

	"github.com/beydemirfurkan/seo-analyze/internal/seo"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

func TestCreateJobInsertsRow(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Unix(1760000000, 0).UTC()
	store, err := NewJobStoreWithPool(mock, "analysis_jobs", fixedClock{now: now})
	require.NoError(t, err)

	job := seo.Job{
		ID:        "uuid-v7",
		Status:    seo.JobStatusPending,
		Request:   seo.AnalysisRequest{Domain: "example.com", TargetKeyword: "coffee"},
		Submitted: now,
		Updated:   now,
	}

	mock.ExpectExec("INSERT INTO analysis_jobs").
		WithArgs(
			job.ID,
			string(seo.JobStatusPending),
			0,
			"example.com",
			"coffee",
			now,
			now,
			"",
		).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, store.CreateJob(context.Background(), job))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateJobDuplicateID(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Unix(1760000000, 0).UTC()
	store, err := NewJobStoreWithPool(mock, "analysis_jobs", fixedClock{now: now})
	require.NoError(t, err)

	mock.ExpectExec("INSERT INTO analysis_jobs").
		WithArgs("uuid-v7", string(seo.JobStatusPending), 0, "example.com", "", now, now, "").
		WillReturnResult(pgxmock.NewResult("INSERT", 0))

	err = store.CreateJob(context.Background(), seo.Job{
		ID:        "uuid-v7",
		Status:    seo.JobStatusPending,
		Request:   seo.AnalysisRequest{Domain: "example.com"},
		Submitted: now,
		Updated:   now,
	})
	require.ErrorIs(t, err, seo.ErrJobExists)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSetProgressOnTerminalJob(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Unix(1760000000, 0).UTC()
	store, err := NewJobStoreWithPool(mock, "analysis_jobs", fixedClock{now: now})
	require.NoError(t, err)

	mock.ExpectExec("UPDATE analysis_jobs SET progress").
		WithArgs("uuid-v7", 50, now).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectQuery("SELECT status FROM analysis_jobs").
		WithArgs("uuid-v7").
		WillReturnRows(pgxmock.NewRows([]string{"status"}).AddRow("completed"))

	err = store.SetProgress(context.Background(), "uuid-v7", 50)
	require.ErrorIs(t, err, seo.ErrJobTerminal)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetReportNotReady(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store, err := NewJobStoreWithPool(mock, "analysis_jobs", fixedClock{now: time.Now()})
	require.NoError(t, err)

	mock.ExpectQuery("SELECT status, report FROM analysis_jobs").
		WithArgs("uuid-v7").
		WillReturnRows(pgxmock.NewRows([]string{"status", "report"}).AddRow("running", []byte(nil)))

	_, err = store.GetReport(context.Background(), "uuid-v7")
	require.ErrorIs(t, err, seo.ErrResultNotReady)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetReportCompleted(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store, err := NewJobStoreWithPool(mock, "analysis_jobs", fixedClock{now: time.Now()})
	require.NoError(t, err)

	payload := []byte(`{"url":"https://example.com","domain":"example.com","overall_score":88,"band":"good"}`)
	mock.ExpectQuery("SELECT status, report FROM analysis_jobs").
		WithArgs("uuid-v7").
		WillReturnRows(pgxmock.NewRows([]string{"status", "report"}).AddRow("completed", payload))

	report, err := store.GetReport(context.Background(), "uuid-v7")
	require.NoError(t, err)
	require.Equal(t, 88, report.OverallScore)
	require.Equal(t, "example.com", report.Domain)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteExpiredCountsRows(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store, err := NewJobStoreWithPool(mock, "analysis_jobs", fixedClock{now: time.Now()})
	require.NoError(t, err)

	cutoff := time.Unix(1760000000, 0).UTC()
	mock.ExpectExec("DELETE FROM analysis_jobs").
		WithArgs(cutoff).
		WillReturnResult(pgxmock.NewResult("DELETE", 3))

	removed, err := store.DeleteExpired(context.Background(), cutoff)
	require.NoError(t, err)
	require.Equal(t, 3, removed)
	require.NoError(t, mock.ExpectationsWereMet())
}
