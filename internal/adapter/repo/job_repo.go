package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"adcraft/internal/domain"
)

// DBTX is the subset of pgxpool.Pool used by the Postgres repositories.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// JobsSchema creates the table backing JobRepositoryPG.
const JobsSchema = `
CREATE TABLE IF NOT EXISTS ad_jobs (
    id            TEXT PRIMARY KEY,
    status        TEXT NOT NULL,
    request       JSONB NOT NULL,
    result        JSONB,
    error_message TEXT NOT NULL DEFAULT '',
    created_at    TIMESTAMPTZ NOT NULL,
    updated_at    TIMESTAMPTZ NOT NULL
);
`

// JobRepositoryPG implements domain.JobRepository.
type JobRepositoryPG struct {
	db DBTX
}

// NewJobRepository creates a new job repository backed by PostgreSQL.
func NewJobRepository(db DBTX) *JobRepositoryPG {
	return &JobRepositoryPG{db: db}
}

// EnsureSchema creates the jobs table when missing.
func (r *JobRepositoryPG) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, JobsSchema); err != nil {
		return fmt.Errorf("ensure ad_jobs schema: %w", err)
	}
	return nil
}

// Create inserts a new job record.
func (r *JobRepositoryPG) Create(ctx context.Context, job *domain.Job) error {
	request, err := json.Marshal(job.Request)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	result, err := marshalResult(job.Result)
	if err != nil {
		return err
	}
	query := `
INSERT INTO ad_jobs (id, status, request, result, error_message, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (id) DO NOTHING;
`
	tag, err := r.db.Exec(ctx, query,
		job.ID,
		string(job.Status),
		request,
		result,
		job.Error,
		job.CreatedAt,
		job.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrDuplicateJob
	}
	return nil
}

// Update writes the job state while it is still processing.
func (r *JobRepositoryPG) Update(ctx context.Context, job *domain.Job) error {
	result, err := marshalResult(job.Result)
	if err != nil {
		return err
	}
	query := `
UPDATE ad_jobs
SET status = $2,
    result = $3,
    error_message = $4,
    updated_at = $5
WHERE id = $1 AND status = 'processing';
`
	tag, err := r.db.Exec(ctx, query, job.ID, string(job.Status), result, job.Error, job.UpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() > 0 {
		return nil
	}
	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM ad_jobs WHERE id = $1);`, job.ID).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return domain.ErrNotFound
	}
	return domain.ErrJobFinalized
}

// Get fetches a job by its identifier.
func (r *JobRepositoryPG) Get(ctx context.Context, jobID string) (*domain.Job, error) {
	query := `
SELECT id, status, request, result, error_message, created_at, updated_at
FROM ad_jobs
WHERE id = $1;
`
	row := r.db.QueryRow(ctx, query, jobID)
	var (
		job     domain.Job
		status  string
		request []byte
		result  []byte
	)
	if err := row.Scan(
		&job.ID,
		&status,
		&request,
		&result,
		&job.Error,
		&job.CreatedAt,
		&job.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	job.Status = domain.JobStatus(status)
	if err := json.Unmarshal(request, &job.Request); err != nil {
		return nil, fmt.Errorf("decode request of job %s: %w", jobID, err)
	}
	if len(result) > 0 {
		var res domain.AdResult
		if err := json.Unmarshal(result, &res); err != nil {
			return nil, fmt.Errorf("decode result of job %s: %w", jobID, err)
		}
		job.Result = &res
	}
	return &job, nil
}

func marshalResult(res *domain.AdResult) ([]byte, error) {
	if res == nil {
		return nil, nil
	}
	data, err := json.Marshal(res)
	if err != nil {
		return nil, fmt.Errorf("encode result: %w", err)
	}
	return data, nil
}

var _ domain.JobRepository = (*JobRepositoryPG)(nil)
