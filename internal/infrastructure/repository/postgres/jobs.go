package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ArbaazShaikh07/Ecomlytics/internal/core/domain"
)

type UploadJobRepository struct {
	db *sql.DB
}

func NewUploadJobRepository(db *sql.DB) *UploadJobRepository {
	return &UploadJobRepository{db: db}
}

func (r *UploadJobRepository) Create(ctx context.Context, job *domain.UploadJob) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO upload_jobs (id, dataset, record_count, status, error_message, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7)
`, job.ID, string(job.Dataset), job.RecordCount, string(job.Status), job.Error, job.CreatedAt, job.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert upload job: %w", err)
	}
	return nil
}

func (r *UploadJobRepository) GetByID(ctx context.Context, id string) (*domain.UploadJob, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, dataset, record_count, status, error_message, created_at, updated_at
FROM upload_jobs
WHERE id = $1
`, id)

	var job domain.UploadJob
	var dataset, status string

	err := row.Scan(&job.ID, &dataset, &job.RecordCount, &status, &job.Error, &job.CreatedAt, &job.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrNotFound, "get upload job", fmt.Errorf("id=%s", id))
		}
		return nil, fmt.Errorf("scan upload job: %w", err)
	}

	job.Dataset = domain.Dataset(dataset)
	job.Status = domain.JobStatus(status)
	return &job, nil
}

func (r *UploadJobRepository) UpdateStatus(ctx context.Context, id string, status domain.JobStatus, errMessage string) error {
	_, err := r.db.ExecContext(ctx, `
UPDATE upload_jobs
SET status = $2, error_message = $3, updated_at = $4
WHERE id = $1
`, id, string(status), errMessage, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update upload job status: %w", err)
	}
	return nil
}
