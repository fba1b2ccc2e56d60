package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/certkit/copyright-extractor/constants"
	"github.com/certkit/copyright-extractor/internal/entity"
)

type ExtractJobRepository interface {
	Start(ctx context.Context, fileID uuid.UUID, format string) (*entity.ExtractJob, error)
	FinishOCR(ctx context.Context, jobID uuid.UUID, ocrText, method string) error
	FinishParse(ctx context.Context, jobID uuid.UUID, recordCount int) error
	FinishFailure(ctx context.Context, jobID uuid.UUID, message string) error
	GetByID(ctx context.Context, jobID uuid.UUID) (*entity.ExtractJob, error)
}

type extractJobRepo struct {
	db  *sql.DB
	log *slog.Logger
}

func NewExtractJobRepository(db *sql.DB, log *slog.Logger) ExtractJobRepository {
	if log == nil {
		log = slog.Default()
	}
	return &extractJobRepo{db: db, log: log}
}

func (r *extractJobRepo) Start(ctx context.Context, fileID uuid.UUID, format string) (*entity.ExtractJob, error) {
	job := &entity.ExtractJob{
		ID:        uuid.New(),
		FileID:    fileID,
		Format:    format,
		StartedAt: time.Now().UTC(),
		Status:    string(constants.JobStatusRunning),
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO extract_jobs (id, file_id, format, status, started_at) VALUES (?, ?, ?, ?, ?)`,
		job.ID.String(), job.FileID.String(), job.Format, job.Status, job.StartedAt)
	if err != nil {
		r.log.Error("extract_job start failed", "file_id", fileID, "err", err)
		return nil, fmt.Errorf("start extract job: %w", err)
	}
	r.log.Info("extract_job started", "job_id", job.ID, "file_id", fileID, "format", format)
	return job, nil
}

func (r *extractJobRepo) FinishOCR(ctx context.Context, jobID uuid.UUID, ocrText, method string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE extract_jobs SET status = ?, ocr_text = ?, method = ?, finished_at = ? WHERE id = ?`,
		string(constants.JobStatusOCROK), ocrText, method, time.Now().UTC(), jobID.String())
	if err != nil {
		return fmt.Errorf("finish ocr stage: %w", err)
	}
	return nil
}

func (r *extractJobRepo) FinishParse(ctx context.Context, jobID uuid.UUID, recordCount int) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE extract_jobs SET status = ?, record_count = ?, finished_at = ? WHERE id = ?`,
		string(constants.JobStatusParseOK), recordCount, time.Now().UTC(), jobID.String())
	if err != nil {
		return fmt.Errorf("finish parse stage: %w", err)
	}
	return nil
}

func (r *extractJobRepo) FinishFailure(ctx context.Context, jobID uuid.UUID, message string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE extract_jobs SET status = ?, error_message = ?, finished_at = ? WHERE id = ?`,
		string(constants.JobStatusFailed), message, time.Now().UTC(), jobID.String())
	if err != nil {
		return fmt.Errorf("mark job failed: %w", err)
	}
	return nil
}

func (r *extractJobRepo) GetByID(ctx context.Context, jobID uuid.UUID) (*entity.ExtractJob, error) {
	var job entity.ExtractJob
	var idStr, fileIDStr string
	err := r.db.QueryRowContext(ctx,
		`SELECT id, file_id, format, status, started_at, finished_at, ocr_text, method, record_count, error_message
		 FROM extract_jobs WHERE id = ?`, jobID.String()).
		Scan(&idStr, &fileIDStr, &job.Format, &job.Status, &job.StartedAt,
			&job.FinishedAt, &job.OCRText, &job.Method, &job.RecordCount, &job.ErrorMessage)
	if err != nil {
		return nil, fmt.Errorf("get extract job %s: %w", jobID, err)
	}
	job.ID = jobID
	if job.FileID, err = uuid.Parse(fileIDStr); err != nil {
		return nil, fmt.Errorf("corrupt file id %q: %w", fileIDStr, err)
	}
	return &job, nil
}
