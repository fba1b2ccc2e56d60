package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/certkit/copyright-extractor/internal/entity"
)

type CertificateRecordRepository interface {
	InsertAll(ctx context.Context, jobID, fileID uuid.UUID, recs []entity.CertificateRecord) error
	ListByFile(ctx context.Context, fileID uuid.UUID) ([]entity.CertificateRecord, error)
}

type certificateRecordRepo struct {
	db  *sql.DB
	log *slog.Logger
}

func NewCertificateRecordRepository(db *sql.DB, log *slog.Logger) CertificateRecordRepository {
	if log == nil {
		log = slog.Default()
	}
	return &certificateRecordRepo{db: db, log: log}
}

func (r *certificateRecordRepo) InsertAll(ctx context.Context, jobID, fileID uuid.UUID, recs []entity.CertificateRecord) error {
	if len(recs) == 0 {
		return nil
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin records tx: %w", err)
	}
	now := time.Now().UTC()
	for _, rec := range recs {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO certificate_records
			 (id, job_id, file_id, serial_number, owner, software_name, publication_date, acquisition, rights_scope, registration, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			uuid.New().String(), jobID.String(), fileID.String(),
			rec.SerialNumber, rec.Owner, rec.SoftwareName, rec.PublicationDate,
			rec.AcquisitionMethod, rec.RightsScope, rec.RegistrationNumber, now)
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert certificate record: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit records: %w", err)
	}
	r.log.Debug("journaled certificate records", "job_id", jobID, "count", len(recs))
	return nil
}

func (r *certificateRecordRepo) ListByFile(ctx context.Context, fileID uuid.UUID) ([]entity.CertificateRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT serial_number, owner, software_name, publication_date, acquisition, rights_scope, registration
		 FROM certificate_records WHERE file_id = ? ORDER BY created_at, rowid`, fileID.String())
	if err != nil {
		return nil, fmt.Errorf("list records for file %s: %w", fileID, err)
	}
	defer func() { _ = rows.Close() }()

	var out []entity.CertificateRecord
	for rows.Next() {
		var rec entity.CertificateRecord
		if err := rows.Scan(&rec.SerialNumber, &rec.Owner, &rec.SoftwareName,
			&rec.PublicationDate, &rec.AcquisitionMethod, &rec.RightsScope, &rec.RegistrationNumber); err != nil {
			return nil, fmt.Errorf("scan certificate record: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
