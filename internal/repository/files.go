package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/certkit/copyright-extractor/internal/entity"
)

type SourceFileRepository interface {
	// UpsertByHash registers a file by content hash. The second return value
	// reports deduplication: true when the same content was seen before.
	UpsertByHash(ctx context.Context, path, ext string, hash []byte, now time.Time) (*entity.SourceFile, bool, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.SourceFile, error)
}

type sourceFileRepo struct {
	db  *sql.DB
	log *slog.Logger
}

func NewSourceFileRepository(db *sql.DB, log *slog.Logger) SourceFileRepository {
	if log == nil {
		log = slog.Default()
	}
	return &sourceFileRepo{db: db, log: log}
}

func (r *sourceFileRepo) UpsertByHash(ctx context.Context, path, ext string, hash []byte, now time.Time) (*entity.SourceFile, bool, error) {
	var existing entity.SourceFile
	var idStr string
	err := r.db.QueryRowContext(ctx,
		`SELECT id, source_path, file_ext, uploaded_at FROM source_files WHERE content_hash = ?`, hash).
		Scan(&idStr, &existing.SourcePath, &existing.FileExt, &existing.UploadedAt)
	switch {
	case err == nil:
		existing.ID, err = uuid.Parse(idStr)
		if err != nil {
			return nil, false, fmt.Errorf("corrupt file id %q: %w", idStr, err)
		}
		existing.ContentHash = hash
		r.log.Debug("source file deduplicated", "file_id", existing.ID, "path", path)
		return &existing, true, nil
	case errors.Is(err, sql.ErrNoRows):
		// fall through to insert
	default:
		return nil, false, fmt.Errorf("lookup source file: %w", err)
	}

	row := &entity.SourceFile{
		ID:          uuid.New(),
		SourcePath:  path,
		FileExt:     ext,
		ContentHash: hash,
		UploadedAt:  now,
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO source_files (id, source_path, file_ext, content_hash, uploaded_at) VALUES (?, ?, ?, ?, ?)`,
		row.ID.String(), row.SourcePath, row.FileExt, row.ContentHash, row.UploadedAt)
	if err != nil {
		return nil, false, fmt.Errorf("insert source file: %w", err)
	}
	return row, false, nil
}

func (r *sourceFileRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.SourceFile, error) {
	var row entity.SourceFile
	var idStr string
	err := r.db.QueryRowContext(ctx,
		`SELECT id, source_path, file_ext, content_hash, uploaded_at FROM source_files WHERE id = ?`, id.String()).
		Scan(&idStr, &row.SourcePath, &row.FileExt, &row.ContentHash, &row.UploadedAt)
	if err != nil {
		return nil, fmt.Errorf("get source file %s: %w", id, err)
	}
	row.ID = id
	return &row, nil
}
