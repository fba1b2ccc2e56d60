package repository

import (
	"context"
	"database/sql"
	"log/slog"

	_ "modernc.org/sqlite"

	"github.com/certkit/copyright-extractor/internal/common"
)

// The journal is an embedded SQLite database. It records what was processed
// and what came out; parsing output never depends on it.
const schema = `
CREATE TABLE IF NOT EXISTS source_files (
	id            TEXT PRIMARY KEY,
	source_path   TEXT NOT NULL,
	file_ext      TEXT NOT NULL,
	content_hash  BLOB NOT NULL UNIQUE,
	uploaded_at   TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS extract_jobs (
	id            TEXT PRIMARY KEY,
	file_id       TEXT NOT NULL REFERENCES source_files(id),
	format        TEXT NOT NULL,
	status        TEXT NOT NULL,
	started_at    TIMESTAMP NOT NULL,
	finished_at   TIMESTAMP,
	ocr_text      TEXT,
	method        TEXT,
	record_count  INTEGER NOT NULL DEFAULT 0,
	error_message TEXT
);

CREATE TABLE IF NOT EXISTS certificate_records (
	id              TEXT PRIMARY KEY,
	job_id          TEXT NOT NULL REFERENCES extract_jobs(id),
	file_id         TEXT NOT NULL REFERENCES source_files(id),
	serial_number   TEXT NOT NULL DEFAULT '',
	owner           TEXT NOT NULL DEFAULT '',
	software_name   TEXT NOT NULL DEFAULT '',
	publication_date TEXT NOT NULL DEFAULT '',
	acquisition     TEXT NOT NULL DEFAULT '',
	rights_scope    TEXT NOT NULL DEFAULT '',
	registration    TEXT NOT NULL DEFAULT '',
	created_at      TIMESTAMP NOT NULL
);
`

// Open opens (or creates) the journal database at path and applies the
// schema. Use ":memory:" for an ephemeral journal.
func Open(ctx context.Context, path string, logger *slog.Logger) (*sql.DB, error) {
	if logger == nil {
		logger = slog.Default()
	}
	dsn := path
	if path == ":memory:" {
		dsn = "file::memory:?cache=shared"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, common.WrapError(err, "open journal db")
	}
	// modernc sqlite serializes writes through a single connection.
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, common.WrapError(err, "apply journal schema")
	}
	logger.Info("journal database ready", "path", path)
	return db, nil
}

// Close closes the journal database gracefully.
func Close(db *sql.DB, logger *slog.Logger) {
	if db == nil {
		return
	}
	if err := db.Close(); err != nil && logger != nil {
		logger.Error("failed to close journal db", "error", err)
	}
}
