package processor

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/certkit/copyright-extractor/constants"
	"github.com/certkit/copyright-extractor/internal/common"
	"github.com/certkit/copyright-extractor/internal/entity"
	"github.com/certkit/copyright-extractor/internal/extract"
	"github.com/certkit/copyright-extractor/internal/ingest"
	"github.com/certkit/copyright-extractor/internal/parser"
	"github.com/certkit/copyright-extractor/internal/repository"
)

// Journal is the optional SQLite audit trail. All fields are set or none.
type Journal struct {
	Files   repository.SourceFileRepository
	Jobs    repository.ExtractJobRepository
	Records repository.CertificateRecordRepository
}

// Processor coordinates text acquisition then field parsing for one file.
type Processor struct {
	Logger   *slog.Logger
	Acquirer extract.TextAcquirer
	Parser   *parser.Parser
	Journal  *Journal
}

func NewProcessor(logger *slog.Logger, acquirer extract.TextAcquirer, p *parser.Parser, journal *Journal) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{Logger: logger, Acquirer: acquirer, Parser: p, Journal: journal}
}

// ProcessFile runs OCR on one certificate file and parses every page into
// records. File name and path are attached to each record for the batch
// driver. An empty OCR result and a parse that finds no key fields both
// surface as ErrValidation; OCR failures as ErrAcquisition.
func (p *Processor) ProcessFile(ctx context.Context, entry ingest.FileEntry) ([]entity.CertificateRecord, error) {
	journal := p.startJournal(ctx, entry)

	res, err := p.Acquirer.Extract(ctx, entry.Path)
	if err != nil {
		journal.fail(ctx, err)
		return nil, fmt.Errorf("acquire text from %s: %w", entry.Path, err)
	}
	p.Logger.Info("processor.ocr.ok",
		"path", entry.Path,
		"method", res.Method,
		"pages", res.Pages,
		"chars", len(res.Text),
	)
	journal.ocrDone(ctx, res)

	if strings.TrimSpace(res.Text) == "" {
		err := fmt.Errorf("no text extracted from %s: %w", entry.Path, common.ErrValidation)
		journal.fail(ctx, err)
		return nil, err
	}

	records, err := p.Parser.ParseText(res.Text)
	if err != nil {
		journal.fail(ctx, err)
		return nil, err
	}

	base := filepath.Base(entry.Path)
	for i := range records {
		records[i].FileName = base
		records[i].FilePath = entry.Path
	}
	journal.parseDone(ctx, records)

	p.Logger.Info("processor.parse.ok", "path", entry.Path, "records", len(records))
	return records, nil
}

// journalState tracks one file's journal rows; a nil receiver (journal
// disabled) turns every method into a no-op.
type journalState struct {
	p     *Processor
	file  *entity.SourceFile
	jobID uuid.UUID
}

func (p *Processor) startJournal(ctx context.Context, entry ingest.FileEntry) *journalState {
	if p.Journal == nil {
		return nil
	}
	hash, err := ingest.HashFile(entry.Path)
	if err != nil {
		p.Logger.Warn("journal: hash failed, skipping journal for file", "path", entry.Path, "err", err)
		return nil
	}
	file, dedup, err := p.Journal.Files.UpsertByHash(ctx, entry.Path, entry.Ext, hash, time.Now().UTC())
	if err != nil {
		p.Logger.Warn("journal: file upsert failed", "path", entry.Path, "err", err)
		return nil
	}
	if dedup {
		p.Logger.Debug("journal: content seen before", "path", entry.Path, "file_id", file.ID)
	}
	job, err := p.Journal.Jobs.Start(ctx, file.ID, constants.MapExtToFormat(entry.Ext))
	if err != nil {
		p.Logger.Warn("journal: job start failed", "path", entry.Path, "err", err)
		return nil
	}
	return &journalState{p: p, file: file, jobID: job.ID}
}

func (j *journalState) ocrDone(ctx context.Context, res extract.TextExtractionResult) {
	if j == nil {
		return
	}
	if err := j.p.Journal.Jobs.FinishOCR(ctx, j.jobID, res.Text, res.Method); err != nil {
		j.p.Logger.Warn("journal: finish ocr failed", "err", err)
	}
}

func (j *journalState) parseDone(ctx context.Context, recs []entity.CertificateRecord) {
	if j == nil {
		return
	}
	if err := j.p.Journal.Records.InsertAll(ctx, j.jobID, j.file.ID, recs); err != nil {
		j.p.Logger.Warn("journal: record insert failed", "err", err)
	}
	if err := j.p.Journal.Jobs.FinishParse(ctx, j.jobID, len(recs)); err != nil {
		j.p.Logger.Warn("journal: finish parse failed", "err", err)
	}
}

func (j *journalState) fail(ctx context.Context, cause error) {
	if j == nil {
		return
	}
	if err := j.p.Journal.Jobs.FinishFailure(ctx, j.jobID, cause.Error()); err != nil {
		j.p.Logger.Warn("journal: mark failure failed", "err", err)
	}
}
