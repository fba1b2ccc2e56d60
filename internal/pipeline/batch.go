package processor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/certkit/copyright-extractor/constants"
	"github.com/certkit/copyright-extractor/internal/cleaner"
	"github.com/certkit/copyright-extractor/internal/common"
	"github.com/certkit/copyright-extractor/internal/entity"
	"github.com/certkit/copyright-extractor/internal/export"
	"github.com/certkit/copyright-extractor/internal/ingest"
	"github.com/certkit/copyright-extractor/internal/rules"
)

// BatchSummary reports what a directory run produced.
type BatchSummary struct {
	Stats        ingest.DirStats
	FilesOK      int
	FilesEmpty   int // acquired but yielded no certificate data
	FilesFailed  int
	RawRecords   int
	CleanRecords int
	OutputPath   string
	Duration     time.Duration
}

// Batch walks a directory of certificate scans, runs each file through the
// processor, cleans the combined records and writes one spreadsheet.
type Batch struct {
	Logger    *slog.Logger
	Processor *Processor
	Cleaner   *cleaner.Cleaner
	Exporter  *export.Service
	Rules     *rules.Rules
}

func NewBatch(logger *slog.Logger, proc *Processor, cl *cleaner.Cleaner, exp *export.Service, r *rules.Rules) *Batch {
	if logger == nil {
		logger = slog.Default()
	}
	if r == nil {
		r = rules.Default()
	}
	return &Batch{Logger: logger, Processor: proc, Cleaner: cl, Exporter: exp, Rules: r}
}

// Run processes every supported file under dir and writes the result to
// outPath. One bad file never aborts the batch; its failure is logged and
// counted. Run errors only when the directory cannot be scanned, no file
// yields a record, or the spreadsheet cannot be written.
func (b *Batch) Run(ctx context.Context, dir, outPath string) (BatchSummary, error) {
	start := time.Now()
	summary := BatchSummary{OutputPath: outPath}

	entries, stats, err := ingest.ScanDirectory(dir, true, b.Logger)
	if err != nil {
		return summary, err
	}
	summary.Stats = stats
	if len(entries) == 0 {
		return summary, fmt.Errorf("no supported certificate files under %s: %w", dir, common.ErrValidation)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })

	var raw []entity.CertificateRecord
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		records, err := b.Processor.ProcessFile(ctx, entry)
		if err != nil {
			// A file with no recognizable certificate data is a warning;
			// the batch only flags files that failed outright.
			if errors.Is(err, common.ErrValidation) {
				summary.FilesEmpty++
				b.Logger.Warn("batch.file.empty", "path", entry.Path, "err", err)
			} else {
				summary.FilesFailed++
				b.Logger.Error("batch.file.failed", "path", entry.Path, "err", err)
			}
			continue
		}
		b.applyFilenameFallback(entry, records)
		summary.FilesOK++
		raw = append(raw, records...)
	}
	summary.RawRecords = len(raw)

	cleaned := b.Cleaner.CleanAll(raw)
	summary.CleanRecords = len(cleaned)
	if len(cleaned) == 0 {
		return summary, fmt.Errorf("no certificate records recognized in %s: %w", dir, common.ErrValidation)
	}

	if err := b.Exporter.SaveXLSX(outPath, cleaned); err != nil {
		return summary, err
	}
	summary.Duration = time.Since(start)
	b.Logger.Info("batch.done",
		"files_ok", summary.FilesOK,
		"files_empty", summary.FilesEmpty,
		"files_failed", summary.FilesFailed,
		"records", summary.CleanRecords,
		"output", outPath,
		"duration", summary.Duration.String(),
	)
	return summary, nil
}

// applyFilenameFallback substitutes the file stem for the software name on
// image-scan records whose OCR name is missing, too short or is really a
// stray field label. Scan filenames are usually the software title, so the
// stem is a better guess than garbled OCR.
func (b *Batch) applyFilenameFallback(entry ingest.FileEntry, records []entity.CertificateRecord) {
	if !constants.IsImageExt(entry.Ext) {
		return
	}
	base := filepath.Base(entry.Path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if strings.TrimSpace(stem) == "" {
		return
	}
	for i := range records {
		name := records[i].SoftwareName
		if !b.Rules.BadSoftwareName(name) {
			continue
		}
		b.Logger.Info("batch.name.fallback", "path", entry.Path, "ocr_name", name, "stem", stem)
		records[i].SoftwareName = stem
	}
}
