package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/certkit/copyright-extractor/internal/cleaner"
	"github.com/certkit/copyright-extractor/internal/common"
	"github.com/certkit/copyright-extractor/internal/export"
	"github.com/certkit/copyright-extractor/internal/extract"
	"github.com/certkit/copyright-extractor/internal/ocr"
	"github.com/certkit/copyright-extractor/internal/parser"
	processor "github.com/certkit/copyright-extractor/internal/pipeline"
	"github.com/certkit/copyright-extractor/internal/repository"
	"github.com/certkit/copyright-extractor/internal/rules"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	var (
		dir       = flag.String("dir", "", "directory of certificate scans to process (required)")
		out       = flag.String("out", "", "output XLSX file path (defaults to <dir>/../软件著作权清单.xlsx)")
		lang      = flag.String("lang", "", "OCR language code, overrides OCR_LANG")
		engine    = flag.String("engine", "", "OCR engine: auto, tesseract or native; overrides OCR_ENGINE")
		rulesPath = flag.String("rules", "", "JSON cleaning-rules file, overrides CERT_RULES_PATH")
		dbPath    = flag.String("db", "", "SQLite journal path, overrides CERT_DB_PATH")
		inmem     = flag.Bool("inmem", false, "keep the journal in an in-memory SQLite database")
		verbose   = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	if *dir == "" {
		printError("Error: --dir is required\n")
		os.Exit(common.ExitFailure)
	}
	if *out == "" {
		*out = filepath.Join(filepath.Dir(filepath.Clean(*dir)), "软件著作权清单.xlsx")
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	ctx := context.Background()

	cfg := common.LoadConfig()
	if *lang != "" {
		cfg.OCR.Language = *lang
	}
	if *engine != "" {
		cfg.OCR.Engine = *engine
	}
	if *rulesPath != "" {
		cfg.Rules.Path = *rulesPath
	}
	if *dbPath != "" {
		cfg.Database.Path = *dbPath
	}
	if *inmem {
		cfg.Database.Path = ":memory:"
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(common.ExitFailure)
	}

	r, err := rules.Load(cfg.Rules.Path)
	if err != nil {
		logger.Error("failed to load cleaning rules", "path", cfg.Rules.Path, "error", err)
		os.Exit(common.ExitCode(err))
	}

	extractor := ocr.NewExtractor(ocr.Config{
		Engine:      cfg.OCR.Engine,
		Language:    cfg.OCR.Language,
		Tesseract:   cfg.OCR.Tesseract,
		Pdftotext:   cfg.OCR.Pdftotext,
		Pdftoppm:    cfg.OCR.Pdftoppm,
		DPI:         cfg.OCR.DPI,
		MaxPages:    cfg.OCR.MaxPages,
		TessdataDir: cfg.OCR.TessdataDir,
	}, logger)
	if err := extractor.CheckDependencies(ctx); err != nil {
		logger.Error("OCR dependencies unavailable", "error", err)
		os.Exit(common.ExitCode(err))
	}

	var journal *processor.Journal
	if cfg.Database.Path != "" {
		db, err := repository.Open(ctx, cfg.Database.Path, logger)
		if err != nil {
			logger.Error("failed to open journal database", "path", cfg.Database.Path, "error", err)
			os.Exit(common.ExitFailure)
		}
		defer repository.Close(db, logger)
		journal = &processor.Journal{
			Files:   repository.NewSourceFileRepository(db, logger),
			Jobs:    repository.NewExtractJobRepository(db, logger),
			Records: repository.NewCertificateRecordRepository(db, logger),
		}
	}

	proc := processor.NewProcessor(logger, extract.NewOCRAdapter(extractor), parser.NewParser(logger), journal)
	batch := processor.NewBatch(logger, proc, cleaner.New(r, logger), export.NewService(logger), r)

	summary, err := batch.Run(ctx, *dir, *out)
	if err != nil {
		logger.Error("batch failed", "dir", *dir, "error", err)
		os.Exit(common.ExitCode(err))
	}

	fmt.Printf("Processed %d files (%d failed), wrote %d records to %s\n",
		summary.FilesOK, summary.FilesFailed, summary.CleanRecords, summary.OutputPath)
}
