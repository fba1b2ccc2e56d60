package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/certkit/copyright-extractor/internal/common"
	"github.com/certkit/copyright-extractor/internal/ocr"
)

// certocr runs text acquisition on a single certificate scan and writes the
// raw page-delimited text to stdout. Useful for checking what the parser
// will actually see.
func main() {
	var (
		lang   = flag.String("lang", "", "OCR language code, overrides OCR_LANG")
		engine = flag.String("engine", "", "OCR engine: auto, tesseract or native; overrides OCR_ENGINE")
	)
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if flag.NArg() != 1 {
		logger.Error("usage", "cmd", "certocr [flags] <file>")
		os.Exit(common.ExitFailure)
	}
	path := flag.Arg(0)

	cfg := common.LoadConfig()
	if *lang != "" {
		cfg.OCR.Language = *lang
	}
	if *engine != "" {
		cfg.OCR.Engine = *engine
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(common.ExitFailure)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

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

	res, err := extractor.Extract(ctx, path)
	if err != nil {
		logger.Error("text acquisition failed", "path", path, "error", err)
		os.Exit(common.ExitCode(err))
	}

	logger.Info("acquisition complete",
		"path", path,
		"method", res.Method,
		"pages", res.Pages,
		"chars", len(res.Text),
		"duration", res.Duration.String(),
	)
	for _, w := range res.Warnings {
		logger.Warn("acquisition warning", "warning", w)
	}
	fmt.Println(res.Text)
}
