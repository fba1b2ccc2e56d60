package ocr

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/certkit/copyright-extractor/constants"
	"github.com/certkit/copyright-extractor/internal/common"
)

type Config struct {
	Engine    string // "auto" | "tesseract" | "native"
	Language  string // default "chi_sim"
	Tesseract string // binary name or absolute path; if empty -> "tesseract"
	Pdftotext string // if empty -> "pdftotext"
	Pdftoppm  string // if empty -> "pdftoppm"

	DPI      int // rasterization DPI for scanned PDFs, default 300
	MaxPages int // 0 = no limit

	TessdataDir string
}

type ExtractionResult struct {
	Text       string
	Pages      int
	SourceType string // constants.PDF | constants.IMAGE
	Method     string // "pdf-text" | "pdf-ocr" | "image-ocr" | "image-ocr-native"
	Language   string
	Duration   time.Duration
	Warnings   []string
}

type Extractor struct {
	cfg    Config
	runner Runner
	native nativeClient
	logger *slog.Logger
}

func NewExtractor(cfg Config, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Engine == "" {
		cfg.Engine = string(EngineAuto)
	}
	if cfg.Language == "" {
		cfg.Language = "chi_sim"
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.Pdftotext == "" {
		cfg.Pdftotext = "pdftotext"
	}
	if cfg.Pdftoppm == "" {
		cfg.Pdftoppm = "pdftoppm"
	}
	if cfg.DPI <= 0 {
		cfg.DPI = 300
	}
	return &Extractor{cfg: cfg, runner: execRunner{logger: logger}, native: gosseractClient{}, logger: logger}
}

// Extract picks a strategy based on file extension.
func (e *Extractor) Extract(ctx context.Context, path string) (ExtractionResult, error) {
	start := time.Now()
	ext := constants.NormalizeExt(filepath.Ext(path))
	e.logger.Debug("starting text acquisition", "path", path, "ext", ext)
	switch constants.MapExtToFormat(ext) {
	case constants.PDF:
		res, err := e.extractPDF(ctx, path)
		res.Duration = time.Since(start)
		return res, err
	case constants.IMAGE:
		res, err := e.extractImage(ctx, path)
		res.Duration = time.Since(start)
		return res, err
	default:
		e.logger.Error("unsupported ocr extension", "extension", ext)
		return ExtractionResult{}, fmt.Errorf("unsupported extension %q: %w", ext, common.ErrAcquisition)
	}
}

// selectedEngine resolves the configured engine once per call site.
func (e *Extractor) selectedEngine() (Engine, error) {
	return SelectEngine(Engine(e.cfg.Engine), e.cfg.Language, DetectCapabilities(e.cfg.Tesseract))
}
