package extract

import (
	"context"
	"time"
)

// TextAcquirer is Stage 1: certificate file -> raw OCR text.
// Multi-page inputs carry a literal "--- Page N ---" delimiter before each
// page's text, 1-indexed. Empty text means "nothing recognized", not an
// error.
type TextAcquirer interface {
	Extract(ctx context.Context, path string) (TextExtractionResult, error)
}

type TextExtractionResult struct {
	Text       string
	Pages      int
	SourceType string // constants.PDF | constants.IMAGE
	Method     string // "pdf-text" | "pdf-ocr" | "image-ocr" | "image-ocr-native"
	Language   string
	Duration   time.Duration
	Warnings   []string
}
