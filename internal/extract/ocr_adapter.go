package extract

import (
	"context"

	"github.com/certkit/copyright-extractor/internal/ocr"
)

// OCRAdapter exposes an *ocr.Extractor through the TextAcquirer contract.
type OCRAdapter struct {
	Extractor *ocr.Extractor
}

func NewOCRAdapter(e *ocr.Extractor) *OCRAdapter {
	return &OCRAdapter{Extractor: e}
}

func (a *OCRAdapter) Extract(ctx context.Context, path string) (TextExtractionResult, error) {
	res, err := a.Extractor.Extract(ctx, path)
	if err != nil {
		return TextExtractionResult{}, err
	}
	return TextExtractionResult{
		Text:       res.Text,
		Pages:      res.Pages,
		SourceType: res.SourceType,
		Method:     res.Method,
		Language:   res.Language,
		Duration:   res.Duration,
		Warnings:   res.Warnings,
	}, nil
}
