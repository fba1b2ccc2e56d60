package ocr

import (
	"context"
	"fmt"

	"github.com/certkit/copyright-extractor/constants"
	"github.com/certkit/copyright-extractor/internal/common"
)

func (e *Extractor) extractImage(ctx context.Context, path string) (ExtractionResult, error) {
	engine, err := e.selectedEngine()
	if err != nil {
		return ExtractionResult{SourceType: constants.IMAGE}, err
	}

	txt, warn, err := e.ocrImage(ctx, engine, path)
	if err != nil {
		return ExtractionResult{SourceType: constants.IMAGE, Warnings: warn}, err
	}
	txt = Normalize(txt)

	method := "image-ocr"
	if engine == EngineNative {
		method = "image-ocr-native"
	}
	return ExtractionResult{
		Text:       txt,
		Pages:      1,
		SourceType: constants.IMAGE,
		Method:     method,
		Language:   e.cfg.Language,
		Warnings:   warn,
	}, nil
}

// ocrImage recognizes one image file with the chosen backend.
func (e *Extractor) ocrImage(ctx context.Context, engine Engine, path string) (string, []string, error) {
	switch engine {
	case EngineNative:
		txt, err := e.native.Recognize(path, e.cfg.Language, e.cfg.TessdataDir)
		if err != nil {
			return "", nil, fmt.Errorf("native ocr %s: %v: %w", path, err, common.ErrAcquisition)
		}
		return txt, nil, nil
	default:
		return e.tesseractOCR(ctx, path)
	}
}

func (e *Extractor) tesseractOCR(ctx context.Context, path string) (string, []string, error) {
	args := []string{path, "stdout", "-l", e.cfg.Language}
	if e.cfg.TessdataDir != "" {
		args = append(args, "--tessdata-dir", e.cfg.TessdataDir)
	}

	// tesseract <file> stdout -l <lang>
	out, errb, err := e.runner.Run(ctx, e.cfg.Tesseract, args...)
	if err != nil {
		return "", []string{string(errb)}, fmt.Errorf("tesseract: %v: %w", err, common.ErrAcquisition)
	}

	// minor cleanup of obvious line noise
	txt := reBoxNoise.ReplaceAllString(string(out), "")
	return txt, nil, nil
}
