package ocr

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"github.com/certkit/copyright-extractor/constants"
	"github.com/certkit/copyright-extractor/internal/common"
)

// Scanned certificates usually carry no text layer, but when one exists it
// beats re-recognizing rasterized pages. Fewer non-space characters than
// this is treated as an empty text layer.
const minTextLayerLen = 50

func textLayerLen(s string) int {
	n := 0
	for _, r := range s {
		if !unicode.IsSpace(r) {
			n++
		}
	}
	return n
}

func (e *Extractor) extractPDF(ctx context.Context, path string) (ExtractionResult, error) {
	engine, err := e.selectedEngine()
	if err != nil {
		return ExtractionResult{SourceType: constants.PDF}, err
	}

	if text, pages, ok := e.pdfTextLayer(ctx, path); ok {
		return ExtractionResult{
			Text:       text,
			Pages:      pages,
			SourceType: constants.PDF,
			Method:     "pdf-text",
			Language:   e.cfg.Language,
		}, nil
	}

	text, pages, warns, err := e.pdfToOCR(ctx, engine, path)
	if err != nil {
		return ExtractionResult{SourceType: constants.PDF, Warnings: warns}, err
	}
	return ExtractionResult{
		Text:       Normalize(text),
		Pages:      pages,
		SourceType: constants.PDF,
		Method:     "pdf-ocr",
		Language:   e.cfg.Language,
		Warnings:   warns,
	}, nil
}

// pdfTextLayer extracts the embedded text layer and re-delimits form feeds
// as "--- Page N ---" markers so the page splitter sees one uniform shape.
func (e *Extractor) pdfTextLayer(ctx context.Context, path string) (string, int, bool) {
	// pdftotext -layout -enc UTF-8 -eol unix <path> -
	out, _, err := e.runner.Run(ctx, e.cfg.Pdftotext, "-layout", "-enc", "UTF-8", "-eol", "unix", path, "-")
	if err != nil {
		return "", 0, false
	}
	text := string(out)
	if textLayerLen(text) < minTextLayerLen {
		return "", 0, false
	}
	pages := strings.Split(text, "\f")
	var b strings.Builder
	n := 0
	for _, p := range pages {
		if strings.TrimSpace(p) == "" {
			continue
		}
		n++
		fmt.Fprintf(&b, "--- Page %d ---\n%s\n", n, p)
	}
	if n == 0 {
		return "", 0, false
	}
	return b.String(), n, true
}

// pdfToOCR rasterizes the document and recognizes each page in order. A page
// whose OCR fails contributes an "[OCR FAILED]" placeholder so document
// order stays intact for its siblings.
func (e *Extractor) pdfToOCR(ctx context.Context, engine Engine, path string) (text string, pages int, warnings []string, err error) {
	tmpDir, err := os.MkdirTemp("", "certocr-*")
	if err != nil {
		return "", 0, nil, err
	}
	defer func() {
		if rmErr := os.RemoveAll(tmpDir); rmErr != nil {
			e.logger.Warn("failed to remove temp dir", "dir", tmpDir, "err", rmErr)
		}
	}()

	prefix := filepath.Join(tmpDir, "page")
	// pdftoppm -r <dpi> -gray -png <in.pdf> <tmp/page>
	// -gray stands in for grayscale preprocessing before recognition.
	_, errb, err := e.runner.Run(ctx, e.cfg.Pdftoppm, "-r", fmt.Sprintf("%d", e.cfg.DPI), "-gray", "-png", path, prefix)
	if err != nil {
		return "", 0, []string{string(errb)}, fmt.Errorf("pdftoppm: %v: %w", err, common.ErrAcquisition)
	}

	// collect generated pngs (prefix-1.png, prefix-2.png, ...)
	matches, _ := filepath.Glob(prefix + "-*.png")
	sort.Strings(matches)
	if e.cfg.MaxPages > 0 && len(matches) > e.cfg.MaxPages {
		matches = matches[:e.cfg.MaxPages]
	}
	if len(matches) == 0 {
		return "", 0, []string{"pdftoppm produced no images"}, fmt.Errorf("no pages rendered: %w", common.ErrAcquisition)
	}

	var b strings.Builder
	var warns []string
	for i, img := range matches {
		fmt.Fprintf(&b, "--- Page %d ---\n", i+1)
		txt, w, ocrErr := e.ocrImage(ctx, engine, img)
		warns = append(warns, w...)
		if ocrErr != nil {
			e.logger.Error("ocr failed on page", "page", i+1, "err", ocrErr)
			b.WriteString("[OCR FAILED]\n")
			warns = append(warns, ocrErr.Error())
			continue
		}
		b.WriteString(txt)
		b.WriteString("\n")
	}
	return b.String(), len(matches), warns, nil
}
