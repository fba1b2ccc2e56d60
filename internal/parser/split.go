package parser

import (
	"regexp"
	"strings"
)

// Multi-page OCR output carries a literal delimiter before each page's text.
var rePageDelim = regexp.MustCompile(`--- Page \d+ ---`)

// SplitPages splits raw OCR text into per-page blocks in document order.
// The delimiter itself is stripped and empty segments are dropped. When no
// delimiter yields a non-empty segment but the input itself has content, the
// whole trimmed input is returned as a single block (single-page or
// delimiter-less input). An empty or whitespace-only input returns nil;
// deciding whether that is an error belongs to the caller.
func SplitPages(raw string) []string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}

	var pages []string
	for _, seg := range rePageDelim.Split(raw, -1) {
		if s := strings.TrimSpace(seg); s != "" {
			pages = append(pages, s)
		}
	}
	if len(pages) == 0 {
		return []string{trimmed}
	}
	return pages
}
