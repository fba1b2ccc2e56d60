package rules

import (
	"strings"
	"unicode/utf8"
)

// BadSoftwareName reports whether an extracted software name looks like an
// OCR mis-capture: empty, shorter than the configured minimum, or containing
// one of the certificate labels (the extractor grabbed a label as a value).
// Whitespace is removed before the keyword check since OCR scatters spaces
// through Chinese text.
func (r *Rules) BadSoftwareName(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" {
		return true
	}
	if utf8.RuneCountInString(name) < r.NameFallback.MinNameLength {
		return true
	}
	compact := strings.NewReplacer(" ", "", "\t", "", "\n", "").Replace(name)
	for _, kw := range r.NameFallback.LabelKeywords {
		if strings.Contains(compact, kw) {
			return true
		}
	}
	return false
}
