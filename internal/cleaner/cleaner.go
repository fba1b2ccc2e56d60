package cleaner

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/certkit/copyright-extractor/internal/entity"
	"github.com/certkit/copyright-extractor/internal/rules"
)

var (
	// Literal noise glyphs OCR injects into certificate text.
	noiseReplacer = strings.NewReplacer(
		"|", "",
		"，", "",
		"。", "",
		"“", "", // “
		"”", "", // ”
		`"`, "",
	)
	reEdgePunctLead  = regexp.MustCompile(`^[,，.:：;；\s]+`)
	reEdgePunctTrail = regexp.MustCompile(`[,，.:：;；\s]+$`)
	reWhitespaceRun  = regexp.MustCompile(`\s+`)
)

// Cleaner normalizes extracted certificate records before tabulation.
type Cleaner struct {
	rules  *rules.Rules
	logger *slog.Logger
}

func New(r *rules.Rules, logger *slog.Logger) *Cleaner {
	if r == nil {
		r = rules.Default()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Cleaner{rules: r, logger: logger}
}

// CleanText strips noise characters and edge punctuation, collapses
// whitespace runs, and applies the OCR substitution table in order.
// Idempotent: cleaning already-cleaned text changes nothing.
func (c *Cleaner) CleanText(text string) string {
	s := c.cleanBase(text)
	for _, sub := range c.rules.Substitutions {
		s = strings.ReplaceAll(s, sub.From, sub.To)
	}
	return strings.TrimSpace(s)
}

// cleanBase is CleanText without the substitution table. The registration
// and serial numbers get this weaker cleaning: glyph substitutions are tuned
// for descriptive Chinese text, not identifiers.
func (c *Cleaner) cleanBase(text string) string {
	s := noiseReplacer.Replace(text)
	s = strings.TrimSpace(s)
	s = reEdgePunctLead.ReplaceAllString(s, "")
	s = reEdgePunctTrail.ReplaceAllString(s, "")
	s = reWhitespaceRun.ReplaceAllString(s, " ")
	return s
}

// Clean normalizes one record. The registration number is kept even when
// malformed so a human can review it; the OCR serial number survives only as
// an annotation and never contributes to output numbering. DisplayNumber is
// left unset here; CleanAll assigns it after the discard filter.
func (c *Cleaner) Clean(rec entity.CertificateRecord) entity.CleanedRecord {
	return entity.CleanedRecord{
		Owner:              c.CleanText(rec.Owner),
		SoftwareName:       c.CleanText(rec.SoftwareName),
		PublicationDate:    c.CleanText(rec.PublicationDate),
		AcquisitionMethod:  c.CleanText(rec.AcquisitionMethod),
		RightsScope:        c.CleanText(rec.RightsScope),
		RegistrationNumber: strings.TrimSpace(c.cleanBase(rec.RegistrationNumber)),
		OriginalSerial:     strings.TrimSpace(c.cleanBase(rec.SerialNumber)),
	}
}

// CleanAll cleans records in encounter order, drops the ones whose software
// name, owner and registration number all cleaned away, and assigns
// DisplayNumber as the contiguous sequence 1..N over the survivors.
func (c *Cleaner) CleanAll(recs []entity.CertificateRecord) []entity.CleanedRecord {
	cleaned := make([]entity.CleanedRecord, 0, len(recs))
	dropped := 0
	for _, rec := range recs {
		cr := c.Clean(rec)
		if cr.Empty() {
			dropped++
			continue
		}
		cr.DisplayNumber = len(cleaned) + 1
		cleaned = append(cleaned, cr)
	}
	if dropped > 0 {
		c.logger.Warn("dropped records with no key fields after cleaning", "count", dropped)
	}
	return cleaned
}
