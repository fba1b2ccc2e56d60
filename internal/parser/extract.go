package parser

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/certkit/copyright-extractor/constants"
	"github.com/certkit/copyright-extractor/internal/common"
	"github.com/certkit/copyright-extractor/internal/entity"
)

// OCR output mangles certificate labels in two recurring ways: spurious
// whitespace between the characters of a label ("登 记 号" for "登记号") and
// inconsistent punctuation after it. Every label pattern therefore allows
// optional whitespace between label characters where that degradation is
// observed, plus an optional separator with surrounding whitespace.
const sep = `\s*[:：;；,]?\s*`

// spaced intersperses an optional-whitespace quantifier between every
// character of a label.
func spaced(label string) string {
	var b strings.Builder
	for i, r := range label {
		if i > 0 {
			b.WriteString(`\s*`)
		}
		b.WriteString(regexp.QuoteMeta(string(r)))
	}
	return b.String()
}

// A continuation line of a multi-line software name is distinguished from the
// start of the next field by this stop set. Stop labels get the same
// intra-label whitespace tolerance as the field labels themselves.
var reNameStop = regexp.MustCompile(`^(` + strings.Join([]string{
	spaced("著作权人"),
	spaced("版本号"),
	`V\d`,
	spaced("首次发表"),
	spaced("权利"),
	spaced("开发完成"),
}, "|") + `)`)

var (
	reLeadingPunct   = regexp.MustCompile(`^[:：,，.\-]\s*`)
	reLeadingColon   = regexp.MustCompile(`^[:：]\s*`)
	reRegistration   = regexp.MustCompile(spaced(constants.FieldRegistration) + sep + `([0-9]{4}SR[0-9]+)`)
	reSerialNumber   = regexp.MustCompile(`No\.\s*(\d{6,})`)
	reOwner          = regexp.MustCompile(spaced(constants.FieldOwner) + sep + `([^\n]+)`)
	reSoftwareName   = regexp.MustCompile(spaced(constants.FieldSoftwareName) + sep + `([^\n]+)(?:\n\s*[:：]?\s*([^\n]+))?`)
	rePublicationDay = regexp.MustCompile(constants.FieldPublicationDate + sep + `(\d{4}年\d{1,2}月\d{1,2}日|未发表)`)
	reAcquisition    = regexp.MustCompile(constants.FieldAcquisition + sep + `([^\n]+)`)
	reRightsScope    = regexp.MustCompile(spaced(constants.FieldRightsScope) + sep + `([^\n]+)`)
)

// fieldPatterns is the fixed, ordered extraction table. Each entry runs
// independently against the same normalized text; no field lookup
// short-circuits another.
var fieldPatterns = []struct {
	field string
	re    *regexp.Regexp
	// post derives the field value from the submatches. nil means
	// "trim the first capture group".
	post func(m []string) string
}{
	{constants.FieldRegistration, reRegistration, nil},
	{constants.FieldSerialNumber, reSerialNumber, nil},
	{constants.FieldOwner, reOwner, func(m []string) string {
		return reLeadingPunct.ReplaceAllString(strings.TrimSpace(m[1]), "")
	}},
	{constants.FieldSoftwareName, reSoftwareName, joinSoftwareName},
	{constants.FieldPublicationDate, rePublicationDay, nil},
	{constants.FieldAcquisition, reAcquisition, nil},
	{constants.FieldRightsScope, reRightsScope, nil},
}

// joinSoftwareName applies the multi-line continuation rule: the line after
// the name is appended (space-joined, leading colon stripped) unless it
// starts one of the other certificate fields.
func joinSoftwareName(m []string) string {
	name := strings.TrimSpace(m[1])
	if cont := strings.TrimSpace(m[2]); cont != "" && !reNameStop.MatchString(cont) {
		name += " " + reLeadingColon.ReplaceAllString(cont, "")
	}
	return name
}

// Parser extracts certificate records from OCR text.
type Parser struct {
	logger *slog.Logger
}

func NewParser(logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{logger: logger}
}

// ParsePage recovers the seven certificate fields from one page of OCR text.
// Fields whose pattern does not match stay empty; that is not an error here.
func (p *Parser) ParsePage(page string) entity.CertificateRecord {
	// Normalize: non-empty trimmed lines rejoined with a single newline.
	var lines []string
	for _, ln := range strings.Split(page, "\n") {
		if s := strings.TrimSpace(ln); s != "" {
			lines = append(lines, s)
		}
	}
	text := strings.Join(lines, "\n")

	var rec entity.CertificateRecord
	for _, fp := range fieldPatterns {
		m := fp.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		value := ""
		if fp.post != nil {
			value = fp.post(m)
		} else {
			value = strings.TrimSpace(m[1])
		}
		setField(&rec, fp.field, value)
	}

	valid := 0
	for _, f := range constants.CertificateFields {
		if ValidateField(f, rec.Field(f)) {
			valid++
		}
	}
	p.logger.Debug("parsed certificate page",
		"valid_fields", valid, "total_fields", len(constants.CertificateFields))

	return rec
}

// ParseText parses OCR text that may span multiple pages. Pages that yield
// no key field are dropped; if no page produces a provisionally valid record
// the text is parsed once more as a single block (delimiter-less input).
// Empty input and a final empty result both surface as ErrValidation, never
// as a silent empty list.
func (p *Parser) ParseText(text string) ([]entity.CertificateRecord, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("empty text provided for parsing: %w", common.ErrValidation)
	}

	pages := SplitPages(text)
	p.logger.Info("parsing certificate text", "pages", len(pages))

	var records []entity.CertificateRecord
	for i, page := range pages {
		rec, err := p.parsePageSafe(page)
		if err != nil {
			p.logger.Error("page parsing failed", "page", i+1, "err", err)
			continue
		}
		if rec.HasKeyField() {
			records = append(records, rec)
		} else {
			p.logger.Warn("no key fields found on page", "page", i+1)
		}
	}

	if len(records) == 0 {
		// Delimiter-stripped segments can split a certificate apart; retry
		// against the whole text as one block before giving up.
		if rec, err := p.parsePageSafe(text); err == nil && rec.HasKeyField() {
			records = append(records, rec)
		}
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("no valid certificate data extracted from text: %w", common.ErrValidation)
	}
	p.logger.Info("parsed certificates", "count", len(records))
	return records, nil
}

// parsePageSafe converts an extractor panic into ErrParsing so one broken
// page never takes down its siblings.
func (p *Parser) parsePageSafe(page string) (rec entity.CertificateRecord, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("extract certificate fields: %v: %w", r, common.ErrParsing)
		}
	}()
	return p.ParsePage(page), nil
}

func setField(rec *entity.CertificateRecord, name, value string) {
	switch name {
	case constants.FieldSerialNumber:
		rec.SerialNumber = value
	case constants.FieldOwner:
		rec.Owner = value
	case constants.FieldSoftwareName:
		rec.SoftwareName = value
	case constants.FieldPublicationDate:
		rec.PublicationDate = value
	case constants.FieldAcquisition:
		rec.AcquisitionMethod = value
	case constants.FieldRightsScope:
		rec.RightsScope = value
	case constants.FieldRegistration:
		rec.RegistrationNumber = value
	}
}
