package parser

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/certkit/copyright-extractor/constants"
)

const unpublished = "未发表"

var (
	reValidRegistration = regexp.MustCompile(`^\d{4}SR\d+$`)
	reValidDate         = regexp.MustCompile(`^\d{4}年\d{1,2}月\d{1,2}日$`)
	reAllDigits         = regexp.MustCompile(`^\d+$`)
)

// ValidateField checks an extracted value against its field's expected shape.
// Pure diagnostic signal: a false result never blocks extraction or discards
// a record.
func ValidateField(field, value string) bool {
	if strings.TrimSpace(value) == "" {
		return false
	}
	switch field {
	case constants.FieldRegistration:
		return reValidRegistration.MatchString(value)
	case constants.FieldSerialNumber:
		return reAllDigits.MatchString(value) && len(value) >= 6
	case constants.FieldPublicationDate:
		return reValidDate.MatchString(value) || value == unpublished
	default:
		// Free-text fields: anything non-trivial passes.
		return utf8.RuneCountInString(strings.TrimSpace(value)) >= 2
	}
}
