package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/certkit/copyright-extractor/constants"
)

func TestValidateFieldRegistration(t *testing.T) {
	cases := []struct {
		value string
		want  bool
	}{
		{"2023SR0345678", true},
		{"1999SR1", true},
		{"2023sr0345678", false}, // lowercase marker
		{"202SR0345678", false},  // short year
		{"2023SR", false},        // no sequence
		{"2023SR034 5678", false},
		{"", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ValidateField(constants.FieldRegistration, tc.value), "value %q", tc.value)
	}
}

func TestValidateFieldSerialNumber(t *testing.T) {
	assert.True(t, ValidateField(constants.FieldSerialNumber, "5678901"))
	assert.True(t, ValidateField(constants.FieldSerialNumber, "123456"))
	assert.False(t, ValidateField(constants.FieldSerialNumber, "12345"))
	assert.False(t, ValidateField(constants.FieldSerialNumber, "12345a6"))
	assert.False(t, ValidateField(constants.FieldSerialNumber, ""))
}

func TestValidateFieldPublicationDate(t *testing.T) {
	assert.True(t, ValidateField(constants.FieldPublicationDate, "2023年3月15日"))
	assert.True(t, ValidateField(constants.FieldPublicationDate, "2023年12月1日"))
	assert.True(t, ValidateField(constants.FieldPublicationDate, "未发表"))
	assert.False(t, ValidateField(constants.FieldPublicationDate, "2023-03-15"))
	assert.False(t, ValidateField(constants.FieldPublicationDate, "2023年3月"))
}

func TestValidateFieldFreeText(t *testing.T) {
	// Chinese length counts runes, not bytes.
	assert.True(t, ValidateField(constants.FieldOwner, "某公司"))
	assert.True(t, ValidateField(constants.FieldSoftwareName, "某软件"))
	assert.True(t, ValidateField(constants.FieldRightsScope, "全部"))
	assert.False(t, ValidateField(constants.FieldOwner, "司"))
	assert.False(t, ValidateField(constants.FieldOwner, "  "))
	assert.False(t, ValidateField(constants.FieldOwner, ""))
}
