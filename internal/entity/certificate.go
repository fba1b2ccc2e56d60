package entity

import "github.com/certkit/copyright-extractor/constants"

// CertificateRecord holds the fields extracted from one certificate page.
// All fields default to empty; absence is not an error at this stage.
// Cleaning derives a new value rather than mutating the record.
type CertificateRecord struct {
	SerialNumber       string `json:"序号"`
	Owner              string `json:"著作权人"`
	SoftwareName       string `json:"软件名称"`
	PublicationDate    string `json:"首次发表日期"`
	AcquisitionMethod  string `json:"权利取得方式"`
	RightsScope        string `json:"权利范围"`
	RegistrationNumber string `json:"登记号"`

	// Attached by the batch driver, not by the extractor.
	FileName string `json:"file_name,omitempty"`
	FilePath string `json:"file_path,omitempty"`
}

// HasKeyField reports provisional validity: the record is retained through
// extraction when at least one of serial number, registration number,
// software name or owner is present.
func (r CertificateRecord) HasKeyField() bool {
	return r.SerialNumber != "" || r.RegistrationNumber != "" ||
		r.SoftwareName != "" || r.Owner != ""
}

// Field returns the value for a canonical field key.
func (r CertificateRecord) Field(name string) string {
	switch name {
	case constants.FieldSerialNumber:
		return r.SerialNumber
	case constants.FieldOwner:
		return r.Owner
	case constants.FieldSoftwareName:
		return r.SoftwareName
	case constants.FieldPublicationDate:
		return r.PublicationDate
	case constants.FieldAcquisition:
		return r.AcquisitionMethod
	case constants.FieldRightsScope:
		return r.RightsScope
	case constants.FieldRegistration:
		return r.RegistrationNumber
	default:
		return ""
	}
}

// CleanedRecord is a CertificateRecord after normalization. DisplayNumber is
// the 1-based rank in final output order, assigned only to rows that survive
// the discard filter. OriginalSerial preserves the OCR-reported sequence id
// as an annotation; it never contributes to ordering.
type CleanedRecord struct {
	DisplayNumber      int    `json:"序号"`
	Owner              string `json:"著作权人"`
	SoftwareName       string `json:"软件名称"`
	PublicationDate    string `json:"首次发表日期"`
	AcquisitionMethod  string `json:"权利取得方式"`
	RightsScope        string `json:"权利范围"`
	RegistrationNumber string `json:"登记号"`
	OriginalSerial     string `json:"_原始序号,omitempty"`
}

// Empty reports whether the cleaned record should be discarded: software
// name, owner and registration number all ended up empty after cleaning.
func (r CleanedRecord) Empty() bool {
	return r.SoftwareName == "" && r.Owner == "" && r.RegistrationNumber == ""
}
