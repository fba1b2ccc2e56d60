package constants

// Certificate field keys. These are the literal labels printed on software
// copyright registration certificates and double as map keys across the
// pipeline and in JSON output.
const (
	FieldSerialNumber    = "序号"
	FieldOwner           = "著作权人"
	FieldSoftwareName    = "软件名称"
	FieldPublicationDate = "首次发表日期"
	FieldAcquisition     = "权利取得方式"
	FieldRightsScope     = "权利范围"
	FieldRegistration    = "登记号"
)

// CertificateFields lists all extracted fields in their canonical order.
var CertificateFields = []string{
	FieldSerialNumber,
	FieldOwner,
	FieldSoftwareName,
	FieldPublicationDate,
	FieldAcquisition,
	FieldRightsScope,
	FieldRegistration,
}

// ExportHeaders is the column order of the generated spreadsheet.
// The last column carries the preserved OCR serial number as an annotation.
var ExportHeaders = []string{
	FieldSerialNumber,
	FieldOwner,
	FieldSoftwareName,
	FieldPublicationDate,
	FieldAcquisition,
	FieldRightsScope,
	FieldRegistration,
	"备注",
}
