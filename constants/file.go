package constants

import "strings"

// File formats for the format field in ExtractJob.
const (
	PDF   = "PDF"
	IMAGE = "IMAGE"
)

// AllowedExtensions holds the file extensions accepted for certificate ingestion.
var AllowedExtensions = map[string]struct{}{
	"pdf":  {},
	"png":  {},
	"jpg":  {},
	"jpeg": {},
	"bmp":  {},
	"tiff": {},
	"tif":  {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// MapExtToFormat maps a normalized extension to a coarse file format.
// Returns "" for unsupported extensions.
func MapExtToFormat(ext string) string {
	switch NormalizeExt(ext) {
	case "pdf":
		return PDF
	case "png", "jpg", "jpeg", "bmp", "tiff", "tif":
		return IMAGE
	default:
		return ""
	}
}

// IsImageExt reports whether the extension belongs to an image input.
// The filename fallback for the software-name field applies to images only.
func IsImageExt(ext string) bool {
	return MapExtToFormat(ext) == IMAGE
}
