package constants

import "strings"

// MediaType identifies the declared format of an uploaded document.
type MediaType string

const (
	MediaTypePDF  MediaType = "pdf"
	MediaTypeJPEG MediaType = "jpeg"
	MediaTypePNG  MediaType = "png"
)

// ParseMediaType maps a declared media type (or common aliases) to the
// canonical MediaType. Returns false for anything the pipeline cannot handle.
func ParseMediaType(s string) (MediaType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pdf", "application/pdf":
		return MediaTypePDF, true
	case "jpeg", "jpg", "image/jpeg", "image/jpg":
		return MediaTypeJPEG, true
	case "png", "image/png":
		return MediaTypePNG, true
	default:
		return "", false
	}
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// MapExtToMediaType resolves a filename extension to a MediaType.
func MapExtToMediaType(ext string) (MediaType, bool) {
	return ParseMediaType(NormalizeExt(ext))
}
