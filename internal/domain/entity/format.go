package entity

import (
	"path/filepath"
	"strings"
)

// Format identifies how raw source content must be decoded.
type Format string

const (
	FormatText Format = "txt"
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
	FormatURL  Format = "url"
)

// FileFormats are the formats accepted for uploaded files.
var FileFormats = []Format{FormatText, FormatPDF, FormatDOCX}

// ParseFormat converts a format token. "text" is accepted as an alias of "txt".
// Unknown tokens yield a FileFormatError.
func ParseFormat(token string) (Format, error) {
	t := strings.ToLower(strings.TrimSpace(token))
	switch Format(t) {
	case FormatText, "text":
		return FormatText, nil
	case FormatPDF:
		return FormatPDF, nil
	case FormatDOCX:
		return FormatDOCX, nil
	case FormatURL:
		return FormatURL, nil
	}
	return "", FileFormatError(t)
}

// FormatFromFilename derives the file format from the extension of name.
// Only txt, pdf and docx are accepted.
func FormatFromFilename(name string) (Format, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	if ext == "" {
		return "", FileFormatError(ext)
	}
	f, err := ParseFormat(ext)
	if err != nil || f == FormatURL || ext == "text" {
		return "", FileFormatError(ext)
	}
	return f, nil
}
