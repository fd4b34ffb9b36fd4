package domain

import (
	"path/filepath"
	"strings"
)

// Format is the tagged union of decodable upload formats.
type Format int

const (
	// FormatUnknown is not decodable.
	FormatUnknown Format = iota

	// FormatPlainText is decoded verbatim.
	FormatPlainText

	// FormatWordProcessor is an Office Open XML word-processing package (.docx).
	FormatWordProcessor

	// FormatPaginated is a paginated document (.pdf).
	FormatPaginated
)

// MIME types recognised when the extension is missing or unknown.
const (
	MIMEPlainText     = "text/plain"
	MIMEWordProcessor = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MIMEPaginated     = "application/pdf"
)

// String returns the string representation.
func (f Format) String() string {
	switch f {
	case FormatPlainText:
		return "plain_text"
	case FormatWordProcessor:
		return "word_processor"
	case FormatPaginated:
		return "paginated"
	default:
		return "unknown"
	}
}

// Extension returns the document extension produced by this format.
func (f Format) Extension() Extension {
	switch f {
	case FormatPlainText:
		return ExtensionTXT
	case FormatWordProcessor:
		return ExtensionDOCX
	case FormatPaginated:
		return ExtensionPDF
	default:
		return ""
	}
}

// Classify selects the format for a file name and declared MIME type.
// The extension decides, case-insensitively; the MIME type is consulted
// only when the extension is missing or not one of txt, docx, pdf.
func Classify(name, mimeType string) (Format, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
	switch Extension(ext) {
	case ExtensionTXT:
		return FormatPlainText, nil
	case ExtensionDOCX:
		return FormatWordProcessor, nil
	case ExtensionPDF:
		return FormatPaginated, nil
	}

	mediaType := strings.ToLower(strings.TrimSpace(mimeType))
	if i := strings.IndexByte(mediaType, ';'); i >= 0 {
		mediaType = strings.TrimSpace(mediaType[:i])
	}
	switch mediaType {
	case MIMEPlainText:
		return FormatPlainText, nil
	case MIMEWordProcessor:
		return FormatWordProcessor, nil
	case MIMEPaginated:
		return FormatPaginated, nil
	}

	return FormatUnknown, ErrUnsupportedFormat
}
