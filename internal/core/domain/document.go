package domain

import "time"

// MaxTextLength is the default cap on extracted document text, in characters.
const MaxTextLength = 100000

// Extension identifies the accepted upload formats.
type Extension string

// Accepted document extensions.
const (
	ExtensionTXT  Extension = "txt"
	ExtensionPDF  Extension = "pdf"
	ExtensionDOCX Extension = "docx"
)

// Document is a persisted record of one uploaded file's extracted text.
// Documents are never mutated after creation; they are only removed.
type Document struct {
	// ID is unique within the document store.
	ID string `json:"id"`

	// Name is the original file name.
	Name string `json:"name"`

	// Extension is the format the text was extracted from.
	Extension Extension `json:"extension"`

	// SizeBytes is the size of the uploaded file.
	SizeBytes int64 `json:"sizeBytes"`

	// Text is the decoded content, truncated to the configured maximum.
	Text string `json:"text"`

	// UploadedAt is when the document was ingested.
	UploadedAt time.Time `json:"uploadedAt"`
}

// File is an upload before extraction.
type File struct {
	// Name is the file name including its extension.
	Name string

	// MIMEType is the declared content type, may be empty.
	MIMEType string

	// Content is the raw bytes.
	Content []byte
}

// Size returns the size of the file content in bytes.
func (f *File) Size() int64 {
	return int64(len(f.Content))
}

// AddResult reports a batch upload. Each file either appears in Added
// or has exactly one entry in Failures.
type AddResult struct {
	Added    []Document
	Failures []FileError
}

// TruncateText caps text at max characters. A non-positive max disables the cap.
func TruncateText(text string, max int) string {
	if max <= 0 || len(text) <= max {
		return text
	}
	count := 0
	for i := range text {
		if count == max {
			return text[:i]
		}
		count++
	}
	return text
}
