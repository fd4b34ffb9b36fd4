package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedFormat indicates a file whose extension and MIME type are not recognised.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrParseFailure indicates a recognised format that could not be decoded.
	ErrParseFailure = errors.New("parse failure")

	// ErrFileTooLarge indicates an upload above the configured size limit.
	ErrFileTooLarge = errors.New("file too large")

	// ErrIndexOutOfRange indicates an edit or delete of a turn or session that does not exist.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrStorageUnavailable indicates the persistence layer could not be read or written.
	// The operation has been applied in memory only.
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// FileError reports the failure of a single file within a batch.
type FileError struct {
	// Name is the original file name.
	Name string

	// Err is the underlying error, wrapping one of the sentinel errors.
	Err error
}

// NewFileError builds a FileError for name, wrapping kind and the optional cause.
func NewFileError(name string, kind, cause error) FileError {
	if cause == nil {
		return FileError{Name: name, Err: kind}
	}
	return FileError{Name: name, Err: fmt.Errorf("%w: %v", kind, cause)}
}

func (e FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Name, e.Err)
}

func (e FileError) Unwrap() error {
	return e.Err
}
