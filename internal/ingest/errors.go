package ingest

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is checks.
// ParseError matches ErrMalformedInput and FileReadError matches ErrFileRead,
// so callers can branch on the category without a type assertion.
var (
	// ErrMalformedInput is returned when content has no header line.
	ErrMalformedInput = errors.New("malformed input")

	// ErrFileRead is returned when the export could not be read.
	ErrFileRead = errors.New("file read failed")

	// ErrEmptyLocation is returned when no path or URL was given.
	ErrEmptyLocation = errors.New("empty file location")
)

// ParseError reports content that does not decompose into a header and rows.
type ParseError struct {
	// Line is the 1-based line number the problem was detected on.
	Line int

	// Reason is a short human-readable explanation.
	Reason string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d: %s", e.Line, e.Reason)
}

// Is reports whether target is ErrMalformedInput.
func (e *ParseError) Is(target error) bool {
	return target == ErrMalformedInput
}

// FileReadError reports an I/O failure while reading an export.
type FileReadError struct {
	// Location is the path or URL that was read.
	Location string

	// Err is the underlying I/O error.
	Err error
}

// Error implements the error interface.
func (e *FileReadError) Error() string {
	return fmt.Sprintf("failed to read %s: %v", e.Location, e.Err)
}

// Unwrap returns the underlying I/O error.
func (e *FileReadError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrFileRead.
func (e *FileReadError) Is(target error) bool {
	return target == ErrFileRead
}
