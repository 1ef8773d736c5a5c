package report

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/libcatalog/internal/model"
)

// Placeholders shown in place of missing values.
const (
	NotAvailable  = "N/A"
	UnknownName   = "Unknown library"
	NoDescription = "No description available."
	NoFiles       = "No files available."
	NoResults     = "No libraries found."
)

// Writer defines the interface for report output.
type Writer interface {
	// Render outputs a list of libraries in the given order.
	Render(libs []model.Library) error

	// ShowDetail outputs the detail view of a single library.
	ShowDetail(detail model.Detail) error

	// ShowStats outputs load statistics.
	ShowStats(stats model.Stats) error

	// Flush writes any buffered output. Writers that write immediately
	// return nil.
	Flush() error
}

// Format selects a Writer implementation.
type Format string

const (
	// FormatText is the human-readable table format.
	FormatText Format = "text"

	// FormatJSON is the JSON format.
	FormatJSON Format = "json"

	// FormatMarkdown is the Markdown format.
	FormatMarkdown Format = "markdown"
)

// ErrUnknownFormat is returned for an unsupported output format.
var ErrUnknownFormat = errors.New("unknown output format")

// New creates a Writer for format that writes to output.
// version is embedded in JSON and Markdown documents.
func New(format Format, output io.Writer, version string) (Writer, error) {
	switch format {
	case FormatText:
		return NewSimpleWriter(output), nil
	case FormatJSON:
		return NewJSONWriter(output, WithPrettyPrint(), WithVersion(version)), nil
	case FormatMarkdown:
		return NewMarkdownWriter(output, WithMarkdownVersion(version)), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// MultiWriter writes to multiple Writers.
// This is useful for outputting to both terminal and file.
//
// Design decision: We implement this as a separate type rather than
// using io.MultiWriter because our Writer interface is different
// from io.Writer - we write views, not raw bytes.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Render outputs libraries to all writers. Stops on first error.
func (m *MultiWriter) Render(libs []model.Library) error {
	for _, w := range m.writers {
		if err := w.Render(libs); err != nil {
			return err
		}
	}
	return nil
}

// ShowDetail outputs the detail view to all writers. Stops on first error.
func (m *MultiWriter) ShowDetail(detail model.Detail) error {
	for _, w := range m.writers {
		if err := w.ShowDetail(detail); err != nil {
			return err
		}
	}
	return nil
}

// ShowStats outputs statistics to all writers. Stops on first error.
func (m *MultiWriter) ShowStats(stats model.Stats) error {
	for _, w := range m.writers {
		if err := w.ShowStats(stats); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes every writer and returns all errors joined.
func (m *MultiWriter) Flush() error {
	var errs []error
	for _, w := range m.writers {
		if err := w.Flush(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// orNA returns s, or NotAvailable when s is blank.
func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return NotAvailable
	}
	return s
}

// displayName returns the library name or a placeholder.
func displayName(name string) string {
	if strings.TrimSpace(name) == "" {
		return UnknownName
	}
	return name
}

// truncateString truncates a string to maxLen runes with ellipsis.
func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
