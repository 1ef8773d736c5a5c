package report

import (
	"encoding/json"
	"io"

	"github.com/nao1215/libcatalog/internal/model"
)

// JSONWriter outputs views in JSON format.
// Calls are buffered into a Document which Flush writes as one value.
//
// Design decision: We use standard encoding/json rather than a third-party
// JSON library because it is sufficient for these small documents and
// honours the custom MarshalJSON methods of the model types.
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed JSON output.
	indent bool

	// indentPrefix is the prefix for each line in indented output.
	indentPrefix string

	// indentString is the indentation string (typically "  " or "\t").
	indentString string

	// version is recorded in the document.
	version string

	doc Document
}

// Document is the JSON value written by JSONWriter.
// Sections that were never rendered are omitted.
type Document struct {
	// Version is the libcatalog version that produced the document.
	Version string `json:"version,omitempty"`

	// Stats is present when statistics were shown.
	Stats *model.Stats `json:"stats,omitempty"`

	// Libraries is present, possibly empty, when a list was rendered.
	Libraries []model.Library `json:"libraries,omitzero"`

	// Details holds every detail view shown, in order.
	Details []model.Detail `json:"details,omitempty"`
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables pretty-printed JSON output.
// The prefix is prepended to each line, and indent is used for each level.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint enables pretty-printed JSON with default indentation.
// This is a convenience wrapper for WithIndent("", "  ").
func WithPrettyPrint() JSONWriterOption {
	return WithIndent("", "  ")
}

// WithVersion records the producing version in the document.
func WithVersion(version string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.version = version
	}
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Render buffers the library list. A later call replaces an earlier one.
func (w *JSONWriter) Render(libs []model.Library) error {
	w.doc.Libraries = append(make([]model.Library, 0, len(libs)), libs...)
	return nil
}

// ShowDetail buffers a detail view.
func (w *JSONWriter) ShowDetail(detail model.Detail) error {
	w.doc.Details = append(w.doc.Details, detail)
	return nil
}

// ShowStats buffers the statistics.
func (w *JSONWriter) ShowStats(stats model.Stats) error {
	w.doc.Stats = &stats
	return nil
}

// Flush writes the buffered document and resets the buffer.
func (w *JSONWriter) Flush() error {
	w.doc.Version = w.version
	_, err := w.writeJSON(w.doc)
	w.doc = Document{}
	return err
}

// writeJSON marshals the given value to JSON and writes it to the output.
func (w *JSONWriter) writeJSON(v any) (int, error) {
	var data []byte
	var err error

	if w.indent {
		data, err = json.MarshalIndent(v, w.indentPrefix, w.indentString)
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return 0, err
	}

	// Add trailing newline for better terminal output
	data = append(data, '\n')

	return w.output.Write(data)
}
