package ingest

import (
	"bytes"
	"strings"

	"github.com/nao1215/libcatalog/internal/model"
)

// Delimiter separates fields in both the header line and data lines.
const Delimiter = ","

// utf8BOM is stripped from the start of the content. Spreadsheet exports
// often carry it, and it would otherwise become part of the first header.
var utf8BOM = []byte("\xef\xbb\xbf")

// Table is the result of parsing an export.
type Table struct {
	// Headers are the field names from the first line, in column order.
	Headers []string

	// Records holds one entry per non-blank data line, in input order.
	Records []model.RawRecord
}

// Len returns the number of data records.
func (t *Table) Len() int {
	return len(t.Records)
}

// Parse splits content into a header line and data records.
//
// Lines are separated by "\n"; a trailing "\r" is removed so CRLF files
// parse the same as LF files. Data lines that are blank after trimming
// whitespace are skipped. Field i of a row maps to header i; missing
// trailing fields are set to "" and surplus fields are dropped.
//
// Parse fails with a *ParseError when there is no header line.
func Parse(content []byte) (*Table, error) {
	content = bytes.TrimPrefix(content, utf8BOM)
	if len(bytes.TrimSpace(content)) == 0 {
		return nil, &ParseError{Line: 1, Reason: "content is empty, expected a header line"}
	}

	lines := strings.Split(string(content), "\n")
	headerLine := strings.TrimSuffix(lines[0], "\r")
	if strings.TrimSpace(headerLine) == "" {
		return nil, &ParseError{Line: 1, Reason: "header line is blank"}
	}

	headers := splitHeader(headerLine)
	table := &Table{
		Headers: headers,
		Records: make([]model.RawRecord, 0, len(lines)-1),
	}

	for _, line := range lines[1:] {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		table.Records = append(table.Records, newRecord(headers, strings.Split(line, Delimiter)))
	}

	return table, nil
}

// splitHeader splits the header line into field names.
// Surrounding whitespace is removed so "name, version" still yields
// the recognized "version" header.
func splitHeader(line string) []string {
	parts := strings.Split(line, Delimiter)
	headers := make([]string, len(parts))
	for i, p := range parts {
		headers[i] = strings.TrimSpace(p)
	}
	return headers
}

// newRecord maps row values onto headers positionally.
// With duplicate header names the rightmost column wins.
func newRecord(headers, values []string) model.RawRecord {
	record := make(model.RawRecord, len(headers))
	for i, h := range headers {
		if i < len(values) {
			record[h] = values[i]
		} else {
			record[h] = ""
		}
	}
	return record
}
