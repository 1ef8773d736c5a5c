// Package ingest reads library exports and splits them into raw records.
//
// It covers the first two stages of a load:
//   - Reader fetches the raw bytes of an export from a path or URL
//   - Parse splits those bytes into a header row and one RawRecord per data row
//
// The parser deliberately implements a minimal comma-separated format: no
// quoting, no escaped delimiters and no multi-line fields. A comma inside a
// value is a field boundary. Short rows are padded with empty strings and
// long rows are truncated, so only input without a header line is rejected.
package ingest
