// Package report renders libraries, statistics and detail views.
//
// This package contains writers for different output formats:
//   - SimpleWriter: human-readable tables for terminal display
//   - JSONWriter: structured JSON for tool integration
//   - MarkdownWriter: a Markdown document for sharing
//
// Every writer satisfies the presenter contract the session drives
// (Render, ShowDetail, ShowStats) plus Flush. JSON and Markdown writers
// buffer what they are given and emit one document on Flush, so a single
// invocation produces a single valid document.
//
// Design decision: This package does not import the session package.
// Writers are matched to the session's presenter interfaces structurally,
// which keeps rendering independent of state handling.
package report
