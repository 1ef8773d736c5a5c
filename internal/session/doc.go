// Package session holds the viewer state and the operations a front end
// drives: load, sort, search, statistics and detail.
//
// A Session owns the canonical aggregated list. Every successful load
// replaces it wholesale; failed loads leave it in place. Rendering is
// delegated to a Presenter, so the same session drives the text, JSON and
// Markdown renderers as well as the interactive browser.
//
// A Session is not safe for concurrent use. Front ends serialize calls,
// for example from a single event loop.
package session
