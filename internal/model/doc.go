// Package model defines the core data structures used throughout libcatalog.
//
// This package contains the following main types:
//   - RawRecord: One parsed CSV row keyed by header name
//   - Library: One aggregated library entry per identity key
//   - VersionStatus: The naive current/outdated classification of a library
//   - Stats: Counts recomputed on every load
//   - Detail: The view model shown when a single library is inspected
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. The ingest, catalog, session and report packages all use
// these types, so centralizing them prevents import cycles.
//
// The models are designed to be serializable to JSON for report output.
package model
