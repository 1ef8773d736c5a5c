// Package watch reloads a library export when it changes on disk.
//
// A Watcher debounces the filesystem events of one file, reads it through
// ingest.Source and passes the content to a callback, skipping writes that
// leave the content identical.
package watch
