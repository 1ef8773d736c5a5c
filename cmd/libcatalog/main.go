// Package main provides the entry point for the libcatalog CLI.
//
// libcatalog reads a CSV export of library metadata, merges duplicate
// records and shows the result as a sortable, searchable catalog.
// It can also build that export from an Arduino or PlatformIO project.
//
// Usage:
//
//	libcatalog view libraries.csv
//	libcatalog browse libraries.csv --watch
//	libcatalog inventory ./firmware -o libraries.csv
//
// See --help for all available options.
package main

// main is the entry point for libcatalog.
func main() {
	Execute()
}
