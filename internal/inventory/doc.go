// Package inventory builds the library export that libcatalog views.
//
// A Scanner walks an Arduino or PlatformIO project and collects libraries
// from three kinds of files:
//   - source files (.cpp, .h, .ino by default): every #include names a
//     library; version macros, GitHub links, @author tags and the first
//     doc comment of the same file fill in its metadata
//   - platformio.ini at the project root: lib_deps of every [env:*] section
//   - library.properties, library.json and package_index.json anywhere
//
// No network lookups are made, so latest_version is left empty.
// WriteCSV and Save produce a CSV whose columns match what the viewer reads.
package inventory
