// Package tui provides the interactive library browser.
//
// The browser shows the session's libraries in a table with a live search
// box, cycles the sort field with "s" and opens a detail view rendered
// from Markdown with glamour. Content arriving as LoadedMsg, from the "r"
// key or a file watcher, replaces the data through the session, so a
// failed reload keeps the previous catalog on screen.
package tui
