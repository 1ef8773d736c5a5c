package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nao1215/libcatalog/internal/ingest"
)

// LoadedMsg carries fresh export content, read by the "r" key or
// delivered by a file watcher. The model loads it into the session.
type LoadedMsg struct {
	// Location is where Content was read from; empty when unknown.
	Location string
	Content  []byte
}

// ErrMsg reports a failure that happened outside the update loop.
type ErrMsg struct {
	Err error
}

// readCmd reads location in the background and reports the result.
func readCmd(ctx context.Context, source ingest.Source, location string) tea.Cmd {
	return func() tea.Msg {
		content, err := source.Read(ctx, location)
		if err != nil {
			return ErrMsg{Err: err}
		}
		return LoadedMsg{Location: location, Content: content}
	}
}
