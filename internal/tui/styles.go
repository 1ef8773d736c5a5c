package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nao1215/libcatalog/internal/model"
)

// Palette used by the browser.
var (
	colorPrimary  = lipgloss.Color("#8BC34A")
	colorMuted    = lipgloss.Color("#6B7280")
	colorBorder   = lipgloss.Color("#3B4252")
	colorError    = lipgloss.Color("#E53935")
	colorWarning  = lipgloss.Color("#FFC107")
	colorInfo     = lipgloss.Color("#2196F3")
	colorSelected = lipgloss.Color("#101F38")
)

// Styles holds the lipgloss styles of every view element.
type Styles struct {
	Title       lipgloss.Style
	Stats       lipgloss.Style
	Muted       lipgloss.Style
	Error       lipgloss.Style
	Info        lipgloss.Style
	SearchBox   lipgloss.Style
	SearchFocus lipgloss.Style
	Current     lipgloss.Style
	Outdated    lipgloss.Style
	Unknown     lipgloss.Style
}

// DefaultStyles returns the default browser styles.
func DefaultStyles() Styles {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1)

	return Styles{
		Title:       lipgloss.NewStyle().Bold(true).Foreground(colorPrimary),
		Stats:       lipgloss.NewStyle().Foreground(colorInfo),
		Muted:       lipgloss.NewStyle().Foreground(colorMuted),
		Error:       lipgloss.NewStyle().Foreground(colorError).Bold(true),
		Info:        lipgloss.NewStyle().Foreground(colorPrimary),
		SearchBox:   box,
		SearchFocus: box.BorderForeground(colorPrimary),
		Current:     lipgloss.NewStyle().Foreground(colorPrimary).Bold(true),
		Outdated:    lipgloss.NewStyle().Foreground(colorWarning).Bold(true),
		Unknown:     lipgloss.NewStyle().Foreground(colorMuted),
	}
}

// Badge renders the version status label in its colour.
func (s Styles) Badge(status model.VersionStatus) string {
	switch status {
	case model.VersionCurrent:
		return s.Current.Render(status.Label())
	case model.VersionOutdated:
		return s.Outdated.Render(status.Label())
	default:
		return s.Unknown.Render(status.Label())
	}
}
