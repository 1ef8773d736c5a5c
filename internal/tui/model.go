package tui

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"

	"github.com/nao1215/libcatalog/internal/ingest"
	"github.com/nao1215/libcatalog/internal/model"
	"github.com/nao1215/libcatalog/internal/report"
	"github.com/nao1215/libcatalog/internal/session"
)

// SortFields are the fields the "s" key cycles through, in order.
var SortFields = []string{
	model.FieldName,
	model.FieldAuthor,
	model.FieldVersion,
	model.FieldSource,
}

// mode is the screen currently shown.
type mode int

const (
	modeList mode = iota
	modeSearch
	modeDetail
)

const (
	defaultWidth  = 100
	defaultHeight = 30

	// chrome is the number of lines around the table in list mode.
	chrome = 10
)

// Model is the bubbletea model of the library browser.
// It drives a session: every data change goes through the session and the
// model only keeps what is currently visible.
type Model struct {
	ctx     context.Context
	session *session.Session
	logger  *slog.Logger
	styles  Styles

	// source and location enable the "r" reload key.
	source   ingest.Source
	location string

	width  int
	height int
	mode   mode

	table    table.Model
	search   textinput.Model
	viewport viewport.Model

	glamourStyle string

	// visible is the list shown in the table, in table row order.
	visible []model.Library

	// status is the last error or notice shown under the table.
	status      string
	statusIsErr bool
}

// Option configures a Model.
type Option func(*Model)

// WithContext sets the context passed to session loads.
func WithContext(ctx context.Context) Option {
	return func(m *Model) {
		if ctx != nil {
			m.ctx = ctx
		}
	}
}

// WithReload enables the "r" key, which re-reads location from source.
func WithReload(source ingest.Source, location string) Option {
	return func(m *Model) {
		m.source = source
		m.location = location
	}
}

// WithGlamourStyle sets the glamour style of the detail view, e.g. "dark"
// or "notty". The default detects the terminal background.
func WithGlamourStyle(style string) Option {
	return func(m *Model) {
		m.glamourStyle = style
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Model) {
		m.logger = logger
	}
}

// New creates a browser over sess. The session may be empty; data loaded
// later through LoadedMsg is shown as it arrives.
func New(sess *session.Session, opts ...Option) Model {
	st := DefaultStyles()

	t := table.New(
		table.WithColumns(columns(defaultWidth)),
		table.WithFocused(true),
		table.WithHeight(defaultHeight-chrome),
	)
	ts := table.DefaultStyles()
	ts.Header = ts.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(colorBorder).
		BorderBottom(true).
		Bold(true)
	ts.Selected = ts.Selected.
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(colorSelected).
		Bold(false)
	t.SetStyles(ts)

	search := textinput.New()
	search.Placeholder = "Search all fields..."
	search.Prompt = "/ "
	search.CharLimit = 100
	search.Width = 40

	m := Model{
		ctx:          context.Background(),
		session:      sess,
		styles:       st,
		width:        defaultWidth,
		height:       defaultHeight,
		table:        t,
		search:       search,
		viewport:     viewport.New(defaultWidth, defaultHeight-2),
		glamourStyle: styles.AutoStyle,
	}
	for _, opt := range opts {
		opt(&m)
	}
	if m.logger == nil {
		m.logger = slog.Default()
	}

	m.refresh()
	return m
}

// columns returns the table columns for a terminal of the given width.
func columns(width int) []table.Column {
	// name, version, status and source are fixed; author takes the rest
	author := max(width-24-10-10-12-12, 12)
	return []table.Column{
		{Title: "Name", Width: 24},
		{Title: "Version", Width: 10},
		{Title: "Status", Width: 10},
		{Title: "Author", Width: author},
		{Title: "Source", Width: 12},
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case LoadedMsg:
		m.handleLoaded(msg)
		return m, nil

	case ErrMsg:
		m.setError(msg.Err)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.mode {
		case modeSearch:
			return m.updateSearch(msg)
		case modeDetail:
			return m.updateDetail(msg)
		default:
			return m.updateList(msg)
		}
	}

	if m.mode == modeDetail {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

// updateList handles keys on the library table.
func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "/":
		m.mode = modeSearch
		return m, m.search.Focus()
	case "s":
		m.cycleSort()
		return m, nil
	case "r":
		return m, m.reload()
	case "esc":
		if m.search.Value() != "" {
			m.search.SetValue("")
			m.refresh()
		}
		return m, nil
	case "enter":
		m.openDetail()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// updateSearch handles keys while the search box is focused.
// Every keystroke re-filters the table.
func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.search.SetValue("")
		m.search.Blur()
		m.mode = modeList
		m.refresh()
		return m, nil
	case "enter":
		m.search.Blur()
		m.mode = modeList
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.refresh()
	return m, cmd
}

// updateDetail handles keys on the detail view.
func (m Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc", "backspace":
		m.mode = modeList
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// resize lays the widgets out for a new terminal size.
func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.table.SetColumns(columns(width))
	m.table.SetWidth(width)
	m.table.SetHeight(max(height-chrome, 3))
	m.search.Width = max(width/2, 20)
	m.viewport.Width = width
	m.viewport.Height = max(height-2, 3)
}

// refresh recomputes the visible list from the session and the search term.
func (m *Model) refresh() {
	m.visible = m.session.Search(m.search.Value())

	rows := make([]table.Row, len(m.visible))
	for i, lib := range m.visible {
		rows[i] = table.Row{
			lib.Name,
			orNA(lib.Version),
			lib.VersionStatus().Label(),
			orNA(lib.Author),
			orNA(lib.Source),
		}
	}
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(max(len(rows)-1, 0))
	}
}

// cycleSort sorts by the field after the current one. The session renders
// the full list; the active search is re-applied here.
func (m *Model) cycleSort() {
	next := SortFields[(slices.Index(SortFields, m.session.SortField())+1)%len(SortFields)]
	if _, err := m.session.Sort(next); err != nil {
		m.setError(err)
		return
	}
	m.refresh()
	m.setStatus("Sorted by " + next)
}

// openDetail switches to the detail view of the selected library.
func (m *Model) openDetail() {
	lib, ok := m.Selected()
	if !ok {
		return
	}

	doc := report.DetailMarkdown(m.session.DetailsFor(lib))
	m.viewport.SetContent(m.renderMarkdown(doc))
	m.viewport.GotoTop()
	m.mode = modeDetail
}

// renderMarkdown renders doc with glamour, falling back to the raw
// Markdown when rendering fails.
func (m *Model) renderMarkdown(doc string) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(m.glamourStyle),
		glamour.WithWordWrap(max(m.width-4, 20)),
	)
	if err != nil {
		m.logger.Warn("failed to create markdown renderer", "error", err)
		return doc
	}
	out, err := r.Render(doc)
	if err != nil {
		m.logger.Warn("failed to render detail", "error", err)
		return doc
	}
	return out
}

// reload returns a command that re-reads the export, or nil when the
// model has nowhere to reload from.
func (m *Model) reload() tea.Cmd {
	if m.source == nil || m.location == "" {
		m.setStatus("Nothing to reload")
		return nil
	}
	m.setStatus("Reloading...")
	return readCmd(m.ctx, m.source, m.location)
}

// handleLoaded loads new content into the session. A failure keeps the
// previous data unless the session is configured to clear it.
func (m *Model) handleLoaded(msg LoadedMsg) {
	if _, err := m.session.LoadContent(m.ctx, msg.Location, msg.Content); err != nil {
		m.setError(err)
		m.refresh()
		return
	}
	m.refresh()
	m.setStatus(fmt.Sprintf("Loaded %d libraries", len(m.session.Libraries())))
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusIsErr = false
}

func (m *Model) setError(err error) {
	m.status = err.Error()
	m.statusIsErr = true
}

// Selected returns the library under the cursor.
func (m Model) Selected() (model.Library, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.visible) {
		return model.Library{}, false
	}
	return m.visible[i], true
}

// Visible returns the libraries currently shown, in display order.
func (m Model) Visible() []model.Library {
	return slices.Clone(m.visible)
}

// Status returns the status line text and whether it reports an error.
func (m Model) Status() (string, bool) {
	return m.status, m.statusIsErr
}

// View implements tea.Model.
func (m Model) View() string {
	if m.mode == modeDetail {
		return m.viewport.View() + "\n" +
			m.styles.Muted.Render("[↑/↓] Scroll  [Esc] Back  [q] Quit")
	}

	var sb strings.Builder

	title := "libcatalog"
	if loc := m.session.Location(); loc != "" {
		title += "  " + m.styles.Muted.Render(loc)
	}
	sb.WriteString(m.styles.Title.Render(title) + "\n")

	st := m.session.Stats()
	stats := fmt.Sprintf("Total records: %d | Unique libraries: %d | With version: %d | Sort: %s",
		st.Total, st.Unique, st.WithVersion, m.session.SortField())
	sb.WriteString(m.styles.Stats.Render(stats) + "\n")

	box := m.styles.SearchBox
	if m.mode == modeSearch {
		box = m.styles.SearchFocus
	}
	sb.WriteString(box.Render(m.search.View()) + "\n")

	if len(m.visible) == 0 {
		sb.WriteString(m.styles.Muted.Render(report.NoResults) + "\n")
	} else {
		sb.WriteString(m.table.View() + "\n")
		if lib, ok := m.Selected(); ok {
			sb.WriteString(lib.Name + "  " + m.styles.Badge(lib.VersionStatus()) + "\n")
		}
	}

	if total := len(m.session.Libraries()); len(m.visible) != total {
		sb.WriteString(m.styles.Muted.Render(fmt.Sprintf("Showing %d of %d libraries", len(m.visible), total)) + "\n")
	}

	if m.status != "" {
		if m.statusIsErr {
			sb.WriteString(m.styles.Error.Render("Error: "+m.status) + "\n")
		} else {
			sb.WriteString(m.styles.Info.Render(m.status) + "\n")
		}
	}

	sb.WriteString(m.styles.Muted.Render("[/] Search  [s] Sort  [Enter] Details  [r] Reload  [q] Quit"))
	return sb.String()
}

// orNA returns report.NotAvailable for blank values.
func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return report.NotAvailable
	}
	return s
}
