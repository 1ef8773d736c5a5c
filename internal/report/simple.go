package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"github.com/nao1215/libcatalog/internal/model"
)

// SimpleWriter outputs human-readable tables.
// Each call writes immediately; Flush is a no-op.
//
// Design decision: Colour is only used when the output is a terminal, so
// piping to a file or another tool yields plain text.
type SimpleWriter struct {
	baseWriter

	// colorize enables ANSI colours for version badges and headers.
	colorize bool

	// verbose adds the library ID and file count columns.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithColor forces colour on or off, overriding terminal detection.
func WithColor(colorize bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.colorize = colorize
	}
}

// WithVerbose enables the ID and file count columns.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
		colorize:   shouldColorize(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Render writes the libraries as a table, one row per library.
func (w *SimpleWriter) Render(libs []model.Library) error {
	if len(libs) == 0 {
		_, err := fmt.Fprintln(w.output, NoResults)
		return err
	}

	headers := []string{"#", "Name", "Version", "Status", "Author", "Source"}
	if w.verbose {
		headers = append(headers, "Files", "ID")
	}

	rows := make([][]string, 0, len(libs))
	for i, lib := range libs {
		row := []string{
			humanize.Comma(int64(i + 1)),
			truncateString(displayName(lib.Name), 40),
			orNA(lib.Version),
			w.badge(lib.VersionStatus()),
			truncateString(orNA(lib.Author), 30),
			orNA(lib.Source),
		}
		if w.verbose {
			row = append(row, humanize.Comma(int64(len(lib.Files))), lib.ID())
		}
		rows = append(rows, row)
	}

	aligns := map[int]text.Align{1: text.AlignRight}
	if w.verbose {
		aligns[7] = text.AlignRight
	}

	_, err := fmt.Fprintln(w.output, renderTable(headers, rows, aligns))
	return err
}

// ShowStats writes a one-line summary.
func (w *SimpleWriter) ShowStats(stats model.Stats) error {
	line := fmt.Sprintf("Total records: %s | Unique libraries: %s | With version: %s",
		humanize.Comma(int64(stats.Total)),
		humanize.Comma(int64(stats.Unique)),
		humanize.Comma(int64(stats.WithVersion)),
	)
	_, err := fmt.Fprintln(w.output, line)
	return err
}

// ShowDetail writes the detail view as four sections.
func (w *SimpleWriter) ShowDetail(d model.Detail) error {
	var sb strings.Builder

	sb.WriteString(w.heading(displayName(d.Title)))
	sb.WriteString("\n")

	general := [][]string{
		{"Version", orNA(d.General.Version) + "  " + w.badge(d.General.Status)},
		{"Latest version", orNA(d.General.LatestVersion)},
		{"Author", orNA(d.General.Author)},
		{"Source", orNA(d.General.Source)},
	}
	for _, f := range d.Extras {
		general = append(general, []string{f.Name, orNA(f.Value)})
	}
	sb.WriteString(w.section("General information"))
	sb.WriteString(renderTable([]string{"Field", "Value"}, general, nil))
	sb.WriteString("\n\n")

	sb.WriteString(w.section("Description"))
	if strings.TrimSpace(d.Description) == "" {
		sb.WriteString(NoDescription)
	} else {
		sb.WriteString(d.Description)
	}
	sb.WriteString("\n\n")

	sb.WriteString(w.section("Links"))
	sb.WriteString(fmt.Sprintf("GitHub:   %s\n", orNA(d.Links.GitHub)))
	sb.WriteString(fmt.Sprintf("Homepage: %s\n\n", orNA(d.Links.Homepage)))

	sb.WriteString(w.section(fmt.Sprintf("Files found (%d)", len(d.Files))))
	if len(d.Files) == 0 {
		sb.WriteString(NoFiles + "\n")
	} else {
		for _, f := range d.Files {
			sb.WriteString("  " + f + "\n")
		}
	}

	_, err := io.WriteString(w.output, sb.String())
	return err
}

// Flush implements Writer.
func (w *SimpleWriter) Flush() error {
	return nil
}

// badge returns the version status label, coloured on terminals.
func (w *SimpleWriter) badge(s model.VersionStatus) string {
	label := s.Label()
	if !w.colorize {
		return label
	}
	switch s {
	case model.VersionCurrent:
		return text.Colors{text.FgGreen}.Sprint(label)
	case model.VersionOutdated:
		return text.Colors{text.FgRed}.Sprint(label)
	default:
		return text.Colors{text.FgHiBlack}.Sprint(label)
	}
}

// heading returns the detail title line.
func (w *SimpleWriter) heading(title string) string {
	line := "== " + strings.TrimSpace(title) + " =="
	if w.colorize {
		line = text.Colors{text.FgBlue, text.Bold}.Sprint(line)
	}
	return line + "\n"
}

// section returns a section header line.
func (w *SimpleWriter) section(title string) string {
	if w.colorize {
		return text.Colors{text.Bold}.Sprint(title) + "\n"
	}
	return title + "\n" + strings.Repeat("-", len(title)) + "\n"
}

// renderTable renders rows under headers with the rounded style.
// aligns maps 1-based column numbers to an alignment; others are left aligned.
func renderTable(headers []string, rows [][]string, aligns map[int]text.Align) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if a, ok := aligns[i+1]; ok {
			align = a
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

// shouldColorize reports whether writer is a terminal.
func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
