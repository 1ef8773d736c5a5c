package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/nao1215/libcatalog/internal/catalog"
	"github.com/nao1215/libcatalog/internal/model"
)

// DefaultMarkdownTitle is the document title used when none is set.
const DefaultMarkdownTitle = "Library Catalog"

// MarkdownWriter outputs views as one Markdown document.
// Calls are buffered; Flush writes the document.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides type-safe tables and lists, mermaid charts and
// GitHub-flavored alerts.
type MarkdownWriter struct {
	baseWriter

	title   string
	version string

	libs     []model.Library
	rendered bool
	stats    *model.Stats
	details  []model.Detail
}

// MarkdownWriterOption configures a MarkdownWriter.
type MarkdownWriterOption func(*MarkdownWriter)

// WithMarkdownTitle sets the document title.
func WithMarkdownTitle(title string) MarkdownWriterOption {
	return func(w *MarkdownWriter) {
		if title != "" {
			w.title = title
		}
	}
}

// WithMarkdownVersion sets the version shown in the footer.
func WithMarkdownVersion(version string) MarkdownWriterOption {
	return func(w *MarkdownWriter) {
		w.version = version
	}
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer, opts ...MarkdownWriterOption) *MarkdownWriter {
	w := &MarkdownWriter{
		baseWriter: newBaseWriter(output),
		title:      DefaultMarkdownTitle,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Render buffers the library list. A later call replaces an earlier one.
func (w *MarkdownWriter) Render(libs []model.Library) error {
	w.libs = append(w.libs[:0], libs...)
	w.rendered = true
	return nil
}

// ShowDetail buffers a detail view.
func (w *MarkdownWriter) ShowDetail(detail model.Detail) error {
	w.details = append(w.details, detail)
	return nil
}

// ShowStats buffers the statistics.
func (w *MarkdownWriter) ShowStats(stats model.Stats) error {
	w.stats = &stats
	return nil
}

// Flush writes the buffered document and resets the buffer.
func (w *MarkdownWriter) Flush() error {
	md := markdown.NewMarkdown(w.output)

	md.H1(w.title)
	md.PlainText("")

	if w.stats != nil {
		w.writeSummary(md)
	}
	if w.rendered {
		w.writeLibraries(md)
	}
	if len(w.details) > 0 {
		md.H2("Details")
		md.PlainText("")
		for _, d := range w.details {
			writeDetail(md, d, false)
		}
	}

	w.writeFooter(md)

	err := md.Build()
	w.libs, w.rendered, w.stats, w.details = nil, false, nil, nil
	return err
}

// writeSummary writes the statistics table, chart and alert.
func (w *MarkdownWriter) writeSummary(md *markdown.Markdown) {
	md.H2("Summary")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Total records", strconv.Itoa(w.stats.Total)},
			{"Unique libraries", strconv.Itoa(w.stats.Unique)},
			{"With version", strconv.Itoa(w.stats.WithVersion)},
		},
	})
	md.PlainText("")

	if !w.rendered || len(w.libs) == 0 {
		return
	}

	counts := catalog.StatusCounts(w.libs)
	w.writePieChart(md, counts)
	w.writeAlert(md, counts)
}

// writePieChart writes a mermaid pie chart of the version status distribution.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, counts map[model.VersionStatus]int) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Version Status"),
		piechart.WithShowData(true),
	)

	for _, s := range []model.VersionStatus{model.VersionCurrent, model.VersionOutdated, model.VersionUnknown} {
		if counts[s] > 0 {
			chart.LabelAndIntValue(s.Label(), uint64(counts[s]))
		}
	}

	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeAlert writes an alert summarizing how current the libraries are.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, counts map[model.VersionStatus]int) {
	total := len(w.libs)
	switch {
	case counts[model.VersionOutdated] > 0:
		md.Warningf("%d of %d libraries are outdated.", counts[model.VersionOutdated], total)
	case counts[model.VersionUnknown] == total:
		md.Note("No library has both a version and a latest version.")
	case counts[model.VersionUnknown] > 0:
		md.Importantf("%d libraries could not be checked for updates.", counts[model.VersionUnknown])
	default:
		md.Tip("All libraries are up to date.")
	}
	md.PlainText("")
}

// writeLibraries writes the library table.
func (w *MarkdownWriter) writeLibraries(md *markdown.Markdown) {
	md.H2("Libraries")
	md.PlainText("")

	if len(w.libs) == 0 {
		md.PlainText(NoResults)
		md.PlainText("")
		return
	}

	rows := make([][]string, len(w.libs))
	for i, lib := range w.libs {
		rows[i] = []string{
			escapeCell(displayName(lib.Name)),
			escapeCell(orNA(lib.Version)),
			escapeCell(orNA(lib.LatestVersion)),
			lib.VersionStatus().Label(),
			escapeCell(truncateString(orNA(lib.Author), 40)),
			escapeCell(orNA(lib.Source)),
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Name", "Version", "Latest", "Status", "Author", "Source"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeFooter writes the document footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	if w.version != "" {
		md.PlainTextf("*Generated by libcatalog %s*", w.version)
		return
	}
	md.PlainText("*Generated by libcatalog*")
}

// DetailMarkdown returns the detail view of d as a standalone Markdown
// document. The interactive browser renders it for the detail pane.
func DetailMarkdown(d model.Detail) string {
	md := markdown.NewMarkdown(io.Discard)
	writeDetail(md, d, true)
	return md.String()
}

// writeDetail writes the four detail sections. A standalone detail uses
// H1/H2 headings; inside a document it is nested one level down.
func writeDetail(md *markdown.Markdown, d model.Detail, standalone bool) {
	title, section := md.H3, md.H4
	if standalone {
		title, section = md.H1, md.H2
	}

	title(displayName(d.Title))
	md.PlainText("")

	section("General information")
	md.PlainText("")
	rows := [][]string{
		{"Version", escapeCell(orNA(d.General.Version)) + " (" + d.General.Status.Label() + ")"},
		{"Latest version", escapeCell(orNA(d.General.LatestVersion))},
		{"Author", escapeCell(orNA(d.General.Author))},
		{"Source", escapeCell(orNA(d.General.Source))},
	}
	for _, f := range d.Extras {
		rows = append(rows, []string{escapeCell(f.Name), escapeCell(orNA(f.Value))})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Field", "Value"},
		Rows:   rows,
	})
	md.PlainText("")

	section("Description")
	md.PlainText("")
	if strings.TrimSpace(d.Description) == "" {
		md.PlainText(NoDescription)
	} else {
		md.PlainText(d.Description)
	}
	md.PlainText("")

	section("Links")
	md.PlainText("")
	md.BulletList(
		"GitHub: "+linkOrNA(d.Links.GitHub),
		"Homepage: "+linkOrNA(d.Links.Homepage),
	)
	md.PlainText("")

	section(fmt.Sprintf("Files found (%d)", len(d.Files)))
	md.PlainText("")
	if len(d.Files) == 0 {
		md.PlainText(NoFiles)
	} else {
		files := make([]string, len(d.Files))
		for i, f := range d.Files {
			files[i] = markdown.Code(f)
		}
		md.BulletList(files...)
	}
	md.PlainText("")
}

// linkOrNA formats url as a Markdown link, or NotAvailable when blank.
func linkOrNA(url string) string {
	if strings.TrimSpace(url) == "" {
		return NotAvailable
	}
	return markdown.Link(url, url)
}

// escapeCell escapes characters that would break a table row.
func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
