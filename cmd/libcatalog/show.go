package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nao1215/libcatalog/internal/ingest"
	"github.com/nao1215/libcatalog/internal/model"
	"github.com/nao1215/libcatalog/internal/report"
)

// errLibraryNotFound is returned when no library matches the reference.
var errLibraryNotFound = errors.New("library not found")

// NewShowCmd creates the show command.
func NewShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <csv> <name|id>",
		Short: "Show the details of one library",
		Long: `Show loads a CSV export and prints the detail view of one library:
general information, description, links and the files it was found in.

The library is looked up by its 16-character ID (shown by 'view --ids'
and in JSON output) or by name, case-insensitively. When several
libraries share a name, the first in sort order is shown.

Examples:
  # Show a library by name
  libcatalog show libraries.csv fastled

  # Show a library by ID as JSON
  libcatalog show --json libraries.csv 3f2a9c01d4b7e865`,
		Args: cobra.ExactArgs(2),
		RunE: runShowCmd,
	}

	addReportFlags(cmd)

	return cmd
}

// runShowCmd executes the show command.
func runShowCmd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := applyReportFlags(cmd, cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cfg.Verbose)

	ctx, cancel := signalContext(logger)
	defer cancel()

	out, closeOut, err := openOutput(cfg.ReportFile, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer closeOut()

	w, err := report.New(reportFormat(cfg), out, getVersion())
	if err != nil {
		return err
	}

	reader := ingest.NewReader(ingest.WithReaderLogger(logger))
	sess := newSession(cfg, logger, reader, detailPresenter{w: w})

	if _, err := sess.LoadFile(ctx, args[0]); err != nil {
		return err
	}

	lib, ok := sess.Find(args[1])
	if !ok {
		return fmt.Errorf("%w: %s", errLibraryNotFound, args[1])
	}
	if err := sess.Show(lib); err != nil {
		return err
	}
	return w.Flush()
}

// detailPresenter forwards only detail views; the list rendered after a
// load is dropped.
type detailPresenter struct {
	w report.Writer
}

// Render implements session.Presenter.
func (detailPresenter) Render([]model.Library) error {
	return nil
}

// ShowDetail implements session.Presenter.
func (p detailPresenter) ShowDetail(d model.Detail) error {
	return p.w.ShowDetail(d)
}
