package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/nao1215/libcatalog/internal/catalog"
	"github.com/nao1215/libcatalog/internal/config"
	"github.com/nao1215/libcatalog/internal/ingest"
	"github.com/nao1215/libcatalog/internal/model"
	"github.com/nao1215/libcatalog/internal/report"
	"github.com/nao1215/libcatalog/internal/session"
	"github.com/nao1215/libcatalog/internal/watch"
)

// NewViewCmd creates the view command.
func NewViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view <csv>",
		Short: "Print the deduplicated library list of a CSV export",
		Long: `View loads a CSV export, merges records that describe the same library
and prints the result.

The first line of the file names the columns. Recognized columns are
name, github_url, homepage, version, latest_version, author, source,
description and files_found_in; other columns are kept and searchable.
Values are split on every comma; quoting is not supported.

With --watch the file is watched and the list is printed again every
time it changes, until interrupted. JSON and Markdown output then
contain one document per load.

Examples:
  # Print the catalog sorted by name
  libcatalog view libraries.csv

  # Sort by author using Swedish collation
  libcatalog view --sort author --locale sv libraries.csv

  # Only show libraries mentioning "sensor", with statistics
  libcatalog view --search sensor --stats libraries.csv

  # Write a Markdown report
  libcatalog view --markdown -o report.md libraries.csv

  # Write a JSON report and still see the table
  libcatalog view --json -o report.json --tee libraries.csv

  # Re-print whenever the export changes
  libcatalog view --watch libraries.csv`,
		Args: cobra.ExactArgs(1),
		RunE: runViewCmd,
	}

	cmd.Flags().StringP("sort", "s", "",
		"Field to sort by, e.g. name, author, version (default from config: name)")
	cmd.Flags().StringP("locale", "l", "",
		"Collation locale as a BCP 47 tag, e.g. en or sv (default from config: en)")
	cmd.Flags().StringP("search", "q", "",
		"Only show libraries with a field containing this term (case-insensitive)")
	cmd.Flags().Bool("stats", false,
		"Show the number of records, unique libraries and libraries with a version")
	cmd.Flags().Bool("ids", false,
		"Add library ID and file count columns to the text table")
	cmd.Flags().BoolP("watch", "w", false,
		"Print again whenever the file changes")
	cmd.Flags().BoolP("tee", "t", false,
		"With --output, also print the text table to stdout")
	addReportFlags(cmd)

	return cmd
}

// viewOptions are the view flags that are not part of config.Config.
type viewOptions struct {
	search string
	stats  bool
	ids    bool
	watch  bool

	// tee receives a text copy of the output when set.
	tee io.Writer
}

// runViewCmd executes the view command.
func runViewCmd(cmd *cobra.Command, args []string) error {
	cfg, opts, err := buildViewConfig(cmd)
	if err != nil {
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

	tee, err := cmd.Flags().GetBool("tee")
	if err != nil {
		return err
	}
	if tee && cfg.ReportFile != "" {
		opts.tee = cmd.OutOrStdout()
	}

	return runView(ctx, cfg, opts, args[0], out, logger)
}

// buildViewConfig creates a Config and the view options from flags.
func buildViewConfig(cmd *cobra.Command) (*config.Config, viewOptions, error) {
	var opts viewOptions

	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, opts, err
	}
	if err := applyViewerFlags(cmd, cfg); err != nil {
		return nil, opts, err
	}
	if err := applyReportFlags(cmd, cfg); err != nil {
		return nil, opts, err
	}

	if opts.search, err = cmd.Flags().GetString("search"); err != nil {
		return nil, opts, err
	}
	if opts.stats, err = cmd.Flags().GetBool("stats"); err != nil {
		return nil, opts, err
	}
	if opts.ids, err = cmd.Flags().GetBool("ids"); err != nil {
		return nil, opts, err
	}
	if opts.watch, err = cmd.Flags().GetBool("watch"); err != nil {
		return nil, opts, err
	}

	return cfg, opts, nil
}

// runView loads path and writes it to out, then keeps reloading when
// watching until ctx is cancelled.
func runView(ctx context.Context, cfg *config.Config, opts viewOptions, path string, out io.Writer, logger *slog.Logger) error {
	var w report.Writer
	if format := reportFormat(cfg); format == report.FormatText && opts.ids {
		w = report.NewSimpleWriter(out, report.WithVerbose(true))
	} else {
		var err error
		if w, err = report.New(format, out, getVersion()); err != nil {
			return err
		}
	}
	if opts.tee != nil {
		w = report.NewMultiWriter(w, report.NewSimpleWriter(opts.tee, report.WithVerbose(opts.ids)))
	}

	reader := ingest.NewReader(ingest.WithReaderLogger(logger))
	sess := newSession(cfg, logger, reader, &viewPresenter{
		Writer: w,
		term:   opts.search,
		stats:  opts.stats,
	})

	if _, err := sess.LoadFile(ctx, path); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if !opts.watch {
		return nil
	}
	return watchView(ctx, cfg, path, sess, w, reader, logger)
}

// watchView re-renders the catalog on every change of path.
// The session is only touched from the watcher's goroutine from here on.
func watchView(ctx context.Context, cfg *config.Config, path string, sess *session.Session, w report.Writer, source ingest.Source, logger *slog.Logger) error {
	watcher, err := watch.New(path, func(content []byte) {
		if _, err := sess.LoadContent(ctx, path, content); err != nil {
			// the session keeps the previous catalog and logged the cause
			return
		}
		if err := w.Flush(); err != nil {
			logger.Error("failed to write output", "error", err)
		}
	},
		watch.WithDebounce(cfg.WatchDebounce),
		watch.WithSource(source),
		watch.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	if err := watcher.Start(ctx); err != nil {
		watcher.Stop()
		return err
	}
	defer watcher.Stop()

	logger.Info("watching for changes", "path", watcher.Path())
	<-ctx.Done()
	return nil
}

// viewPresenter forwards what the session renders to a report writer.
// While a search term is set, every list is filtered before it is
// written, and statistics are only written when asked for.
type viewPresenter struct {
	report.Writer

	term  string
	stats bool
}

// Render writes the libraries matching the search term.
func (p *viewPresenter) Render(libs []model.Library) error {
	return p.Writer.Render(catalog.Filter(libs, p.term))
}

// ShowStats writes stats when enabled.
func (p *viewPresenter) ShowStats(stats model.Stats) error {
	if !p.stats {
		return nil
	}
	return p.Writer.ShowStats(stats)
}
