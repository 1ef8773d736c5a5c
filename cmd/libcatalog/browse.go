package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/nao1215/libcatalog/internal/config"
	"github.com/nao1215/libcatalog/internal/ingest"
	seclog "github.com/nao1215/libcatalog/internal/log"
	"github.com/nao1215/libcatalog/internal/tui"
	"github.com/nao1215/libcatalog/internal/watch"
)

// browseLogFile is the log file of the browser, relative to the XDG state
// directory. The terminal belongs to the browser while it runs.
var browseLogFile = filepath.Join(config.AppName, "browse.log")

// NewBrowseCmd creates the browse command.
func NewBrowseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browse <csv>",
		Short: "Browse a CSV export interactively",
		Long: `Browse loads a CSV export and opens an interactive catalog in the terminal.

Keys:
  up/down, j/k   move the cursor
  /              search all fields; enter keeps the term, esc clears it
  s              cycle the sort field (name, author, version, source)
  enter          open the detail view of the selected library
  esc            leave the detail view or clear the search
  r              reload the file
  q, ctrl+c      quit

With --watch the file is reloaded whenever it changes on disk. A reload
that fails keeps the current catalog and shows the error in the status
line.

Since the terminal is used by the browser, logs go to
$XDG_STATE_HOME/libcatalog/browse.log when --verbose is set and are
discarded otherwise.

Examples:
  # Browse an export
  libcatalog browse libraries.csv

  # Follow an export that is being regenerated
  libcatalog browse --watch libraries.csv`,
		Args: cobra.ExactArgs(1),
		RunE: runBrowseCmd,
	}

	cmd.Flags().StringP("sort", "s", "",
		"Initial sort field (default from config: name)")
	cmd.Flags().StringP("locale", "l", "",
		"Collation locale as a BCP 47 tag, e.g. en or sv (default from config: en)")
	cmd.Flags().BoolP("watch", "w", false,
		"Reload whenever the file changes")
	cmd.Flags().Bool("mouse", false,
		"Enable mouse wheel scrolling (disables terminal text selection)")

	return cmd
}

// runBrowseCmd executes the browse command.
func runBrowseCmd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := applyViewerFlags(cmd, cfg); err != nil {
		return err
	}
	watchFile, err := cmd.Flags().GetBool("watch")
	if err != nil {
		return err
	}
	mouse, err := cmd.Flags().GetBool("mouse")
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger, closeLog, err := browseLogger(cfg.Verbose)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, cancel := signalContext(logger)
	defer cancel()

	path := args[0]
	reader := ingest.NewReader(ingest.WithReaderLogger(logger))
	sess := newSession(cfg, logger, reader, nil)

	// a file that cannot be loaded at all is reported before the screen opens
	if _, err := sess.LoadFile(ctx, path); err != nil {
		return err
	}

	m := tui.New(sess,
		tui.WithContext(ctx),
		tui.WithReload(reader, path),
		tui.WithLogger(logger),
	)

	var opts []tui.RunOption
	if watchFile {
		opts = append(opts, tui.WithWatch(path,
			watch.WithDebounce(cfg.WatchDebounce),
			watch.WithSource(reader),
			watch.WithLogger(logger),
		))
	}
	if mouse {
		opts = append(opts, tui.WithProgramOptions(tea.WithMouseCellMotion()))
	}

	return tui.Run(ctx, m, opts...)
}

// browseLogger returns the logger used while the browser owns the
// terminal, and a function that closes its file.
func browseLogger(verbose bool) (*slog.Logger, func(), error) {
	if !verbose {
		logger := seclog.NewSecureLogger(io.Discard, false)
		slog.SetDefault(logger)
		return logger, func() {}, nil
	}

	path, err := xdg.StateFile(browseLogFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600) //nolint:gosec // Path is derived from the XDG state directory
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	logger := seclog.NewSecureLogger(f, true)
	slog.SetDefault(logger)
	return logger, func() { _ = f.Close() }, nil //nolint:errcheck // Best effort close
}
