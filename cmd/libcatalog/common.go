package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nao1215/libcatalog/internal/catalog"
	"github.com/nao1215/libcatalog/internal/config"
	"github.com/nao1215/libcatalog/internal/ingest"
	seclog "github.com/nao1215/libcatalog/internal/log"
	"github.com/nao1215/libcatalog/internal/report"
	"github.com/nao1215/libcatalog/internal/session"
)

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// getConfigFlag retrieves the config path from the command or its parent.
func getConfigFlag(cmd *cobra.Command) string {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		path, err = cmd.Root().PersistentFlags().GetString("config")
		if err != nil {
			return ""
		}
	}
	return path
}

// loadConfig builds the configuration from the config file and the
// global flags. Command-specific flags are applied by the caller.
//
// If the user explicitly specified a config file, it must exist.
// Otherwise the defaults are used when no file is found.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(getConfigFlag(cmd))
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	cfg.Verbose = getVerboseFlag(cmd)
	return cfg, nil
}

// applyViewerFlags copies the sort and locale flags onto cfg when set.
func applyViewerFlags(cmd *cobra.Command, cfg *config.Config) error {
	sortField, err := cmd.Flags().GetString("sort")
	if err != nil {
		return err
	}
	if sortField != "" {
		cfg.Sort = sortField
	}

	locale, err := cmd.Flags().GetString("locale")
	if err != nil {
		return err
	}
	if locale != "" {
		cfg.Locale = locale
	}
	return nil
}

// applyReportFlags copies the output format flags onto cfg.
func applyReportFlags(cmd *cobra.Command, cfg *config.Config) error {
	var err error

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return err
	}
	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	return nil
}

// addReportFlags registers the flags read by applyReportFlags.
func addReportFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write output to the specified file path (creates directories if needed)")
}

// reportFormat returns the writer format selected in cfg.
func reportFormat(cfg *config.Config) report.Format {
	switch {
	case cfg.JSONReport:
		return report.FormatJSON
	case cfg.MarkdownReport:
		return report.FormatMarkdown
	default:
		return report.FormatText
	}
}

// setupLogger creates the structured logger for one-shot commands.
// Sensitive values such as tokens in URLs are redacted.
func setupLogger(verbose bool) *slog.Logger {
	logger := seclog.NewSecureLogger(os.Stderr, verbose)
	slog.SetDefault(logger)
	return logger
}

// signalContext returns a context that is cancelled on SIGINT or SIGTERM.
func signalContext(logger *slog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		defer signal.Stop(sigCh)
		select {
		case <-sigCh:
			logger.Info("received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}

// openOutput returns where a report is written: the file at path, or
// fallback when path is empty. The returned function closes the file.
func openOutput(path string, fallback io.Writer) (io.Writer, func(), error) {
	if path == "" {
		return fallback, func() {}, nil
	}

	// Create directories if they don't exist
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600) //nolint:gosec // User-provided output path is intentional
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil //nolint:errcheck // Best effort close after writes were checked
}

// newSession creates a session configured from cfg. presenter may be nil.
func newSession(cfg *config.Config, logger *slog.Logger, source ingest.Source, presenter session.Presenter) *session.Session {
	return session.New(
		session.WithSource(source),
		session.WithPresenter(presenter),
		session.WithSorter(catalog.NewSorter(catalog.ParseLocale(cfg.Locale))),
		session.WithInitialSort(cfg.Sort),
		session.WithClearOnParseError(cfg.ClearOnParseError),
		session.WithLogger(logger),
	)
}
