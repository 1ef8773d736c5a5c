package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/viant/afs"

	"github.com/nao1215/libcatalog/internal/catalog"
	"github.com/nao1215/libcatalog/internal/config"
	"github.com/nao1215/libcatalog/internal/inventory"
	"github.com/nao1215/libcatalog/internal/model"
)

// NewInventoryCmd creates the inventory command.
func NewInventoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inventory <dir>",
		Short: "Build a library export from an Arduino or PlatformIO project",
		Long: `Inventory scans a project directory and writes the libraries it uses as
a CSV export that 'view' and 'browse' can read.

Libraries are found in:
- #include directives of source files (.cpp, .h and .ino by default);
  version macros, GitHub links, @author tags and the first doc comment
  of the same file fill in their metadata
- lib_deps of every [env:*] section of platformio.ini at the project root
- library.properties, library.json and package_index.json files

No network lookups are made, so latest_version stays empty.
The viewer skips libraries without a GitHub URL or homepage; their
number is reported after the scan.

Examples:
  # Scan the current directory into libraries.csv
  libcatalog inventory .

  # Scan a project and write the export elsewhere
  libcatalog inventory ./firmware -o exports/firmware.csv

  # Only look at sketches, skipping vendored code
  libcatalog inventory --ext ino --exclude .git,vendor ./firmware`,
		Args: cobra.ExactArgs(1),
		RunE: runInventoryCmd,
	}

	cmd.Flags().StringP("output", "o", inventory.DefaultOutput,
		"Output CSV path or afs URL")
	cmd.Flags().StringSliceP("ext", "e", nil,
		"Source file extensions to scan (default from config: .cpp,.h,.ino)")
	cmd.Flags().StringSliceP("exclude", "x", nil,
		"Directory names to skip (default from config: .git)")
	cmd.Flags().Int("concurrency", 0,
		"Number of files read in parallel (default from config: 8)")

	return cmd
}

// runInventoryCmd executes the inventory command.
func runInventoryCmd(cmd *cobra.Command, args []string) error {
	cfg, output, err := buildInventoryConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cfg.Verbose)

	ctx, cancel := signalContext(logger)
	defer cancel()

	return runInventory(ctx, cfg, args[0], output, cmd.OutOrStdout(), logger)
}

// buildInventoryConfig creates a Config from the config file and flags,
// and returns the output location.
func buildInventoryConfig(cmd *cobra.Command) (*config.Config, string, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, "", err
	}

	exts, err := cmd.Flags().GetStringSlice("ext")
	if err != nil {
		return nil, "", err
	}
	if len(exts) > 0 {
		cfg.InventoryExtensions = config.NormalizeExtensions(exts)
	}

	if cmd.Flags().Changed("exclude") {
		cfg.InventoryExcludeDirs, err = cmd.Flags().GetStringSlice("exclude")
		if err != nil {
			return nil, "", err
		}
	}

	concurrency, err := cmd.Flags().GetInt("concurrency")
	if err != nil {
		return nil, "", err
	}
	if cmd.Flags().Changed("concurrency") {
		cfg.InventoryConcurrency = concurrency
	}

	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return nil, "", err
	}

	return cfg, output, nil
}

// runInventory scans dir, writes the export to output and prints a summary.
func runInventory(ctx context.Context, cfg *config.Config, dir, output string, out io.Writer, logger *slog.Logger) error {
	scanner := inventory.NewScanner(
		inventory.WithExtensions(cfg.InventoryExtensions...),
		inventory.WithExcludeDirs(cfg.InventoryExcludeDirs...),
		inventory.WithConcurrency(cfg.InventoryConcurrency),
		inventory.WithLogger(logger),
	)

	libs, err := scanner.Scan(ctx, dir)
	if err != nil {
		return err
	}

	if err := inventory.Save(ctx, afs.New(), output, libs); err != nil {
		return err
	}

	fmt.Fprintf(out, "Found %s libraries in %s\n", humanize.Comma(int64(len(libs))), dir)
	if skipped := len(libs) - countViewable(libs); skipped > 0 {
		fmt.Fprintf(out, "%s of them have no GitHub URL or homepage and will be skipped by the viewer\n",
			humanize.Comma(int64(skipped)))
	}
	fmt.Fprintf(out, "Wrote %s\n", output)

	return nil
}

// countViewable returns how many libraries carry every identity field.
func countViewable(libs []model.Library) int {
	n := 0
	for _, lib := range libs {
		viewable := true
		for _, f := range catalog.IdentityFields {
			if lib.Field(f) == "" {
				viewable = false
				break
			}
		}
		if viewable {
			n++
		}
	}
	return n
}
