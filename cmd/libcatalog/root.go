// Package main provides the entry point for the libcatalog CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for libcatalog.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "libcatalog",
		Short: "Browse and deduplicate software library exports",
		Long: `libcatalog reads a CSV export of software library metadata, merges
records that describe the same library and presents the result as a
sortable, searchable catalog with a detail view per library.

A library is identified by its name, GitHub URL and homepage, compared
case-insensitively. Rows missing any of the three are skipped.

Settings are read from .libcatalog in the current directory,
$XDG_CONFIG_HOME/libcatalog/config.yaml or ~/.libcatalog.
Run 'libcatalog init' to create a commented template.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringP("config", "c", "",
		"Configuration file path (default: .libcatalog in current, XDG config or home directory)")

	// Add subcommands
	cmd.AddCommand(NewViewCmd())
	cmd.AddCommand(NewShowCmd())
	cmd.AddCommand(NewBrowseCmd())
	cmd.AddCommand(NewInventoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
