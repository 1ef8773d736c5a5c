package main

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Version information set at build time via ldflags.
var (
	version = ""
	commit  = ""
	date    = ""
)

// Placeholders used when no build information is available.
const (
	develVersion   = "(devel)"
	unknownSetting = "unknown"
	shortRevision  = 7
)

// buildInfo describes the running binary.
type buildInfo struct {
	Version string
	Commit  string
	Date    string
}

// currentBuild resolves the build information.
// Priority: ldflags > debug.ReadBuildInfo > placeholder.
func currentBuild() buildInfo {
	b := buildInfo{Version: version, Commit: commit, Date: date}

	if info, ok := debug.ReadBuildInfo(); ok {
		if b.Version == "" {
			b.Version = info.Main.Version
		}
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				if b.Commit == "" {
					b.Commit = s.Value
					if len(b.Commit) > shortRevision {
						b.Commit = b.Commit[:shortRevision]
					}
				}
			case "vcs.time":
				if b.Date == "" {
					b.Date = s.Value
				}
			}
		}
	}

	if b.Version == "" {
		b.Version = develVersion
	}
	if b.Commit == "" {
		b.Commit = unknownSetting
	}
	if b.Date == "" {
		b.Date = unknownSetting
	}
	return b
}

// getVersion returns the version string embedded in reports.
func getVersion() string {
	return currentBuild().Version
}

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print the version, commit hash, build date and Go runtime of libcatalog.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			short, err := cmd.Flags().GetBool("short")
			if err != nil {
				return err
			}

			b := currentBuild()
			out := cmd.OutOrStdout()
			if short {
				_, err = fmt.Fprintln(out, b.Version)
				return err
			}
			fmt.Fprintf(out, "libcatalog version %s\n", b.Version)
			fmt.Fprintf(out, "  commit: %s\n", b.Commit)
			fmt.Fprintf(out, "  built:  %s\n", b.Date)
			fmt.Fprintf(out, "  go:     %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
			return nil
		},
	}

	cmd.Flags().BoolP("short", "s", false, "Print only the version number")

	return cmd
}
