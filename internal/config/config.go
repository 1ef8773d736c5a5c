package config

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"golang.org/x/text/language"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "libcatalog"

	// DefaultLocale is the collation language used for sorting.
	DefaultLocale = "en"

	// DefaultSort is the field a freshly loaded catalog is ordered by.
	DefaultSort = "name"

	// DefaultWatchDebounce coalesces the burst of write events an editor
	// or exporter produces when it saves a file.
	DefaultWatchDebounce = 200 * time.Millisecond

	// DefaultInventoryConcurrency bounds the number of files read at once
	// by the inventory scanner.
	DefaultInventoryConcurrency = 8
)

// DefaultInventoryExtensions are the source file extensions the inventory
// scanner reads for includes.
func DefaultInventoryExtensions() []string {
	return []string{".cpp", ".h", ".ino"}
}

// DefaultInventoryExcludeDirs are directory names the inventory scanner
// never descends into.
func DefaultInventoryExcludeDirs() []string {
	return []string{".git"}
}

// Config holds all configuration options for libcatalog.
// It is populated from the config file first and CLI flags second,
// then passed through the application rather than kept in global state.
//
// Design decision: We keep a single flat struct as the option count is
// small; the inventory options carry an Inventory prefix instead of
// living in a sub-struct.
type Config struct {
	// Locale is the BCP 47 tag used for collation, e.g. "en" or "sv".
	Locale string

	// Sort is the initial sort field after every load.
	Sort string

	// ClearOnParseError empties the catalog when a load fails to parse.
	// When false, the previous catalog stays visible.
	ClearOnParseError bool

	// WatchDebounce is the quiet period the watcher waits for before
	// reloading a changed file.
	WatchDebounce time.Duration

	// InventoryExtensions are the source file extensions scanned for includes.
	InventoryExtensions []string

	// InventoryExcludeDirs are directory names skipped while scanning.
	InventoryExcludeDirs []string

	// InventoryConcurrency is the number of files read in parallel.
	InventoryConcurrency int

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// ConfigFilePath is the path to the configuration file.
	// If empty, the standard locations are searched (see FindConfigFile).
	ConfigFilePath string

	// JSONReport selects JSON output. Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport selects Markdown output. Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path. Empty means stdout.
	ReportFile string
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Locale:               DefaultLocale,
		Sort:                 DefaultSort,
		WatchDebounce:        DefaultWatchDebounce,
		InventoryExtensions:  DefaultInventoryExtensions(),
		InventoryExcludeDirs: DefaultInventoryExcludeDirs(),
		InventoryConcurrency: DefaultInventoryConcurrency,
	}
}

// XDGConfigDir returns the XDG config directory for libcatalog.
// On Linux: ~/.config/libcatalog
// On macOS: ~/Library/Application Support/libcatalog
// On Windows: %APPDATA%\libcatalog
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// XDGConfigFile returns the path of the config file inside XDGConfigDir.
func XDGConfigFile() string {
	return filepath.Join(XDGConfigDir(), XDGConfigFileName)
}

// Validate checks if the configuration is valid.
// It returns the first problem found as a sentinel error.
func (c *Config) Validate() error {
	if _, err := language.Parse(c.Locale); err != nil {
		return ErrInvalidLocale
	}

	if strings.TrimSpace(c.Sort) == "" {
		return ErrInvalidSortField
	}

	if c.WatchDebounce < 0 {
		return ErrInvalidWatchDebounce
	}

	if len(c.InventoryExtensions) == 0 {
		return ErrNoInventoryExtensions
	}

	if c.InventoryConcurrency <= 0 {
		return ErrInvalidConcurrency
	}

	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	return nil
}
