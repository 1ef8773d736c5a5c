package config

import "time"

// File represents the structure of the .libcatalog configuration file.
// Every key is optional; an absent key leaves the default in place.
type File struct {
	// Locale is the collation language tag.
	Locale string `yaml:"locale,omitempty"`

	// Sort is the initial sort field.
	Sort string `yaml:"sort,omitempty"`

	// ClearOnParseError is a pointer so an explicit false can be told apart
	// from an absent key.
	ClearOnParseError *bool `yaml:"clear_on_parse_error,omitempty"`

	// WatchDebounce accepts Go duration strings such as "200ms".
	WatchDebounce *time.Duration `yaml:"watch_debounce,omitempty"`

	// Inventory holds the scanner settings.
	Inventory InventoryFile `yaml:"inventory,omitempty"`
}

// InventoryFile holds the inventory section of the configuration file.
type InventoryFile struct {
	// Extensions replaces the default source file extensions.
	Extensions []string `yaml:"extensions,omitempty"`

	// ExcludeDirs replaces the default excluded directory names.
	ExcludeDirs []string `yaml:"exclude_dirs,omitempty"`

	// Concurrency overrides the number of files read in parallel.
	Concurrency int `yaml:"concurrency,omitempty"`
}

// Apply copies every value set in the file onto cfg.
// Lists replace the defaults instead of extending them.
func (f *File) Apply(cfg *Config) {
	if f == nil || cfg == nil {
		return
	}

	if f.Locale != "" {
		cfg.Locale = f.Locale
	}
	if f.Sort != "" {
		cfg.Sort = f.Sort
	}
	if f.ClearOnParseError != nil {
		cfg.ClearOnParseError = *f.ClearOnParseError
	}
	if f.WatchDebounce != nil {
		cfg.WatchDebounce = *f.WatchDebounce
	}
	if len(f.Inventory.Extensions) > 0 {
		cfg.InventoryExtensions = NormalizeExtensions(f.Inventory.Extensions)
	}
	if len(f.Inventory.ExcludeDirs) > 0 {
		cfg.InventoryExcludeDirs = append([]string(nil), f.Inventory.ExcludeDirs...)
	}
	if f.Inventory.Concurrency != 0 {
		cfg.InventoryConcurrency = f.Inventory.Concurrency
	}
}

// NormalizeExtensions makes every extension start with a dot, so "cpp"
// and ".cpp" are both accepted.
func NormalizeExtensions(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		if ext == "" {
			continue
		}
		if ext[0] != '.' {
			ext = "." + ext
		}
		out = append(out, ext)
	}
	return out
}
