package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

// TestNewConfig verifies that NewConfig returns a Config with all expected default values.
// Changes to defaults must be intentional; this test fails otherwise.
func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()

	t.Run("default Locale is en", func(t *testing.T) {
		t.Parallel()
		if cfg.Locale != "en" {
			t.Errorf("expected Locale to be 'en', got '%s'", cfg.Locale)
		}
	})

	t.Run("default Sort is name", func(t *testing.T) {
		t.Parallel()
		if cfg.Sort != "name" {
			t.Errorf("expected Sort to be 'name', got '%s'", cfg.Sort)
		}
	})

	t.Run("default ClearOnParseError is false", func(t *testing.T) {
		t.Parallel()
		if cfg.ClearOnParseError {
			t.Error("expected ClearOnParseError to be false")
		}
	})

	t.Run("default WatchDebounce is 200ms", func(t *testing.T) {
		t.Parallel()
		if cfg.WatchDebounce != 200*time.Millisecond {
			t.Errorf("expected WatchDebounce to be 200ms, got %v", cfg.WatchDebounce)
		}
	})

	t.Run("default inventory settings", func(t *testing.T) {
		t.Parallel()
		if diff := cmp.Diff([]string{".cpp", ".h", ".ino"}, cfg.InventoryExtensions); diff != "" {
			t.Errorf("InventoryExtensions mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff([]string{".git"}, cfg.InventoryExcludeDirs); diff != "" {
			t.Errorf("InventoryExcludeDirs mismatch (-want +got):\n%s", diff)
		}
		if cfg.InventoryConcurrency != 8 {
			t.Errorf("expected InventoryConcurrency to be 8, got %d", cfg.InventoryConcurrency)
		}
	})

	t.Run("defaults are valid", func(t *testing.T) {
		t.Parallel()
		if err := cfg.Validate(); err != nil {
			t.Errorf("expected defaults to validate, got %v", err)
		}
	})

	t.Run("default lists are not shared", func(t *testing.T) {
		t.Parallel()
		other := NewConfig()
		other.InventoryExtensions[0] = ".c"
		if NewConfig().InventoryExtensions[0] != ".cpp" {
			t.Error("expected each Config to own its extension list")
		}
	})
}

// TestConfigValidate tests the Validate method with various configurations.
// Each test case is designed to test one specific validation rule.
func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr error
	}{
		{
			name:    "valid config returns nil",
			modify:  func(*Config) {},
			wantErr: nil,
		},
		{
			name:    "regional locale is valid",
			modify:  func(c *Config) { c.Locale = "sv-SE" },
			wantErr: nil,
		},
		{
			name:    "malformed locale returns ErrInvalidLocale",
			modify:  func(c *Config) { c.Locale = "not a locale!" },
			wantErr: ErrInvalidLocale,
		},
		{
			name:    "empty locale returns ErrInvalidLocale",
			modify:  func(c *Config) { c.Locale = "" },
			wantErr: ErrInvalidLocale,
		},
		{
			name:    "custom column is a valid sort field",
			modify:  func(c *Config) { c.Sort = "license" },
			wantErr: nil,
		},
		{
			name:    "blank sort returns ErrInvalidSortField",
			modify:  func(c *Config) { c.Sort = "  " },
			wantErr: ErrInvalidSortField,
		},
		{
			name:    "zero debounce is valid",
			modify:  func(c *Config) { c.WatchDebounce = 0 },
			wantErr: nil,
		},
		{
			name:    "negative debounce returns ErrInvalidWatchDebounce",
			modify:  func(c *Config) { c.WatchDebounce = -time.Second },
			wantErr: ErrInvalidWatchDebounce,
		},
		{
			name:    "no extensions returns ErrNoInventoryExtensions",
			modify:  func(c *Config) { c.InventoryExtensions = nil },
			wantErr: ErrNoInventoryExtensions,
		},
		{
			name:    "zero concurrency returns ErrInvalidConcurrency",
			modify:  func(c *Config) { c.InventoryConcurrency = 0 },
			wantErr: ErrInvalidConcurrency,
		},
		{
			name:    "json and markdown both enabled returns ErrConflictingReportFormats",
			modify:  func(c *Config) { c.JSONReport, c.MarkdownReport = true, true },
			wantErr: ErrConflictingReportFormats,
		},
		{
			name:    "json only is valid",
			modify:  func(c *Config) { c.JSONReport = true },
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := NewConfig()
			tt.modify(cfg)

			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

// TestFileApply tests merging a configuration file onto the defaults.
func TestFileApply(t *testing.T) {
	t.Parallel()

	t.Run("empty file keeps defaults", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		(&File{}).Apply(cfg)

		if diff := cmp.Diff(NewConfig(), cfg); diff != "" {
			t.Errorf("config changed (-want +got):\n%s", diff)
		}
	})

	t.Run("set values override defaults", func(t *testing.T) {
		t.Parallel()

		clearOnError := true
		debounce := time.Second
		file := &File{
			Locale:            "sv",
			Sort:              "author",
			ClearOnParseError: &clearOnError,
			WatchDebounce:     &debounce,
			Inventory: InventoryFile{
				Extensions:  []string{"cpp", ".hpp", ""},
				ExcludeDirs: []string{"build", ".pio"},
				Concurrency: 2,
			},
		}

		cfg := NewConfig()
		file.Apply(cfg)

		if cfg.Locale != "sv" || cfg.Sort != "author" {
			t.Errorf("unexpected locale/sort: %q/%q", cfg.Locale, cfg.Sort)
		}
		if !cfg.ClearOnParseError {
			t.Error("expected ClearOnParseError true")
		}
		if cfg.WatchDebounce != time.Second {
			t.Errorf("expected WatchDebounce 1s, got %v", cfg.WatchDebounce)
		}
		if diff := cmp.Diff([]string{".cpp", ".hpp"}, cfg.InventoryExtensions); diff != "" {
			t.Errorf("InventoryExtensions mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff([]string{"build", ".pio"}, cfg.InventoryExcludeDirs); diff != "" {
			t.Errorf("InventoryExcludeDirs mismatch (-want +got):\n%s", diff)
		}
		if cfg.InventoryConcurrency != 2 {
			t.Errorf("expected InventoryConcurrency 2, got %d", cfg.InventoryConcurrency)
		}
	})

	t.Run("explicit false is applied", func(t *testing.T) {
		t.Parallel()

		off := false
		cfg := NewConfig()
		cfg.ClearOnParseError = true
		(&File{ClearOnParseError: &off}).Apply(cfg)

		if cfg.ClearOnParseError {
			t.Error("expected ClearOnParseError false")
		}
	})

	t.Run("nil file is a no-op", func(t *testing.T) {
		t.Parallel()

		var file *File
		cfg := NewConfig()
		file.Apply(cfg)

		if cfg.Locale != DefaultLocale {
			t.Errorf("expected default locale, got %q", cfg.Locale)
		}
	})
}

// TestLoadConfigFile tests the LoadConfigFile function.
func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("returns ErrConfigNotFound for non-existent file", func(t *testing.T) {
		t.Parallel()

		cfg, err := LoadConfigFile("/nonexistent/path/.libcatalog")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("expected ErrConfigNotFound, got: %v", err)
		}
		if cfg != nil {
			t.Error("expected nil config when file not found")
		}
	})

	t.Run("loads valid YAML config", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), ".libcatalog")
		content := `locale: de
sort: version
clear_on_parse_error: true
watch_debounce: 500ms
inventory:
  extensions:
    - .cpp
    - .ino
  exclude_dirs:
    - .git
    - build
  concurrency: 4
`
		if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		file, err := LoadConfigFile(configPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if file.Locale != "de" || file.Sort != "version" {
			t.Errorf("unexpected locale/sort: %q/%q", file.Locale, file.Sort)
		}
		if file.ClearOnParseError == nil || !*file.ClearOnParseError {
			t.Error("expected clear_on_parse_error true")
		}
		if file.WatchDebounce == nil || *file.WatchDebounce != 500*time.Millisecond {
			t.Errorf("expected watch_debounce 500ms, got %v", file.WatchDebounce)
		}
		if diff := cmp.Diff([]string{".git", "build"}, file.Inventory.ExcludeDirs); diff != "" {
			t.Errorf("exclude_dirs mismatch (-want +got):\n%s", diff)
		}
		if file.Inventory.Concurrency != 4 {
			t.Errorf("expected concurrency 4, got %d", file.Inventory.Concurrency)
		}
	})

	t.Run("returns error for invalid YAML", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), ".libcatalog")
		if err := os.WriteFile(configPath, []byte(`invalid: yaml: content: [}`), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		_, err := LoadConfigFile(configPath)
		if err == nil {
			t.Fatal("expected error for invalid YAML")
		}
		if !strings.Contains(err.Error(), configPath) {
			t.Errorf("expected error to name the file, got %v", err)
		}
	})

	t.Run("returns error for malformed duration", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), ".libcatalog")
		if err := os.WriteFile(configPath, []byte("watch_debounce: soon\n"), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		if _, err := LoadConfigFile(configPath); err == nil {
			t.Error("expected error for malformed duration")
		}
	})
}

// TestFindConfigFile tests the FindConfigFile function.
func TestFindConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("returns explicit path if exists", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), "custom.yaml")
		if err := os.WriteFile(configPath, []byte("locale: en\n"), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		if result := FindConfigFile(configPath); result != configPath {
			t.Errorf("expected %q, got %q", configPath, result)
		}
	})

	t.Run("returns empty for non-existent explicit path", func(t *testing.T) {
		t.Parallel()

		if result := FindConfigFile("/nonexistent/path/config.yaml"); result != "" {
			t.Errorf("expected empty string, got %q", result)
		}
	})
}

// TestLoad tests resolving the effective configuration.
func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("explicit file is applied", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), "libcatalog.yaml")
		if err := os.WriteFile(configPath, []byte("sort: author\n"), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		cfg, err := Load(configPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Sort != "author" {
			t.Errorf("expected sort author, got %q", cfg.Sort)
		}
		if cfg.Locale != DefaultLocale {
			t.Errorf("expected default locale, got %q", cfg.Locale)
		}
		if cfg.ConfigFilePath != configPath {
			t.Errorf("expected ConfigFilePath %q, got %q", configPath, cfg.ConfigFilePath)
		}
	})

	t.Run("explicit missing file is an error", func(t *testing.T) {
		t.Parallel()

		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("expected ErrConfigNotFound, got %v", err)
		}
	})
}

// TestXDGConfigFile tests the XDG path helpers.
func TestXDGConfigFile(t *testing.T) {
	t.Parallel()

	dir := XDGConfigDir()
	if filepath.Base(dir) != AppName {
		t.Errorf("expected XDG config dir to end in %q, got %q", AppName, dir)
	}
	if got := XDGConfigFile(); got != filepath.Join(dir, XDGConfigFileName) {
		t.Errorf("unexpected XDG config file %q", got)
	}
}
