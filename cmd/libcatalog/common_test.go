package main

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/nao1215/libcatalog/internal/config"
	"github.com/nao1215/libcatalog/internal/report"
)

const testCSV = "testdata/libraries.csv"

// runCLI executes the root command with args and an empty configuration
// file, so settings in the user's home directory cannot leak in.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(cfgPath, []byte("{}\n"), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(append([]string{"--config", cfgPath}, args...))

	err := cmd.Execute()
	return out.String(), err
}

// quietLogger discards all log output.
func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// syncBuffer is a bytes.Buffer safe for one writer and one reader.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestReportFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  config.Config
		want report.Format
	}{
		{name: "default is text", cfg: config.Config{}, want: report.FormatText},
		{name: "json", cfg: config.Config{JSONReport: true}, want: report.FormatJSON},
		{name: "markdown", cfg: config.Config{MarkdownReport: true}, want: report.FormatMarkdown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := reportFormat(&tt.cfg); got != tt.want {
				t.Errorf("reportFormat() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOpenOutput(t *testing.T) {
	t.Parallel()

	t.Run("empty path uses the fallback", func(t *testing.T) {
		t.Parallel()

		var fallback bytes.Buffer
		w, closeFn, err := openOutput("", &fallback)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer closeFn()
		if w != &fallback {
			t.Error("expected the fallback writer")
		}
	})

	t.Run("creates directories and truncates", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "a", "b", "report.txt")
		if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("old content that is long"), 0600); err != nil {
			t.Fatal(err)
		}

		w, closeFn, err := openOutput(path, io.Discard)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := io.WriteString(w, "new"); err != nil {
			t.Fatal(err)
		}
		closeFn()

		got, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if string(got) != "new" {
			t.Errorf("expected %q, got %q", "new", got)
		}
	})
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("explicit missing file is an error", func(t *testing.T) {
		t.Parallel()

		_, err := runCLI(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "view", testCSV)
		if err == nil {
			t.Fatal("expected error for missing config file")
		}
		if !strings.Contains(err.Error(), "failed to load configuration") {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("file values are used", func(t *testing.T) {
		t.Parallel()

		cfgPath := filepath.Join(t.TempDir(), "config.yaml")
		if err := os.WriteFile(cfgPath, []byte("sort: author\n"), 0600); err != nil {
			t.Fatal(err)
		}

		out, err := runCLI(t, "--config", cfgPath, "view", testCSV)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		assertOrder(t, out, "cherry", "Apple", "banana")
	})
}

// assertOrder checks that every name occurs in out, in the given order.
func assertOrder(t *testing.T, out string, names ...string) {
	t.Helper()

	last := -1
	for _, name := range names {
		i := strings.Index(out, name)
		if i < 0 {
			t.Errorf("expected output to contain %q:\n%s", name, out)
			return
		}
		if i < last {
			t.Errorf("expected %q after %v in output:\n%s", name, names, out)
			return
		}
		last = i
	}
}
