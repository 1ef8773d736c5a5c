package ingest

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestReaderRead tests reading exports from the local filesystem.
func TestReaderRead(t *testing.T) {
	t.Parallel()

	t.Run("reads an existing file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "libraries.csv")
		content := "name,version\nServo,1.0\n"
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write test file: %v", err)
		}

		data, err := NewReader().Read(context.Background(), path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(data) != content {
			t.Errorf("got %q, expected %q", data, content)
		}
	})

	t.Run("missing file returns FileReadError", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "missing.csv")
		_, err := NewReader().Read(context.Background(), path)
		if err == nil {
			t.Fatal("expected error for missing file")
		}
		if !errors.Is(err, ErrFileRead) {
			t.Errorf("expected ErrFileRead, got %v", err)
		}

		var readErr *FileReadError
		if !errors.As(err, &readErr) {
			t.Fatalf("expected *FileReadError, got %T", err)
		}
		if readErr.Location != path {
			t.Errorf("expected location %q, got %q", path, readErr.Location)
		}
		if errors.Is(err, ErrMalformedInput) {
			t.Error("read error must not be classified as a parse error")
		}
	})

	t.Run("empty location is rejected", func(t *testing.T) {
		t.Parallel()

		_, err := NewReader().Read(context.Background(), "  ")
		if !errors.Is(err, ErrEmptyLocation) {
			t.Errorf("expected ErrEmptyLocation, got %v", err)
		}
		if !errors.Is(err, ErrFileRead) {
			t.Errorf("expected ErrFileRead, got %v", err)
		}
	})
}

// TestNormalizeLocation tests location normalization.
func TestNormalizeLocation(t *testing.T) {
	t.Parallel()

	t.Run("URLs are unchanged", func(t *testing.T) {
		t.Parallel()

		for _, url := range []string{"mem://localhost/a.csv", "file:///tmp/a.csv"} {
			if got := NormalizeLocation(url); got != url {
				t.Errorf("NormalizeLocation(%q) = %q", url, got)
			}
		}
	})

	t.Run("relative paths become absolute", func(t *testing.T) {
		t.Parallel()

		got := NormalizeLocation("exports/libraries.csv")
		if !filepath.IsAbs(got) {
			t.Errorf("expected absolute path, got %q", got)
		}
		if !strings.HasSuffix(got, filepath.Join("exports", "libraries.csv")) {
			t.Errorf("expected path to keep its suffix, got %q", got)
		}
	})
}

// TestDigest tests content fingerprints.
func TestDigest(t *testing.T) {
	t.Parallel()

	a := Digest([]byte("name\nServo\n"))
	b := Digest([]byte("name\nServo\n"))
	c := Digest([]byte("name\nWire\n"))

	if a != b {
		t.Errorf("expected equal digests for equal content, got %x and %x", a, b)
	}
	if a == c {
		t.Errorf("expected different digests for different content, got %x", a)
	}
}
