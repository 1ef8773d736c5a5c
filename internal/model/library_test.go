package model

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// TestLibraryField tests field lookup by header name.
func TestLibraryField(t *testing.T) {
	t.Parallel()

	lib := &Library{
		Name:          "ArduinoJson",
		GithubURL:     "https://github.com/bblanchon/ArduinoJson",
		Homepage:      "https://arduinojson.org",
		Version:       "6.21.0",
		LatestVersion: "7.0.0",
		Author:        "Benoit Blanchon",
		Source:        "platformio",
		Description:   "JSON library",
		Files:         []string{"src/main.cpp", "src/config.h"},
		Extras:        []Field{{Name: "license", Value: "MIT"}},
	}

	testCases := []struct {
		field    string
		expected string
	}{
		{FieldName, "ArduinoJson"},
		{FieldGithubURL, "https://github.com/bblanchon/ArduinoJson"},
		{FieldHomepage, "https://arduinojson.org"},
		{FieldVersion, "6.21.0"},
		{FieldLatestVersion, "7.0.0"},
		{FieldAuthor, "Benoit Blanchon"},
		{FieldSource, "platformio"},
		{FieldDescription, "JSON library"},
		{FieldFilesFoundIn, "src/main.cpp, src/config.h"},
		{"license", "MIT"},
		{"missing", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.field, func(t *testing.T) {
			t.Parallel()
			if got := lib.Field(tc.field); got != tc.expected {
				t.Errorf("Field(%q) = %q, expected %q", tc.field, got, tc.expected)
			}
		})
	}
}

// TestLibrarySetField tests that unknown headers become ordered extras.
func TestLibrarySetField(t *testing.T) {
	t.Parallel()

	t.Run("known fields are assigned directly", func(t *testing.T) {
		t.Parallel()

		var lib Library
		lib.SetField(FieldAuthor, "Jane")
		lib.SetField(FieldLatestVersion, "2.0")

		if lib.Author != "Jane" {
			t.Errorf("expected author Jane, got %q", lib.Author)
		}
		if lib.LatestVersion != "2.0" {
			t.Errorf("expected latest version 2.0, got %q", lib.LatestVersion)
		}
		if len(lib.Extras) != 0 {
			t.Errorf("expected no extras, got %v", lib.Extras)
		}
	})

	t.Run("unknown fields keep insertion order", func(t *testing.T) {
		t.Parallel()

		var lib Library
		lib.SetField("license", "MIT")
		lib.SetField("stars", "10")
		lib.SetField("license", "Apache-2.0")

		want := []Field{{Name: "license", Value: "Apache-2.0"}, {Name: "stars", Value: "10"}}
		if diff := cmp.Diff(want, lib.Extras); diff != "" {
			t.Errorf("extras mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("file list is not assignable", func(t *testing.T) {
		t.Parallel()

		var lib Library
		lib.SetField(FieldFilesFoundIn, "a.cpp")
		if len(lib.Files) != 0 || len(lib.Extras) != 0 {
			t.Errorf("expected files_found_in to be ignored, got %+v", lib)
		}
	})
}

// TestIdentityKey tests the composite key derivation.
func TestIdentityKey(t *testing.T) {
	t.Parallel()

	t.Run("key is case insensitive", func(t *testing.T) {
		t.Parallel()

		a := IdentityKey("FastLED", "https://github.com/FastLED/FastLED", "https://fastled.io")
		b := IdentityKey("fastled", "HTTPS://GITHUB.COM/fastled/fastled", "https://FastLED.io")
		if a != b {
			t.Errorf("expected equal keys, got %q and %q", a, b)
		}
	})

	t.Run("separator prevents collisions", func(t *testing.T) {
		t.Parallel()

		a := IdentityKey("a-b", "c", "d")
		b := IdentityKey("a", "b-c", "d")
		if a == b {
			t.Errorf("expected different keys for shifted dashes, got %q", a)
		}
	})
}

// TestLibraryID tests that IDs are stable and derived from the identity key.
func TestLibraryID(t *testing.T) {
	t.Parallel()

	a := &Library{Name: "Servo", GithubURL: "https://github.com/arduino-libraries/Servo", Homepage: "h"}
	b := &Library{Name: "SERVO", GithubURL: "https://github.com/arduino-libraries/servo", Homepage: "H", Version: "1.2"}
	c := &Library{Name: "Wire", GithubURL: "g", Homepage: "h"}

	if len(a.ID()) != 16 {
		t.Fatalf("expected 16 hex characters, got %q", a.ID())
	}
	if a.ID() != b.ID() {
		t.Errorf("expected same ID for same identity, got %q and %q", a.ID(), b.ID())
	}
	if a.ID() == c.ID() {
		t.Errorf("expected different IDs for different libraries, got %q", a.ID())
	}
	if again := (&Library{Name: "Servo", GithubURL: a.GithubURL, Homepage: "h"}).ID(); again != a.ID() {
		t.Errorf("expected ID to be deterministic, got %q and %q", a.ID(), again)
	}
}

// TestLibraryMarshalJSON tests that derived fields are present in JSON output.
func TestLibraryMarshalJSON(t *testing.T) {
	t.Parallel()

	lib := Library{
		Name:          "Servo",
		GithubURL:     "g",
		Homepage:      "h",
		Version:       "1.0",
		LatestVersion: "1.0",
		Files:         []string{"a.ino"},
	}

	data, err := json.Marshal(lib)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := string(data)
	for _, want := range []string{
		`"id":"` + lib.ID() + `"`,
		`"name":"Servo"`,
		`"version_status":"current"`,
		`"files_found_in":["a.ino"]`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected JSON to contain %s, got %s", want, out)
		}
	}
}

// TestNewDetail tests building the detail view model.
func TestNewDetail(t *testing.T) {
	t.Parallel()

	lib := &Library{
		Name:          "Servo",
		GithubURL:     "https://github.com/arduino-libraries/Servo",
		Homepage:      "https://www.arduino.cc/reference/en/libraries/servo/",
		Version:       "1.1",
		LatestVersion: "1.2",
		Author:        "Arduino",
		Description:   "Controls servo motors",
		Files:         []string{"main.ino", "motor.cpp"},
	}

	got := NewDetail(lib)
	want := Detail{
		ID:    lib.ID(),
		Title: "Servo",
		General: GeneralInfo{
			Version:       "1.1",
			LatestVersion: "1.2",
			Status:        VersionOutdated,
			Author:        "Arduino",
		},
		Description: "Controls servo motors",
		Links: Links{
			GitHub:   "https://github.com/arduino-libraries/Servo",
			Homepage: "https://www.arduino.cc/reference/en/libraries/servo/",
		},
		Files: []string{"main.ino", "motor.cpp"},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("detail mismatch (-want +got):\n%s", diff)
	}
}
