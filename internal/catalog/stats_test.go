package catalog

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/nao1215/libcatalog/internal/model"
)

// TestComputeStats tests the load summary.
func TestComputeStats(t *testing.T) {
	t.Parallel()

	libs := []model.Library{
		{Name: "Servo", Version: "1.0"},
		{Name: "Wire", Version: "   "},
		{Name: "FastLED"},
	}

	got := ComputeStats(5, libs)
	want := model.Stats{Total: 5, Unique: 3, WithVersion: 1}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("stats mismatch (-want +got):\n%s", diff)
	}
}

// TestStatusCounts tests counting by version status.
func TestStatusCounts(t *testing.T) {
	t.Parallel()

	libs := []model.Library{
		{Version: "1.0", LatestVersion: "1.0"},
		{Version: "1.0", LatestVersion: "1.0.0"},
		{Version: "1.0"},
		{},
	}

	got := StatusCounts(libs)
	want := map[model.VersionStatus]int{
		model.VersionCurrent:  1,
		model.VersionOutdated: 1,
		model.VersionUnknown:  2,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("counts mismatch (-want +got):\n%s", diff)
	}
}

// TestFind tests lookup by ID and by name.
func TestFind(t *testing.T) {
	t.Parallel()

	libs := []model.Library{
		{Name: "Servo", GithubURL: "gh/s", Homepage: "hp/s"},
		{Name: "Wire", GithubURL: "gh/w", Homepage: "hp/w"},
	}

	t.Run("by name", func(t *testing.T) {
		t.Parallel()

		lib, ok := Find(libs, "wire")
		if !ok || lib.Name != "Wire" {
			t.Errorf("expected Wire, got %+v (found=%v)", lib, ok)
		}
	})

	t.Run("by id", func(t *testing.T) {
		t.Parallel()

		lib, ok := Find(libs, libs[0].ID())
		if !ok || lib.Name != "Servo" {
			t.Errorf("expected Servo, got %+v (found=%v)", lib, ok)
		}
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()

		if _, ok := Find(libs, "missing"); ok {
			t.Error("expected no match")
		}
		if _, ok := Find(libs, " "); ok {
			t.Error("expected no match for blank ref")
		}
	})
}

// TestDetails tests the detail view model.
func TestDetails(t *testing.T) {
	t.Parallel()

	lib := model.Library{
		Name:          "Servo",
		GithubURL:     "https://github.com/arduino-libraries/Servo",
		Homepage:      "https://arduino.cc",
		Version:       "1.2.1",
		LatestVersion: "1.2.2",
		Files:         []string{"main.cpp"},
	}

	d := Details(lib)
	if d.Title != "Servo" {
		t.Errorf("expected title Servo, got %q", d.Title)
	}
	if d.General.Status != model.VersionOutdated {
		t.Errorf("expected outdated, got %v", d.General.Status)
	}
	if d.Links.GitHub != lib.GithubURL {
		t.Errorf("expected github link %q, got %q", lib.GithubURL, d.Links.GitHub)
	}
	if d.ID != lib.ID() {
		t.Errorf("expected id %q, got %q", lib.ID(), d.ID)
	}
}
