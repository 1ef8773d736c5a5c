package model

import "strings"

// Stats holds the counts shown above the library listing.
// They are recomputed from scratch on every load.
type Stats struct {
	// Total is the number of raw data rows parsed, including rows that
	// were later dropped for missing identity fields.
	Total int `json:"total"`

	// Unique is the number of aggregated libraries.
	Unique int `json:"unique"`

	// WithVersion is the number of aggregated libraries with a non-blank version.
	WithVersion int `json:"with_version"`
}

// Detail is the view model for a single library's detail view.
// It is grouped the same way the detail view is laid out:
// general information, description, links and the file list.
type Detail struct {
	// ID is the stable library identifier.
	ID string `json:"id"`

	// Title is the library name.
	Title string `json:"title"`

	General     GeneralInfo `json:"general"`
	Description string      `json:"description,omitempty"`
	Links       Links       `json:"links"`

	// Files lists every file the library was found in.
	Files []string `json:"files"`

	// Extras carries unrecognized columns so no data is hidden.
	Extras []Field `json:"extras,omitempty"`
}

// GeneralInfo is the "general information" section of a detail view.
type GeneralInfo struct {
	Version       string        `json:"version,omitempty"`
	LatestVersion string        `json:"latest_version,omitempty"`
	Status        VersionStatus `json:"version_status"`
	Author        string        `json:"author,omitempty"`
	Source        string        `json:"source,omitempty"`
}

// Links is the "links" section of a detail view.
type Links struct {
	GitHub   string `json:"github,omitempty"`
	Homepage string `json:"homepage,omitempty"`
}

// NewDetail builds the detail view model for a library.
func NewDetail(lib *Library) Detail {
	files := make([]string, 0, len(lib.Files))
	for _, f := range lib.Files {
		if f = strings.TrimSpace(f); f != "" {
			files = append(files, f)
		}
	}

	return Detail{
		ID:    lib.ID(),
		Title: lib.Name,
		General: GeneralInfo{
			Version:       lib.Version,
			LatestVersion: lib.LatestVersion,
			Status:        lib.VersionStatus(),
			Author:        lib.Author,
			Source:        lib.Source,
		},
		Description: lib.Description,
		Links: Links{
			GitHub:   lib.GithubURL,
			Homepage: lib.Homepage,
		},
		Files:  files,
		Extras: append([]Field(nil), lib.Extras...),
	}
}
