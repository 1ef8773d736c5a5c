package inventory

import (
	"slices"
	"strings"

	"github.com/nao1215/libcatalog/internal/model"
)

// Source values recorded for each way a library can be discovered.
const (
	SourceCode         = "code"
	SourcePlatformIO   = "platformio_ini"
	SourceLibraryProps = "arduino_library"
	SourceLibraryJSON  = "arduino_library_json"
	SourcePackageIndex = "arduino_package"
)

// entry is a library being assembled from several files.
type entry struct {
	lib   model.Library
	files map[string]struct{}
}

// collector merges findings into one entry per library name.
// Names are matched exactly; "Wire.h" and "Wire" are different libraries.
// It is not safe for concurrent use; merging runs on one goroutine.
type collector struct {
	entries map[string]*entry
}

func newCollector() *collector {
	return &collector{entries: make(map[string]*entry)}
}

// ensure returns the entry for name, creating it with source when new.
func (c *collector) ensure(name, source string) *entry {
	e, ok := c.entries[name]
	if !ok {
		e = &entry{
			lib:   model.Library{Name: name, Source: source},
			files: make(map[string]struct{}),
		}
		c.entries[name] = e
	}
	return e
}

// addFile records that the library was found in file.
func (e *entry) addFile(file string) {
	if file != "" {
		e.files[file] = struct{}{}
	}
}

// fill sets a field only while it is still empty.
func fill(dst *string, value string) {
	if *dst == "" {
		*dst = strings.TrimSpace(value)
	}
}

// override sets a field whenever value is non-empty.
func override(dst *string, value string) {
	if v := strings.TrimSpace(value); v != "" {
		*dst = v
	}
}

// applySource merges what was found in one source file.
// Hints fill empty fields of the libraries included by that file only.
func (c *collector) applySource(r sourceResult) {
	for _, inc := range r.includes {
		e := c.ensure(inc, SourceCode)
		e.addFile(r.path)
	}

	for _, inc := range r.includes {
		lib := &c.entries[inc].lib
		fill(&lib.Version, r.hints.versionFor(inc))
		fill(&lib.GithubURL, r.hints.github)
		fill(&lib.Author, r.hints.author)
		fill(&lib.Description, r.hints.description)
	}
}

// applyManifest merges entries read from a manifest. Authoritative
// entries (a library's own metadata) replace earlier values; dependency
// lists only fill what is still empty.
func (c *collector) applyManifest(entries []manifestEntry) {
	for _, m := range entries {
		if m.name == "" {
			continue
		}
		e := c.ensure(m.name, m.source)
		lib := &e.lib

		set := fill
		if m.authoritative {
			lib.Source = m.source
			set = override
		}
		set(&lib.Version, m.version)
		set(&lib.Author, m.author)
		set(&lib.Description, m.description)
		set(&lib.GithubURL, m.githubURL)
		set(&lib.Homepage, m.homepage)
		e.addFile(m.file)
	}
}

// libraries returns every entry sorted by name, with sorted file lists.
func (c *collector) libraries() []model.Library {
	libs := make([]model.Library, 0, len(c.entries))
	for _, e := range c.entries {
		lib := e.lib
		lib.Files = make([]string, 0, len(e.files))
		for f := range e.files {
			lib.Files = append(lib.Files, f)
		}
		slices.Sort(lib.Files)
		libs = append(libs, lib)
	}
	slices.SortFunc(libs, func(a, b model.Library) int {
		return strings.Compare(a.Name, b.Name)
	})
	return libs
}
