package inventory

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
)

// Manifest file names recognized by the scanner.
const (
	PlatformIOFile   = "platformio.ini"
	LibraryPropsFile = "library.properties"
	LibraryJSONFile  = "library.json"
	PackageIndexFile = "package_index.json"
)

const (
	githubURLPrefix = "https://github.com/"
	githubHost      = "github.com"
)

// manifestEntry is one library described by a manifest.
type manifestEntry struct {
	name        string
	version     string
	author      string
	description string
	githubURL   string
	homepage    string
	source      string
	file        string

	// authoritative is set for a library's own metadata file, whose
	// values replace whatever was found before.
	authoritative bool
}

// parsePlatformIO reads the lib_deps of every [env:*] section.
//
// The format is INI: a key may continue over following indented lines,
// and lines starting with ';' or '#' are comments.
func parsePlatformIO(rel string, content string) []manifestEntry {
	var (
		entries   []manifestEntry
		inEnv     bool
		inLibDeps bool
	)

	addDep := func(raw string) {
		if e, ok := parseLibDep(raw); ok {
			e.file = rel
			entries = append(entries, e)
		}
	}

	sc := bufio.NewScanner(strings.NewReader(content))
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		trimmed := strings.TrimSpace(line)

		if trimmed == "" || trimmed[0] == ';' || trimmed[0] == '#' {
			continue
		}
		if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
			section := strings.TrimSpace(trimmed[1 : len(trimmed)-1])
			inEnv = strings.HasPrefix(section, "env:")
			inLibDeps = false
			continue
		}

		continuation := line[0] == ' ' || line[0] == '\t'
		if continuation {
			if inLibDeps {
				addDep(trimmed)
			}
			continue
		}

		key, value, ok := strings.Cut(trimmed, "=")
		if !ok {
			inLibDeps = false
			continue
		}
		inLibDeps = inEnv && strings.TrimSpace(key) == "lib_deps"
		if inLibDeps {
			addDep(strings.TrimSpace(value))
		}
	}

	return entries
}

// parseLibDep parses one lib_deps entry. Supported forms:
//
//	name
//	name@version
//	owner/name
//	owner/name@version
//	name=version
//	https://github.com/owner/name.git
//	git+https://host/path#tag
func parseLibDep(dep string) (manifestEntry, bool) {
	dep = strings.TrimSpace(dep)
	if dep == "" || strings.HasPrefix(dep, "${") {
		return manifestEntry{}, false
	}

	e := manifestEntry{source: SourcePlatformIO}

	switch {
	case isURL(dep):
		link, tag, _ := strings.Cut(dep, "#")
		e.version = tag
		e.homepage = link
		e.name = link
		if owner, repo, ok := githubRepo(link); ok {
			e.name = repo
			e.githubURL = githubURLPrefix + owner + "/" + repo
		}
	case strings.Contains(dep, "="):
		e.name, e.version, _ = strings.Cut(dep, "=")
	case strings.Contains(dep, "@"):
		e.name, e.version, _ = strings.Cut(dep, "@")
	default:
		e.name = dep
	}

	e.name = strings.Trim(strings.TrimSpace(e.name), `"' `)
	e.version = strings.TrimSpace(e.version)
	if e.githubURL == "" && isOwnerRepo(e.name) {
		e.githubURL = githubURLPrefix + e.name
	}

	return e, e.name != ""
}

// isURL reports whether dep is a URL rather than a registry name.
func isURL(dep string) bool {
	for _, prefix := range []string{"git+", "http://", "https://", "git@", "ssh://"} {
		if strings.HasPrefix(dep, prefix) {
			return true
		}
	}
	return false
}

// isOwnerRepo reports whether name has the registry form "owner/name".
func isOwnerRepo(name string) bool {
	if strings.HasPrefix(name, "/") || strings.HasPrefix(name, ".") {
		return false
	}
	owner, repo, ok := strings.Cut(name, "/")
	return ok && owner != "" && repo != "" && !strings.Contains(repo, "/")
}

// githubRepo extracts owner and repository from a GitHub URL.
func githubRepo(link string) (owner, repo string, ok bool) {
	u, err := url.Parse(strings.TrimPrefix(link, "git+"))
	if err != nil || !strings.EqualFold(strings.TrimPrefix(u.Hostname(), "www."), githubHost) {
		return "", "", false
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], strings.TrimSuffix(parts[1], ".git"), true
}

// parseLibraryProperties reads an Arduino library.properties file.
func parseLibraryProperties(rel string, content string) []manifestEntry {
	props := make(map[string]string)
	sc := bufio.NewScanner(strings.NewReader(content))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' || line[0] == ';' {
			continue
		}
		if key, value, ok := strings.Cut(line, "="); ok {
			props[strings.TrimSpace(key)] = strings.TrimSpace(value)
		}
	}

	if props["name"] == "" {
		return nil
	}

	e := manifestEntry{
		name:          props["name"],
		version:       props["version"],
		author:        props["author"],
		description:   props["sentence"],
		homepage:      props["url"],
		source:        SourceLibraryProps,
		file:          rel,
		authoritative: true,
	}
	if strings.Contains(e.homepage, githubHost) {
		e.githubURL = e.homepage
	}
	return []manifestEntry{e}
}

// libraryJSON is the subset of a PlatformIO library.json that is read.
type libraryJSON struct {
	Name        string          `json:"name"`
	Version     string          `json:"version"`
	Description string          `json:"description"`
	Homepage    string          `json:"homepage"`
	Author      json.RawMessage `json:"author"`
	Authors     json.RawMessage `json:"authors"`
	Repository  json.RawMessage `json:"repository"`
}

// parseLibraryJSON reads a PlatformIO/Arduino library.json file.
func parseLibraryJSON(rel string, content []byte) ([]manifestEntry, error) {
	var doc libraryJSON
	if err := json.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", rel, err)
	}
	if doc.Name == "" {
		return nil, nil
	}

	author := authorName(doc.Author)
	if author == "" {
		author = authorName(doc.Authors)
	}

	e := manifestEntry{
		name:          doc.Name,
		version:       doc.Version,
		author:        author,
		description:   doc.Description,
		homepage:      doc.Homepage,
		source:        SourceLibraryJSON,
		file:          rel,
		authoritative: true,
	}

	var repo struct {
		URL string `json:"url"`
	}
	if len(doc.Repository) > 0 && json.Unmarshal(doc.Repository, &repo) == nil && strings.Contains(repo.URL, githubHost) {
		e.githubURL = repo.URL
	}
	if e.githubURL == "" && strings.Contains(e.homepage, githubHost) {
		e.githubURL = e.homepage
	}

	return []manifestEntry{e}, nil
}

// authorName resolves the author field, which may be a string, an object
// with a name or a list of either. The first author wins.
func authorName(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s
	}

	var obj struct {
		Name string `json:"name"`
	}
	if json.Unmarshal(raw, &obj) == nil && obj.Name != "" {
		return obj.Name
	}

	var list []json.RawMessage
	if json.Unmarshal(raw, &list) == nil && len(list) > 0 {
		return authorName(list[0])
	}
	return ""
}

// packageIndex is the subset of an Arduino package_index.json that is read.
type packageIndex struct {
	Packages []struct {
		Platforms []struct {
			ToolsDependencies []struct {
				Name    string `json:"name"`
				Version string `json:"version"`
			} `json:"toolsDependencies"`
		} `json:"platforms"`
	} `json:"packages"`
}

// parsePackageIndex reads the tool dependencies of every platform.
func parsePackageIndex(rel string, content []byte) ([]manifestEntry, error) {
	var doc packageIndex
	if err := json.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", rel, err)
	}

	var entries []manifestEntry
	for _, pkg := range doc.Packages {
		for _, platform := range pkg.Platforms {
			for _, dep := range platform.ToolsDependencies {
				if dep.Name == "" {
					continue
				}
				entries = append(entries, manifestEntry{
					name:    dep.Name,
					version: dep.Version,
					source:  SourcePackageIndex,
					file:    rel,
				})
			}
		}
	}
	return entries, nil
}
