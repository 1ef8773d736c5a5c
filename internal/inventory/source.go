package inventory

import (
	"path"
	"regexp"
	"strings"
)

var (
	includePattern     = regexp.MustCompile(`#include\s+[<"]([^>"]+)[>"]`)
	versionPattern     = regexp.MustCompile(`#define\s+(\w+_VERSION|VERSION_\w+)\s+["']?([0-9.]+)["']?`)
	githubPattern      = regexp.MustCompile(`(?:https?://)?(?:www\.)?github\.com/([A-Za-z0-9_-]+/[A-Za-z0-9_-]+)`)
	authorPattern      = regexp.MustCompile(`@author\s+([^\n]+)`)
	descriptionPattern = regexp.MustCompile(`/\*\*\s*\n\s*\*\s*([^\n]+)`)
)

// sourceResult is what one source file contributes.
type sourceResult struct {
	// path is relative to the scan root, with forward slashes.
	path string

	// includes are the base names of every #include, deduplicated in
	// order of first appearance.
	includes []string

	hints hints
}

// hints are metadata found in a source file. They are attributed to the
// libraries the same file includes.
type hints struct {
	defines     []define
	github      string
	author      string
	description string
}

// define is a version macro such as FASTLED_VERSION "3.6.0".
type define struct {
	name  string
	value string
}

// versionFor returns the first version macro whose name contains the
// library's upper-cased base name, e.g. FASTLED_VERSION for "FastLED.h".
func (h hints) versionFor(include string) string {
	base := strings.ToUpper(strings.TrimSuffix(include, path.Ext(include)))
	if base == "" {
		return ""
	}
	for _, d := range h.defines {
		if strings.Contains(d.name, base) {
			return d.value
		}
	}
	return ""
}

// extractSource scans the content of one C/C++/Arduino source file.
func extractSource(rel string, content string) sourceResult {
	r := sourceResult{path: rel}

	seen := make(map[string]struct{})
	for _, m := range includePattern.FindAllStringSubmatch(content, -1) {
		name := path.Base(strings.ReplaceAll(m[1], `\`, "/"))
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		r.includes = append(r.includes, name)
	}
	if len(r.includes) == 0 {
		return r
	}

	for _, m := range versionPattern.FindAllStringSubmatch(content, -1) {
		r.hints.defines = append(r.hints.defines, define{name: m[1], value: m[2]})
	}
	if m := githubPattern.FindStringSubmatch(content); m != nil {
		r.hints.github = githubURLPrefix + m[1]
	}
	if m := authorPattern.FindStringSubmatch(content); m != nil {
		r.hints.author = strings.TrimSpace(m[1])
	}
	if m := descriptionPattern.FindStringSubmatch(content); m != nil {
		r.hints.description = strings.TrimSpace(m[1])
	}

	return r
}
