package catalog

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/nao1215/libcatalog/internal/model"
)

// Filter returns the libraries where any field value contains term,
// compared case-insensitively. A term that is empty or only whitespace
// matches everything; any other term is matched as given, surrounding
// spaces included. Both sides are lowercased, not case-folded, so "ss"
// does not match "ß". The result is always a new slice; libs is not
// modified.
func Filter(libs []model.Library, term string) []model.Library {
	if strings.TrimSpace(term) == "" {
		return slices.Clone(libs)
	}

	lower := cases.Lower(language.Und)
	needle := lower.String(term)

	out := make([]model.Library, 0, len(libs))
	for _, lib := range libs {
		if matches(lib, lower, needle) {
			out = append(out, lib)
		}
	}
	return out
}

// matches reports whether any lowercased value of lib contains needle.
func matches(lib model.Library, lower cases.Caser, needle string) bool {
	for _, v := range lib.Values() {
		if v == "" {
			continue
		}
		if strings.Contains(lower.String(v), needle) {
			return true
		}
	}
	return false
}
