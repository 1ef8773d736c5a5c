package catalog

import (
	"slices"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/nao1215/libcatalog/internal/model"
)

// DefaultSortField is the field the list is ordered by after every load.
const DefaultSortField = model.FieldName

// Sorter orders libraries by a field using locale-aware collation.
//
// Design decision: We keep the language tag rather than a *collate.Collator
// because collators carry internal buffers and are not safe for concurrent
// use. A fresh collator per Sort call keeps Sorter shareable.
type Sorter struct {
	tag language.Tag
}

// NewSorter creates a Sorter for the given locale.
func NewSorter(tag language.Tag) *Sorter {
	return &Sorter{tag: tag}
}

// ParseLocale parses a BCP 47 tag such as "en" or "de-DE".
// Unparseable or empty values fall back to English.
func ParseLocale(s string) language.Tag {
	if s == "" {
		return language.English
	}
	tag, err := language.Parse(s)
	if err != nil {
		return language.English
	}
	return tag
}

// Tag returns the locale used for comparisons.
func (s *Sorter) Tag() language.Tag {
	return s.tag
}

// keyed pairs a library with its precomputed sort key.
type keyed struct {
	key string
	lib model.Library
}

// Sort reorders libs in place by field, ascending.
//
// Values are compared case-insensitively: both sides are lowercased for the
// locale before collation. The sort is stable, so libraries with equal keys
// keep their relative order. A library without the field sorts as "".
func (s *Sorter) Sort(libs []model.Library, field string) {
	if len(libs) < 2 {
		return
	}

	lower := cases.Lower(s.tag)
	items := make([]keyed, len(libs))
	for i := range libs {
		items[i] = keyed{key: lower.String(libs[i].Field(field)), lib: libs[i]}
	}

	col := collate.New(s.tag)
	slices.SortStableFunc(items, func(a, b keyed) int {
		return col.CompareString(a.key, b.key)
	})

	for i := range items {
		libs[i] = items[i].lib
	}
}

// Sorted returns a sorted copy of libs, leaving the input untouched.
func (s *Sorter) Sorted(libs []model.Library, field string) []model.Library {
	out := slices.Clone(libs)
	s.Sort(out, field)
	return out
}
