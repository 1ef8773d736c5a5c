package catalog

import (
	"sort"
	"strings"

	"github.com/nao1215/libcatalog/internal/model"
)

// IdentityFields are the fields every record must carry to be aggregated.
var IdentityFields = []string{model.FieldName, model.FieldGithubURL, model.FieldHomepage}

// group accumulates one library while records are merged into it.
type group struct {
	lib       model.Library
	seenFiles map[string]struct{}
}

// Aggregate groups records by identity key and merges each group into a
// single Library.
//
// Records missing name, github_url or homepage are skipped. Within a group
// the first non-empty value of every scalar field wins, in input order.
// The files_found_in cells of all records are split on commas, trimmed and
// unioned, keeping the order in which file names first appear.
//
// The output follows the order in which identity keys are first seen.
// headers gives the column order used for unrecognized fields; when it is
// nil, record keys are visited in sorted order.
func Aggregate(headers []string, records []model.RawRecord) []model.Library {
	index := make(map[string]int)
	groups := make([]*group, 0)

	for _, rec := range records {
		if !hasIdentity(rec) {
			continue
		}

		key := model.IdentityKey(rec.Get(model.FieldName), rec.Get(model.FieldGithubURL), rec.Get(model.FieldHomepage))
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, &group{seenFiles: make(map[string]struct{})})
		}
		g := groups[i]

		for _, field := range fieldOrder(headers, rec) {
			if field == model.FieldFilesFoundIn {
				continue
			}
			value, present := rec[field]
			if !present {
				continue
			}
			if !ok {
				// first record of the group defines every column, empty or not
				g.lib.SetField(field, value)
				continue
			}
			if value != "" && g.lib.Field(field) == "" {
				g.lib.SetField(field, value)
			}
		}

		g.addFiles(rec.Get(model.FieldFilesFoundIn))
	}

	libs := make([]model.Library, len(groups))
	for i, g := range groups {
		libs[i] = g.lib
	}
	return libs
}

// hasIdentity reports whether all identity fields are non-empty.
func hasIdentity(rec model.RawRecord) bool {
	for _, f := range IdentityFields {
		if rec.Get(f) == "" {
			return false
		}
	}
	return true
}

// fieldOrder returns the fields of rec in a deterministic order.
func fieldOrder(headers []string, rec model.RawRecord) []string {
	if headers != nil {
		return headers
	}
	keys := make([]string, 0, len(rec))
	for k := range rec {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// addFiles splits a comma-joined file cell and adds the new entries.
func (g *group) addFiles(cell string) {
	if cell == "" {
		return
	}
	for _, f := range SplitFiles(cell) {
		if _, dup := g.seenFiles[f]; dup {
			continue
		}
		g.seenFiles[f] = struct{}{}
		g.lib.Files = append(g.lib.Files, f)
	}
}

// SplitFiles splits a comma-joined file list, trimming each entry and
// dropping empty ones. Duplicates within the cell are kept; callers that
// need set semantics deduplicate.
func SplitFiles(cell string) []string {
	parts := strings.Split(cell, ",")
	files := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			files = append(files, p)
		}
	}
	return files
}
