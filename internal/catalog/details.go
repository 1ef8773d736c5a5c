package catalog

import (
	"strings"

	"github.com/nao1215/libcatalog/internal/model"
)

// Details returns the detail view model for lib.
func Details(lib model.Library) model.Detail {
	return model.NewDetail(&lib)
}

// Find returns the first library whose ID equals ref, or whose name equals
// ref case-insensitively. IDs are checked before names across the whole
// list, so a library named like another library's ID cannot shadow it.
func Find(libs []model.Library, ref string) (model.Library, bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return model.Library{}, false
	}
	for _, lib := range libs {
		if lib.ID() == ref {
			return lib, true
		}
	}
	for _, lib := range libs {
		if strings.EqualFold(lib.Name, ref) {
			return lib, true
		}
	}
	return model.Library{}, false
}
