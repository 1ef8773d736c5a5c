package catalog

import (
	"strings"

	"github.com/nao1215/libcatalog/internal/model"
)

// ComputeStats summarizes a load. total is the number of raw data records
// read; libs is the aggregated list.
func ComputeStats(total int, libs []model.Library) model.Stats {
	withVersion := 0
	for _, lib := range libs {
		if strings.TrimSpace(lib.Version) != "" {
			withVersion++
		}
	}
	return model.Stats{
		Total:       total,
		Unique:      len(libs),
		WithVersion: withVersion,
	}
}

// StatusCounts counts libraries per version status.
func StatusCounts(libs []model.Library) map[model.VersionStatus]int {
	counts := map[model.VersionStatus]int{
		model.VersionCurrent:  0,
		model.VersionOutdated: 0,
		model.VersionUnknown:  0,
	}
	for _, lib := range libs {
		counts[lib.VersionStatus()]++
	}
	return counts
}
