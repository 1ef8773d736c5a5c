package model

import (
	"encoding/json"
	"fmt"
)

// VersionStatus is the three-way classification of how current a library is.
//
// Design decision: The classification is a plain string comparison between
// version and latest_version. No semantic-version parsing is performed, so
// "1.0" and "1.0.0" are reported as outdated. This mirrors how the CSV
// producers fill these columns and keeps the badge predictable.
type VersionStatus int

const (
	// VersionUnknown means version or latest_version is missing.
	VersionUnknown VersionStatus = iota

	// VersionCurrent means version equals latest_version exactly.
	VersionCurrent

	// VersionOutdated means both are present and differ.
	VersionOutdated
)

// VersionStatusOf classifies a (version, latest_version) pair.
func VersionStatusOf(version, latestVersion string) VersionStatus {
	if version == "" || latestVersion == "" {
		return VersionUnknown
	}
	if version == latestVersion {
		return VersionCurrent
	}
	return VersionOutdated
}

// String returns the machine-readable status name.
func (s VersionStatus) String() string {
	switch s {
	case VersionUnknown:
		return "unknown"
	case VersionCurrent:
		return "current"
	case VersionOutdated:
		return "outdated"
	default:
		return fmt.Sprintf("VersionStatus(%d)", int(s))
	}
}

// Label returns the human-readable badge text.
func (s VersionStatus) Label() string {
	switch s {
	case VersionCurrent:
		return "Up to date"
	case VersionOutdated:
		return "Outdated"
	default:
		return "Unknown"
	}
}

// MarshalJSON encodes the status as its string name.
func (s VersionStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}
