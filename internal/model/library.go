package model

import (
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/minio/highwayhash"
)

// Recognized header names. Any other header is carried through as an
// opaque scalar field (see Library.Extras).
const (
	FieldName          = "name"
	FieldGithubURL     = "github_url"
	FieldHomepage      = "homepage"
	FieldVersion       = "version"
	FieldLatestVersion = "latest_version"
	FieldAuthor        = "author"
	FieldSource        = "source"
	FieldDescription   = "description"
	FieldFilesFoundIn  = "files_found_in"
)

// KeySeparator joins the identity key parts. The ASCII unit separator
// cannot appear in a library name or URL, so "a-b"+"c" and "a"+"b-c"
// never collide the way a dash-joined key would.
const KeySeparator = "\x1f"

// FileListSeparator is used when the file list is displayed as one string.
const FileListSeparator = ", "

// ScalarFields lists the recognized scalar fields in display order.
var ScalarFields = []string{
	FieldName,
	FieldVersion,
	FieldLatestVersion,
	FieldAuthor,
	FieldSource,
	FieldDescription,
	FieldGithubURL,
	FieldHomepage,
}

// RawRecord is a single data row mapped from header name to cell value.
// It is produced by parsing and consumed immediately by aggregation.
type RawRecord map[string]string

// Get returns the value for the header, or "" when the header is absent.
func (r RawRecord) Get(field string) string {
	return r[field]
}

// Field is a name/value pair used for headers the model does not know about.
type Field struct {
	// Name is the header name as it appeared in the input.
	Name string `json:"name"`

	// Value is the first non-empty value seen for this header.
	Value string `json:"value"`
}

// Library is one aggregated entry per unique identity key.
//
// Design decision: Recognized columns are explicit fields so the rest of the
// application can rely on them, while unrecognized columns are kept as
// ordered Extras. Search and sort treat both uniformly through Field().
type Library struct {
	Name          string `json:"name"`
	GithubURL     string `json:"github_url"`
	Homepage      string `json:"homepage"`
	Version       string `json:"version,omitempty"`
	LatestVersion string `json:"latest_version,omitempty"`
	Author        string `json:"author,omitempty"`
	Source        string `json:"source,omitempty"`
	Description   string `json:"description,omitempty"`

	// Files is the deduplicated list of files the library was found in.
	// It never contains empty entries or duplicates.
	Files []string `json:"files_found_in,omitempty"`

	// Extras holds unrecognized columns in header order.
	Extras []Field `json:"extras,omitempty"`
}

// Field returns the string value of the named field.
// The file list is returned joined with FileListSeparator.
// Unknown fields resolve to the matching extra, or "" if absent.
func (l *Library) Field(name string) string {
	switch name {
	case FieldName:
		return l.Name
	case FieldGithubURL:
		return l.GithubURL
	case FieldHomepage:
		return l.Homepage
	case FieldVersion:
		return l.Version
	case FieldLatestVersion:
		return l.LatestVersion
	case FieldAuthor:
		return l.Author
	case FieldSource:
		return l.Source
	case FieldDescription:
		return l.Description
	case FieldFilesFoundIn:
		return l.FilesJoined()
	}
	for _, f := range l.Extras {
		if f.Name == name {
			return f.Value
		}
	}
	return ""
}

// SetField assigns a scalar field by name.
// Unknown names are stored as extras, preserving first-insertion order.
// The file list cannot be set through this method.
func (l *Library) SetField(name, value string) {
	switch name {
	case FieldName:
		l.Name = value
	case FieldGithubURL:
		l.GithubURL = value
	case FieldHomepage:
		l.Homepage = value
	case FieldVersion:
		l.Version = value
	case FieldLatestVersion:
		l.LatestVersion = value
	case FieldAuthor:
		l.Author = value
	case FieldSource:
		l.Source = value
	case FieldDescription:
		l.Description = value
	case FieldFilesFoundIn:
		// list-valued, handled by the aggregator
	default:
		for i := range l.Extras {
			if l.Extras[i].Name == name {
				l.Extras[i].Value = value
				return
			}
		}
		l.Extras = append(l.Extras, Field{Name: name, Value: value})
	}
}

// Values returns every string-valued field of the library.
// This is the set the free-text filter searches.
func (l *Library) Values() []string {
	values := make([]string, 0, len(ScalarFields)+1+len(l.Extras))
	for _, name := range ScalarFields {
		values = append(values, l.Field(name))
	}
	values = append(values, l.FilesJoined())
	for _, f := range l.Extras {
		values = append(values, f.Value)
	}
	return values
}

// FilesJoined returns the file list as a single display string.
func (l *Library) FilesJoined() string {
	return strings.Join(l.Files, FileListSeparator)
}

// Key returns the identity key of the library.
func (l *Library) Key() string {
	return IdentityKey(l.Name, l.GithubURL, l.Homepage)
}

// ID returns a short, stable identifier derived from the identity key.
// The same library yields the same ID across loads and processes.
func (l *Library) ID() string {
	return HashID(l.Key())
}

// VersionStatus returns the naive version status of the library.
func (l *Library) VersionStatus() VersionStatus {
	return VersionStatusOf(l.Version, l.LatestVersion)
}

// MarshalJSON adds the derived id and version status to the JSON form.
func (l Library) MarshalJSON() ([]byte, error) {
	type plain Library
	return json.Marshal(struct {
		ID string `json:"id"`
		plain
		Status VersionStatus `json:"version_status"`
	}{
		ID:     l.ID(),
		plain:  plain(l),
		Status: l.VersionStatus(),
	})
}

// IdentityKey builds the composite, case-normalized deduplication key.
func IdentityKey(name, githubURL, homepage string) string {
	return strings.ToLower(name) + KeySeparator +
		strings.ToLower(githubURL) + KeySeparator +
		strings.ToLower(homepage)
}

// hashKey is the fixed 32-byte highwayhash key. IDs must be stable
// across runs, so the key is a constant rather than random.
var hashKey = []byte("libcatalog-identity-key-00000000")

// HashID returns 16 hex characters of the highwayhash-64 digest of s.
func HashID(s string) string {
	return hex.EncodeToString(Hash64([]byte(s)))
}

// Hash64 returns the 8-byte big-endian highwayhash-64 digest of data.
func Hash64(data []byte) []byte {
	h, err := highwayhash.New64(hashKey)
	if err != nil {
		// only possible with a key that is not 32 bytes long
		panic(err)
	}
	_, _ = h.Write(data) //nolint:errcheck // hash.Hash never returns an error
	return h.Sum(nil)
}
