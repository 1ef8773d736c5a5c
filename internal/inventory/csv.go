package inventory

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/viant/afs"

	"github.com/nao1215/libcatalog/internal/ingest"
	"github.com/nao1215/libcatalog/internal/model"
)

// DefaultOutput is the file name written when no output is given.
const DefaultOutput = "libraries.csv"

// Columns is the header row of the written CSV.
var Columns = []string{
	model.FieldName,
	model.FieldVersion,
	model.FieldLatestVersion,
	model.FieldAuthor,
	model.FieldDescription,
	model.FieldGithubURL,
	model.FieldHomepage,
	model.FieldSource,
	model.FieldFilesFoundIn,
}

// sanitizer removes the characters the viewer's parser cannot carry.
// The viewer splits on every comma and does not honour quoting, so
// nothing written here may need quotes.
var sanitizer = strings.NewReplacer(
	",", ";",
	`"`, "'",
	"\r\n", " ",
	"\n", " ",
	"\r", " ",
)

// sanitize makes value safe to write unquoted.
func sanitize(value string) string {
	return strings.TrimSpace(sanitizer.Replace(value))
}

// Rows returns the CSV rows for libs, without the header.
// A library gets one row per file it was found in, or a single row with
// an empty file when it was found nowhere; the viewer merges them back.
func Rows(libs []model.Library) [][]string {
	var rows [][]string
	for _, lib := range libs {
		base := []string{
			sanitize(lib.Name),
			sanitize(lib.Version),
			sanitize(lib.LatestVersion),
			sanitize(lib.Author),
			sanitize(lib.Description),
			sanitize(lib.GithubURL),
			sanitize(lib.Homepage),
			sanitize(lib.Source),
		}
		files := lib.Files
		if len(files) == 0 {
			files = []string{""}
		}
		for _, f := range files {
			rows = append(rows, append(append(make([]string, 0, len(Columns)), base...), sanitize(f)))
		}
	}
	return rows
}

// WriteCSV writes the header and the rows of libs to w.
func WriteCSV(w io.Writer, libs []model.Library) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return err
	}
	if err := cw.WriteAll(Rows(libs)); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}
	return nil
}

// Save writes the CSV for libs to location through service. Local paths
// and any afs-supported URL are accepted.
func Save(ctx context.Context, service afs.Service, location string, libs []model.Library) error {
	if service == nil {
		service = afs.New()
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, libs); err != nil {
		return err
	}

	url := ingest.NormalizeLocation(location)
	if err := service.Upload(ctx, url, 0o644, &buf); err != nil {
		return fmt.Errorf("failed to write %s: %w", location, err)
	}
	return nil
}
