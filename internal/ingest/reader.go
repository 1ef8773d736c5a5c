package ingest

import (
	"context"
	"encoding/binary"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/viant/afs"

	"github.com/nao1215/libcatalog/internal/model"
)

// Source provides the raw content of an export.
// Reader is the production implementation; tests may substitute their own.
type Source interface {
	Read(ctx context.Context, location string) ([]byte, error)
}

// Reader fetches exports through afs, so local paths as well as any
// afs-supported URL (file://, mem://, ...) can be loaded.
//
// Design decision: We go through afs rather than os.ReadFile because the
// location is user-supplied and may name a URL scheme. afs resolves the
// scheme and gives us a single code path for every storage backend.
type Reader struct {
	fs     afs.Service
	logger *slog.Logger
}

// ReaderOption configures a Reader.
type ReaderOption func(*Reader)

// WithService sets the afs service used to read content.
func WithService(fs afs.Service) ReaderOption {
	return func(r *Reader) {
		r.fs = fs
	}
}

// WithReaderLogger sets the logger used for read diagnostics.
func WithReaderLogger(logger *slog.Logger) ReaderOption {
	return func(r *Reader) {
		r.logger = logger
	}
}

// NewReader creates a Reader backed by afs.
func NewReader(opts ...ReaderOption) *Reader {
	r := &Reader{}
	for _, opt := range opts {
		opt(r)
	}
	if r.fs == nil {
		r.fs = afs.New()
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	return r
}

// Read returns the full content at location.
// Any failure is reported as a *FileReadError.
func (r *Reader) Read(ctx context.Context, location string) ([]byte, error) {
	if strings.TrimSpace(location) == "" {
		return nil, &FileReadError{Location: location, Err: ErrEmptyLocation}
	}

	url := NormalizeLocation(location)
	data, err := r.fs.DownloadWithURL(ctx, url)
	if err != nil {
		r.logger.Warn("failed to read export", "location", url, "error", err)
		return nil, &FileReadError{Location: location, Err: err}
	}

	r.logger.Debug("read export",
		"location", url,
		"size", humanize.Bytes(uint64(len(data))),
	)
	return data, nil
}

// NormalizeLocation turns a plain relative path into an absolute one.
// Values that already carry a URL scheme are returned unchanged.
func NormalizeLocation(location string) string {
	if strings.Contains(location, "://") {
		return location
	}
	if abs, err := filepath.Abs(location); err == nil {
		return abs
	}
	return location
}

// Digest returns a 64-bit fingerprint of content.
// Two reads with the same digest carry the same bytes.
func Digest(content []byte) uint64 {
	return binary.BigEndian.Uint64(model.Hash64(content))
}
