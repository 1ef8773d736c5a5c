package inventory

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/viant/afs"
	"golang.org/x/sync/errgroup"

	"github.com/nao1215/libcatalog/internal/model"
)

// Default scanner settings.
const DefaultConcurrency = 8

// DefaultExtensions are the source file extensions scanned for includes.
func DefaultExtensions() []string {
	return []string{".cpp", ".h", ".ino"}
}

// DefaultExcludeDirs are directory names never descended into.
func DefaultExcludeDirs() []string {
	return []string{".git"}
}

// ErrNotDirectory is returned when the scan root is not a directory.
var ErrNotDirectory = errors.New("scan root is not a directory")

// fileKind tells the scanner how to read a file.
type fileKind int

const (
	kindSource fileKind = iota
	kindPlatformIO
	kindLibraryProps
	kindLibraryJSON
	kindPackageIndex
)

// task is one file to extract.
type task struct {
	kind fileKind
	abs  string
	rel  string
}

// result is what one task produced.
type result struct {
	source   sourceResult
	manifest []manifestEntry
	skipped  bool
}

// Scanner walks a project directory and collects the libraries it uses.
//
// Design decision: Files are read and parsed concurrently with a bounded
// errgroup, while merging runs afterwards on one goroutine in a fixed
// order (sources, then platformio.ini, then library manifests, each by
// path). The output therefore does not depend on scheduling.
type Scanner struct {
	fs          afs.Service
	extensions  []string
	excludeDirs []string
	concurrency int
	logger      *slog.Logger
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithExtensions sets the source file extensions, e.g. ".cpp".
func WithExtensions(exts ...string) Option {
	return func(s *Scanner) {
		if len(exts) > 0 {
			s.extensions = exts
		}
	}
}

// WithExcludeDirs sets directory names that are skipped.
func WithExcludeDirs(dirs ...string) Option {
	return func(s *Scanner) {
		s.excludeDirs = dirs
	}
}

// WithConcurrency sets the number of files read in parallel.
func WithConcurrency(n int) Option {
	return func(s *Scanner) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// WithService sets the afs service used to read files.
func WithService(service afs.Service) Option {
	return func(s *Scanner) {
		s.fs = service
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scanner) {
		s.logger = logger
	}
}

// NewScanner creates a Scanner with default settings.
func NewScanner(opts ...Option) *Scanner {
	s := &Scanner{
		extensions:  DefaultExtensions(),
		excludeDirs: DefaultExcludeDirs(),
		concurrency: DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.fs == nil {
		s.fs = afs.New()
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// Scan walks root and returns the libraries found, sorted by name.
// Unreadable or non-UTF-8 files are skipped with a warning; a malformed
// JSON manifest is skipped the same way.
func (s *Scanner) Scan(ctx context.Context, root string) ([]model.Library, error) {
	start := time.Now()

	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", root, err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, root)
	}

	tasks, err := s.collectTasks(ctx, root)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("scanning project",
		"root", root,
		"files", len(tasks),
		"concurrency", s.concurrency,
	)

	results := make([]result, len(tasks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, t := range tasks {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			results[i] = s.extract(gctx, t)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	c := newCollector()
	for i, t := range tasks {
		if results[i].skipped {
			continue
		}
		if t.kind == kindSource {
			c.applySource(results[i].source)
		} else {
			c.applyManifest(results[i].manifest)
		}
	}

	libs := c.libraries()
	s.logger.Info("scan complete",
		"root", root,
		"files", len(tasks),
		"libraries", len(libs),
		"elapsed", time.Since(start),
	)
	return libs, nil
}

// collectTasks walks root and returns the files to read in merge order.
func (s *Scanner) collectTasks(ctx context.Context, root string) ([]task, error) {
	var tasks []task

	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == root {
				return err
			}
			s.logger.Warn("skipping unreadable path", "path", p, "error", err)
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if d.IsDir() {
			if p != root && slices.Contains(s.excludeDirs, d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		kind, ok := s.classify(p == filepath.Join(root, d.Name()), d.Name())
		if !ok {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		tasks = append(tasks, task{kind: kind, abs: p, rel: filepath.ToSlash(rel)})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	// WalkDir visits in lexical order; a stable sort by kind keeps it per kind.
	slices.SortStableFunc(tasks, func(a, b task) int {
		return int(a.kind) - int(b.kind)
	})
	return tasks, nil
}

// classify decides whether a file is read and how.
// platformio.ini is only honoured at the project root.
func (s *Scanner) classify(atRoot bool, name string) (fileKind, bool) {
	switch name {
	case PlatformIOFile:
		return kindPlatformIO, atRoot
	case LibraryPropsFile:
		return kindLibraryProps, true
	case LibraryJSONFile:
		return kindLibraryJSON, true
	case PackageIndexFile:
		return kindPackageIndex, true
	}
	ext := filepath.Ext(name)
	if ext != "" && slices.ContainsFunc(s.extensions, func(e string) bool {
		return strings.EqualFold(e, ext)
	}) {
		return kindSource, true
	}
	return 0, false
}

// extract reads and parses one file.
func (s *Scanner) extract(ctx context.Context, t task) result {
	content, err := s.fs.DownloadWithURL(ctx, t.abs)
	if err != nil {
		s.logger.Warn("failed to read file", "path", t.rel, "error", err)
		return result{skipped: true}
	}
	if !utf8.Valid(content) {
		s.logger.Warn("skipping file that is not UTF-8", "path", t.rel)
		return result{skipped: true}
	}

	var entries []manifestEntry
	switch t.kind {
	case kindSource:
		return result{source: extractSource(t.rel, string(content))}
	case kindPlatformIO:
		entries = parsePlatformIO(t.rel, string(content))
	case kindLibraryProps:
		entries = parseLibraryProperties(t.rel, string(content))
	case kindLibraryJSON:
		entries, err = parseLibraryJSON(t.rel, content)
	case kindPackageIndex:
		entries, err = parsePackageIndex(t.rel, content)
	}
	if err != nil {
		s.logger.Warn("skipping malformed manifest", "path", t.rel, "error", err)
		return result{skipped: true}
	}
	return result{manifest: entries}
}
