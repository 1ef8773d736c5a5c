package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/nao1215/libcatalog/internal/ingest"
)

// DefaultDebounce is the quiet period used when none is configured.
const DefaultDebounce = 200 * time.Millisecond

// ErrStopped is returned by Start after the watcher has been stopped.
var ErrStopped = errors.New("watcher already stopped")

// Callback receives the new content of the watched file.
type Callback func(content []byte)

// Watcher reloads one file whenever it changes on disk.
//
// The parent directory is watched instead of the file itself: editors and
// exporters commonly save by writing a temporary file and renaming it over
// the original, which replaces the inode a file watch would be bound to.
// Events for other files in the directory are ignored.
type Watcher struct {
	mu      sync.Mutex
	fsw     *fsnotify.Watcher
	path    string
	dir     string
	source  ingest.Source
	logger  *slog.Logger
	onLoad  Callback
	stopCh  chan struct{}
	doneCh  chan struct{}
	running bool
	stopped bool

	debounce   time.Duration
	lastDigest uint64
	hasDigest  bool
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period after the last event before the file
// is read. Zero reloads on every event.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d >= 0 {
			w.debounce = d
		}
	}
}

// WithSource sets the source used to read the file.
func WithSource(source ingest.Source) Option {
	return func(w *Watcher) {
		w.source = source
	}
}

// WithLogger sets the logger for watcher diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Watcher) {
		w.logger = logger
	}
}

// WithInitialContent records content as already delivered, so an event
// that leaves the file unchanged does not trigger the callback.
func WithInitialContent(content []byte) Option {
	return func(w *Watcher) {
		w.lastDigest = ingest.Digest(content)
		w.hasDigest = true
	}
}

// New creates a Watcher for path. onLoad is called from the watcher's
// goroutine with the file content after every change.
func New(path string, onLoad Callback, opts ...Option) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	w := &Watcher{
		fsw:      fsw,
		path:     abs,
		dir:      filepath.Dir(abs),
		onLoad:   onLoad,
		debounce: DefaultDebounce,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.logger == nil {
		w.logger = slog.Default()
	}
	if w.source == nil {
		w.source = ingest.NewReader(ingest.WithReaderLogger(w.logger))
	}
	if w.onLoad == nil {
		w.onLoad = func([]byte) {}
	}

	return w, nil
}

// Path returns the absolute path of the watched file.
func (w *Watcher) Path() string {
	return w.path
}

// Start begins watching. It is non-blocking; events are handled in a
// goroutine until ctx is cancelled or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return ErrStopped
	}
	if w.running {
		return nil
	}

	if err := w.fsw.Add(w.dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.dir, err)
	}
	w.running = true

	w.logger.Debug("watching file", "path", w.path, "debounce", w.debounce)
	go w.run(ctx)

	return nil
}

// Stop stops the watcher and waits for its goroutine to exit.
// It is safe to call more than once and without a prior Start.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return
	}
	w.stopped = true
	running := w.running
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	if running {
		<-w.doneCh
	}

	if err := w.fsw.Close(); err != nil {
		w.logger.Warn("failed to close file watcher", "error", err)
	}
}

// run is the event loop.
func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return

		case <-w.stopCh:
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug("file event", "path", event.Name, "op", event.Op.String())
			if w.debounce == 0 {
				w.reload(ctx)
				continue
			}
			timer.Reset(w.debounce)
			fire = timer.C

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("file watcher error", "error", err)

		case <-fire:
			fire = nil
			w.reload(ctx)
		}
	}
}

// relevant reports whether event may have changed the watched file.
// Remove and rename are skipped; a rename-save is followed by a Create.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create)
}

// reload reads the file and hands changed content to the callback.
func (w *Watcher) reload(ctx context.Context) {
	content, err := w.source.Read(ctx, w.path)
	if err != nil {
		// The file may be gone between the event and the read.
		w.logger.Warn("failed to reload watched file", "path", w.path, "error", err)
		return
	}

	digest := ingest.Digest(content)
	if w.hasDigest && digest == w.lastDigest {
		w.logger.Debug("watched file unchanged", "path", w.path)
		return
	}
	w.lastDigest = digest
	w.hasDigest = true

	w.onLoad(content)
}
