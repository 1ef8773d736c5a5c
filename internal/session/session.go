package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/language"

	"github.com/nao1215/libcatalog/internal/catalog"
	"github.com/nao1215/libcatalog/internal/ingest"
	"github.com/nao1215/libcatalog/internal/model"
	"github.com/nao1215/libcatalog/internal/pipeline"
)

// ErrNoSource is returned by LoadFile when the session has no Source.
var ErrNoSource = errors.New("no source configured")

// Session is the viewer controller.
type Session struct {
	source    ingest.Source
	presenter Presenter
	sorter    *catalog.Sorter
	logger    *slog.Logger

	// initialSort is applied after every successful load.
	initialSort string

	// clearOnParseError discards the current data when a load fails to parse.
	clearOnParseError bool

	libraries []model.Library
	stats     model.Stats
	sortField string
	state     State
	lastLoad  *model.Load
}

// Option configures a Session.
type Option func(*Session)

// WithSource sets the source used by LoadFile.
func WithSource(source ingest.Source) Option {
	return func(s *Session) {
		s.source = source
	}
}

// WithPresenter sets the presenter that receives render calls.
func WithPresenter(p Presenter) Option {
	return func(s *Session) {
		s.presenter = p
	}
}

// WithSorter sets the sorter, which fixes the collation locale.
func WithSorter(sorter *catalog.Sorter) Option {
	return func(s *Session) {
		s.sorter = sorter
	}
}

// WithInitialSort sets the field libraries are ordered by after a load.
func WithInitialSort(field string) Option {
	return func(s *Session) {
		if field != "" {
			s.initialSort = field
		}
	}
}

// WithClearOnParseError makes a failed parse discard the current data
// instead of keeping it.
func WithClearOnParseError(clear bool) Option {
	return func(s *Session) {
		s.clearOnParseError = clear
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// New creates a Session in the awaiting state with no data.
func New(opts ...Option) *Session {
	s := &Session{
		initialSort: catalog.DefaultSortField,
		state:       StateAwaiting,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.presenter == nil {
		s.presenter = nopPresenter{}
	}
	if s.sorter == nil {
		s.sorter = catalog.NewSorter(language.English)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	s.sortField = s.initialSort
	return s
}

// LoadFile reads the export at location and loads it.
//
// A read failure returns a *ingest.FileReadError, puts the session back in
// the awaiting state and leaves the current data untouched.
func (s *Session) LoadFile(ctx context.Context, location string) ([]model.Library, error) {
	if s.source == nil {
		return nil, ErrNoSource
	}

	s.state = StateLoading
	content, err := s.source.Read(ctx, location)
	if err != nil {
		s.state = StateAwaiting
		s.logger.Error("failed to read export", "location", location, "error", err)
		return nil, err
	}
	return s.load(ctx, location, content)
}

// Load parses, aggregates and sorts content and replaces the current data.
//
// On success the full list is rendered and statistics are pushed to the
// presenter if it supports them. A *ingest.ParseError leaves the current
// data untouched unless the session was created with WithClearOnParseError.
func (s *Session) Load(ctx context.Context, content []byte) ([]model.Library, error) {
	return s.load(ctx, "", content)
}

// LoadContent is Load for content already read from location, such as a
// file delivered by a watcher. Location reports location afterwards.
func (s *Session) LoadContent(ctx context.Context, location string, content []byte) ([]model.Library, error) {
	return s.load(ctx, location, content)
}

func (s *Session) load(ctx context.Context, location string, content []byte) ([]model.Library, error) {
	s.state = StateLoading

	load := model.NewLoad(location, content)
	load.ID = uuid.NewString()

	p := pipeline.DefaultPipeline(
		[]pipeline.Option{pipeline.WithLogger(s.logger)},
		pipeline.WithPipelineSorter(s.sorter),
		pipeline.WithPipelineSortField(s.initialSort),
	)
	if err := p.Execute(ctx, load); err != nil {
		s.state = StateAwaiting
		if s.clearOnParseError && errors.Is(err, ingest.ErrMalformedInput) {
			s.libraries = nil
			s.stats = model.Stats{}
		}
		s.logger.Error("failed to load export",
			"load", load.ID,
			"location", location,
			"error", err,
		)
		return nil, err
	}

	s.libraries = load.Libraries
	s.stats = load.Stats
	s.sortField = s.initialSort
	s.lastLoad = load
	s.state = StateReady

	s.logger.Info("loaded export",
		"load", load.ID,
		"location", location,
		"records", s.stats.Total,
		"libraries", s.stats.Unique,
		"duration", load.Duration(),
	)

	if err := s.presenter.Render(s.Libraries()); err != nil {
		return s.Libraries(), fmt.Errorf("failed to render libraries: %w", err)
	}
	if sp, ok := s.presenter.(StatsPresenter); ok {
		if err := sp.ShowStats(s.stats); err != nil {
			return s.Libraries(), fmt.Errorf("failed to render stats: %w", err)
		}
	}
	return s.Libraries(), nil
}

// Sort reorders the canonical list by field and renders the full list.
// Any active search is not re-applied; the caller does that if needed.
func (s *Session) Sort(field string) ([]model.Library, error) {
	s.sorter.Sort(s.libraries, field)
	s.sortField = field
	if err := s.presenter.Render(s.Libraries()); err != nil {
		return s.Libraries(), fmt.Errorf("failed to render libraries: %w", err)
	}
	return s.Libraries(), nil
}

// Search returns the libraries matching term without changing any state.
// A blank term returns every library.
func (s *Session) Search(term string) []model.Library {
	return catalog.Filter(s.libraries, term)
}

// ShowSearch renders the libraries matching term.
func (s *Session) ShowSearch(term string) ([]model.Library, error) {
	libs := s.Search(term)
	if err := s.presenter.Render(libs); err != nil {
		return libs, fmt.Errorf("failed to render libraries: %w", err)
	}
	return libs, nil
}

// Stats returns the statistics of the last successful load.
func (s *Session) Stats() model.Stats {
	return s.stats
}

// DetailsFor returns the detail view model of lib.
func (s *Session) DetailsFor(lib model.Library) model.Detail {
	return catalog.Details(lib)
}

// Show pushes the detail view of lib to the presenter.
func (s *Session) Show(lib model.Library) error {
	if err := s.presenter.ShowDetail(s.DetailsFor(lib)); err != nil {
		return fmt.Errorf("failed to render detail: %w", err)
	}
	return nil
}

// Find returns a library by ID or case-insensitive name.
func (s *Session) Find(ref string) (model.Library, bool) {
	return catalog.Find(s.libraries, ref)
}

// Libraries returns a copy of the canonical list in its current order.
func (s *Session) Libraries() []model.Library {
	return slices.Clone(s.libraries)
}

// State returns the load state.
func (s *Session) State() State {
	return s.state
}

// SortField returns the field the canonical list is currently ordered by.
func (s *Session) SortField() string {
	return s.sortField
}

// LastLoadID returns the ID of the last successful load, or "".
func (s *Session) LastLoadID() string {
	if s.lastLoad == nil {
		return ""
	}
	return s.lastLoad.ID
}

// LastLoadedAt returns when the last successful load finished.
func (s *Session) LastLoadedAt() time.Time {
	if s.lastLoad == nil {
		return time.Time{}
	}
	return s.lastLoad.FinishedAt
}

// Location returns where the last successful load came from.
func (s *Session) Location() string {
	if s.lastLoad == nil {
		return ""
	}
	return s.lastLoad.Location
}
