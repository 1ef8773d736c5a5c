package pipeline

import (
	"context"
	"log/slog"

	"golang.org/x/text/language"

	"github.com/nao1215/libcatalog/internal/catalog"
	"github.com/nao1215/libcatalog/internal/ingest"
	"github.com/nao1215/libcatalog/internal/model"
)

// ParseStep splits the raw content into headers and records.
type ParseStep struct{}

// NewParseStep creates a new parse step.
func NewParseStep() *ParseStep {
	return &ParseStep{}
}

// Name returns the step name.
func (s *ParseStep) Name() string {
	return "parse"
}

// Do executes the parse step.
// A *ingest.ParseError is returned unwrapped so callers can match it.
func (s *ParseStep) Do(_ context.Context, load *model.Load) error {
	table, err := ingest.Parse(load.Content)
	if err != nil {
		return err
	}
	load.Headers = table.Headers
	load.Records = table.Records
	load.RecordCount = table.Len()
	return nil
}

// AggregateStep deduplicates records into libraries.
type AggregateStep struct {
	logger *slog.Logger
}

// AggregateStepOption configures an AggregateStep.
type AggregateStepOption func(*AggregateStep)

// WithAggregateLogger sets a custom logger for the aggregate step.
func WithAggregateLogger(logger *slog.Logger) AggregateStepOption {
	return func(s *AggregateStep) {
		s.logger = logger
	}
}

// NewAggregateStep creates a new aggregate step.
func NewAggregateStep(opts ...AggregateStepOption) *AggregateStep {
	s := &AggregateStep{
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the step name.
func (s *AggregateStep) Name() string {
	return "aggregate"
}

// Do executes the aggregate step. Raw records are released afterwards.
func (s *AggregateStep) Do(_ context.Context, load *model.Load) error {
	load.Libraries = catalog.Aggregate(load.Headers, load.Records)

	dropped := 0
	for _, rec := range load.Records {
		if rec.Get(model.FieldName) == "" || rec.Get(model.FieldGithubURL) == "" || rec.Get(model.FieldHomepage) == "" {
			dropped++
		}
	}
	if dropped > 0 {
		s.logger.Debug("dropped records without identity fields",
			"load", load.ID,
			"dropped", dropped,
		)
	}

	load.Records = nil
	return nil
}

// SortStep orders the aggregated libraries.
type SortStep struct {
	sorter *catalog.Sorter
	field  string
}

// NewSortStep creates a sort step ordering by field with sorter.
func NewSortStep(sorter *catalog.Sorter, field string) *SortStep {
	if sorter == nil {
		sorter = catalog.NewSorter(language.English)
	}
	if field == "" {
		field = catalog.DefaultSortField
	}
	return &SortStep{sorter: sorter, field: field}
}

// Name returns the step name.
func (s *SortStep) Name() string {
	return "sort"
}

// Do executes the sort step.
func (s *SortStep) Do(_ context.Context, load *model.Load) error {
	s.sorter.Sort(load.Libraries, s.field)
	return nil
}

// StatsStep computes the load summary.
type StatsStep struct{}

// NewStatsStep creates a new stats step.
func NewStatsStep() *StatsStep {
	return &StatsStep{}
}

// Name returns the step name.
func (s *StatsStep) Name() string {
	return "stats"
}

// Do executes the stats step.
func (s *StatsStep) Do(_ context.Context, load *model.Load) error {
	load.Stats = catalog.ComputeStats(load.RecordCount, load.Libraries)
	return nil
}

// DefaultPipelineConfig holds configuration for the default pipeline.
type DefaultPipelineConfig struct {
	// Sorter orders the libraries after aggregation.
	Sorter *catalog.Sorter

	// SortField is the field the libraries are ordered by.
	SortField string
}

// DefaultPipelineOption configures a DefaultPipelineConfig.
type DefaultPipelineOption func(*DefaultPipelineConfig)

// WithPipelineSorter sets the sorter used after aggregation.
func WithPipelineSorter(sorter *catalog.Sorter) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.Sorter = sorter
	}
}

// WithPipelineSortField sets the field libraries are sorted by after a load.
func WithPipelineSortField(field string) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.SortField = field
	}
}

// DefaultPipeline creates the load pipeline: parse, aggregate, sort, stats.
//
// The first parameter accepts pipeline options (WithLogger, etc).
// The variadic parameter accepts config options (WithPipelineSortField, etc).
func DefaultPipeline(pipelineOpts []Option, configOpts ...DefaultPipelineOption) *Pipeline {
	p := New(pipelineOpts...)

	cfg := &DefaultPipelineConfig{
		Sorter:    catalog.NewSorter(language.English),
		SortField: catalog.DefaultSortField,
	}
	for _, opt := range configOpts {
		opt(cfg)
	}

	p.AddSteps(
		NewParseStep(),
		NewAggregateStep(WithAggregateLogger(p.logger)),
		NewSortStep(cfg.Sorter, cfg.SortField),
		NewStatsStep(),
	)

	return p
}
