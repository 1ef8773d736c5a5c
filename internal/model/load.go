package model

import "time"

// Load carries the data of one load through the load pipeline.
// Each step reads what earlier steps produced and fills in its own part.
type Load struct {
	// ID identifies the load in logs.
	ID string `json:"id"`

	// Location is where the content came from, empty for in-memory loads.
	Location string `json:"location,omitempty"`

	// Content is the raw export.
	Content []byte `json:"-"`

	// Headers are the parsed header names in column order.
	Headers []string `json:"headers"`

	// Records are the parsed data rows. They are dropped once aggregated.
	Records []RawRecord `json:"-"`

	// RecordCount is the number of data rows parsed.
	RecordCount int `json:"record_count"`

	// Libraries is the aggregated, sorted result.
	Libraries []Library `json:"libraries"`

	// Stats summarizes the result.
	Stats Stats `json:"stats"`

	// StartedAt and FinishedAt bracket the pipeline run.
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	// PerformedSteps lists the steps that ran, in order.
	PerformedSteps []string `json:"performed_steps"`

	// Error is the error that stopped the pipeline, if any.
	Error error `json:"-"`
}

// NewLoad creates a Load for content read from location.
func NewLoad(location string, content []byte) *Load {
	return &Load{
		Location:       location,
		Content:        content,
		StartedAt:      time.Now(),
		PerformedSteps: make([]string, 0),
	}
}

// Duration returns how long the load took, or zero if it has not finished.
func (l *Load) Duration() time.Duration {
	if l.FinishedAt.IsZero() {
		return 0
	}
	return l.FinishedAt.Sub(l.StartedAt)
}
