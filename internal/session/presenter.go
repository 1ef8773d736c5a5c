package session

import "github.com/nao1215/libcatalog/internal/model"

// Presenter receives what the session wants displayed.
type Presenter interface {
	// Render displays a list of libraries in the given order.
	Render(libs []model.Library) error

	// ShowDetail displays the detail view of one library.
	ShowDetail(detail model.Detail) error
}

// StatsPresenter is implemented by presenters that display load statistics.
// It is optional; the session checks for it after every successful load.
type StatsPresenter interface {
	ShowStats(stats model.Stats) error
}

// nopPresenter discards everything. It is used when no presenter is set.
type nopPresenter struct{}

func (nopPresenter) Render([]model.Library) error  { return nil }
func (nopPresenter) ShowDetail(model.Detail) error { return nil }
