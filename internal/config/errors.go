package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrInvalidLocale is returned when the locale is not a valid BCP 47 tag.
	ErrInvalidLocale = errors.New("invalid locale: must be a BCP 47 language tag such as \"en\" or \"sv\"")

	// ErrInvalidSortField is returned when the initial sort field is blank.
	ErrInvalidSortField = errors.New("invalid sort field: must not be empty")

	// ErrInvalidWatchDebounce is returned when the watch debounce is negative.
	// Use 0 to reload on every event.
	ErrInvalidWatchDebounce = errors.New("invalid watch debounce: must be non-negative")

	// ErrNoInventoryExtensions is returned when no source file extension is configured.
	ErrNoInventoryExtensions = errors.New("no inventory extensions: at least one source file extension is required")

	// ErrInvalidConcurrency is returned when the inventory concurrency is not positive.
	ErrInvalidConcurrency = errors.New("invalid inventory concurrency: must be positive")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified. Only one output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")
)
