package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() so callers can use
// errors.Is() while still printing a readable message.
var (
	// ErrInvalidBaseURL is returned when the base URL is not an absolute
	// http(s) URL.
	ErrInvalidBaseURL = errors.New("invalid base URL: must be an absolute http or https URL")

	// ErrInvalidTimeout is returned when the timeout is negative.
	// Use 0 to disable the per-request timeout.
	ErrInvalidTimeout = errors.New("invalid timeout: must be non-negative")

	// ErrInvalidConcurrency is returned when the concurrency limit is negative.
	// Use 0 for unbounded fan-out.
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be non-negative")

	// ErrInvalidFilter is returned when the filter is not one of all, alive or dead.
	ErrInvalidFilter = errors.New("invalid filter: must be all, alive or dead")

	// ErrInvalidLocation is returned when the drill-down location is not an
	// absolute http(s) URL.
	ErrInvalidLocation = errors.New("invalid location: must be an absolute http or https URL")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified. Only one output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrInvalidMaxBodySize is returned when the max body size is negative.
	// Use 0 to use the default limit.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be non-negative")
)
