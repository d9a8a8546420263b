package config

import "errors"

// Configuration validation errors returned by Config.Validate().
// Sentinel errors keep errors.Is checks possible for callers while the
// messages stay human-readable on their own.
var (
	// ErrNoChannel is returned when no release channel is configured.
	ErrNoChannel = errors.New("no channel specified: set channel to nightly, beta, stable, or a version")

	// ErrInvalidDaysInPast is returned when the report window is not
	// positive.
	ErrInvalidDaysInPast = errors.New("invalid days_in_past: must be positive")

	// ErrInvalidLookupDays is returned when the additional lookup
	// window is negative.
	ErrInvalidLookupDays = errors.New("invalid additional_lookup_days: must be non-negative")

	// ErrInvalidCacheBackend is returned for an unknown cache backend
	// name.
	ErrInvalidCacheBackend = errors.New("invalid cache backend: must be fs, sqlite, or none")

	// ErrNoTemplatePath is returned when html.template_path is missing.
	ErrNoTemplatePath = errors.New("no page template: set html.template_path")

	// ErrNoOutputPattern is returned when html.output_pattern is
	// missing.
	ErrNoOutputPattern = errors.New("no output pattern: set html.output_pattern")

	// ErrNoFileTreeOutput is returned when file_tree_output is missing.
	ErrNoFileTreeOutput = errors.New("no file tree destination: set file_tree_output")
)
