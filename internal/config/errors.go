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
	// ErrNoReportFile is returned when no report file path is supplied.
	ErrNoReportFile = errors.New("no report file specified: provide at least one Trivy JSON report path")

	// ErrConflictingReportFormats is returned when both --json and
	// --markdown are specified. Only one output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrInvalidImageSize is returned when a chart image size is not positive.
	// Sizes are supplied externally (flags or config file) because Trivy
	// reports do not carry them; zero or negative sizes would render
	// meaningless bars.
	ErrInvalidImageSize = errors.New("invalid image size: must be a positive number of megabytes")

	// ErrInvalidOutputDir is returned when the chart output directory is empty.
	ErrInvalidOutputDir = errors.New("invalid output directory: must not be empty")
)
