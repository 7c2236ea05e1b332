package trivy

import "errors"

// Report loading errors.
// These are returned by LoadReports and allow callers to use errors.Is()
// for programmatic handling while still carrying human-readable messages.
var (
	// ErrReportNotFound is returned when the report file does not exist.
	ErrReportNotFound = errors.New("report file not found")

	// ErrReportDecode is returned when the report file content is not
	// valid JSON. An empty file also produces this error.
	ErrReportDecode = errors.New("could not decode report JSON")
)
