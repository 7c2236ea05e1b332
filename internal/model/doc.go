// Package model defines the core data structures used throughout hardenreport.
//
// This package contains the following main types:
//   - Report: A decoded Trivy scan report (the subset of fields this tool reads)
//   - SeverityTally: Occurrence counts per severity label with a derived total
//   - ScanSummary: The aggregated view of one report file, consumed by
//     report writers, chart rendering, comparison, and history storage
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. Multiple packages (trivy, report, chart, database) need to use
// these types, so centralizing them prevents import cycles.
//
// The models are designed to be serializable to JSON for report output and
// database storage.
package model
