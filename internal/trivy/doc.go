// Package trivy loads Trivy scan reports from JSON files.
//
// A report file may contain a single report document or an array of
// report documents; both forms decode to a slice of model.Report.
// Loading distinguishes two terminal failures via sentinel errors:
// ErrReportNotFound when the path does not resolve to a readable file,
// and ErrReportDecode when the content is not valid JSON.
package trivy
