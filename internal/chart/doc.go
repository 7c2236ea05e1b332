// Package chart renders baseline vs hardened comparison charts as PNG files.
//
// Three charts are produced:
//   - Image size comparison (sizes supplied externally, not read from reports)
//   - Total vulnerability count comparison
//   - Grouped per-severity breakdown for CRITICAL, HIGH, MEDIUM, and LOW
//
// Design decision: We use gonum.org/v1/plot for rendering because it is
// the de facto plotting library in the Go ecosystem, writes PNG directly,
// and supports grouped bar charts with per-bar value labels without a
// headless browser or external process.
package chart
