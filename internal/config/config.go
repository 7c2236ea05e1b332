package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// Default configuration values.
// The report file names and image sizes match the artifacts produced by
// this project's build pipeline; all of them can be overridden via CLI
// flags or the .hardenreport configuration file.
const (
	// DefaultBaselineReportFile is the Trivy report of the unhardened image.
	DefaultBaselineReportFile = "trivy-scan-results.json"

	// DefaultHardenedReportFile is the Trivy report of the hardened image.
	DefaultHardenedReportFile = "trivy-scan-results-hardened.json"

	// DefaultBaselineImageSizeMB is the size of the baseline image.
	// Image sizes are not part of Trivy reports, so the chart command
	// needs them supplied externally.
	DefaultBaselineImageSizeMB = 1970

	// DefaultHardenedImageSizeMB is the size of the hardened image.
	DefaultHardenedImageSizeMB = 555

	// DefaultBaselineLabel captions the baseline image in charts.
	DefaultBaselineLabel = "Baseline (insecure-app)"

	// DefaultHardenedLabel captions the hardened image in charts.
	DefaultHardenedLabel = "Hardened (hardened-app)"

	// AppName is the application name used for XDG directory paths.
	AppName = "hardenreport"
)

// Config holds all configuration options for hardenreport.
// This struct is designed to be populated from CLI flags and passed
// through the application via dependency injection rather than global state.
//
// Design decision: We use a single flat struct instead of nested structs
// (e.g., SummaryConfig, ChartConfig) for simplicity. The number of options
// is manageable, and nesting would add complexity without significant benefit.
type Config struct {
	// ReportFiles are the Trivy report paths to summarize.
	ReportFiles []string

	// JSONReport enables JSON output instead of the text table.
	// Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport enables Markdown output instead of the text table.
	// Mutually exclusive with JSONReport.
	MarkdownReport bool

	// OutputFile is the file path the summary is written to.
	// When empty, the summary is written to stdout.
	OutputFile string

	// ShowOtherLabels also prints severity labels outside the fixed
	// CRITICAL/HIGH/MEDIUM/LOW/UNKNOWN ordering.
	ShowOtherLabels bool

	// SaveToDB records summaries in the history database.
	SaveToDB bool

	// DBDir is the directory the SQLite history database lives in.
	// Defaults to the XDG data directory.
	DBDir string

	// BaselineFile is the baseline Trivy report used by chart and compare.
	BaselineFile string

	// HardenedFile is the hardened Trivy report used by chart and compare.
	HardenedFile string

	// BaselineSizeMB is the baseline image size for the size chart.
	BaselineSizeMB int

	// HardenedSizeMB is the hardened image size for the size chart.
	HardenedSizeMB int

	// BaselineLabel captions the baseline image in charts.
	BaselineLabel string

	// HardenedLabel captions the hardened image in charts.
	HardenedLabel string

	// OutputDir is the directory chart PNG files are written to.
	OutputDir string

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .hardenreport in the current
	// directory and then in the user's home directory.
	ConfigFilePath string

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool
}

// NewConfig creates a Config with default values.
func NewConfig() *Config {
	return &Config{
		BaselineFile:   DefaultBaselineReportFile,
		HardenedFile:   DefaultHardenedReportFile,
		BaselineSizeMB: DefaultBaselineImageSizeMB,
		HardenedSizeMB: DefaultHardenedImageSizeMB,
		BaselineLabel:  DefaultBaselineLabel,
		HardenedLabel:  DefaultHardenedLabel,
		OutputDir:      ".",
		DBDir:          XDGDataDir(),
	}
}

// Validate checks the configuration for consistency.
// Returns one of the package sentinel errors on failure.
func (c *Config) Validate() error {
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}
	if c.BaselineSizeMB <= 0 || c.HardenedSizeMB <= 0 {
		return ErrInvalidImageSize
	}
	if c.OutputDir == "" {
		return ErrInvalidOutputDir
	}
	return nil
}

// XDGDataDir returns the XDG data directory for hardenreport.
// On Linux this is typically ~/.local/share/hardenreport.
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}
