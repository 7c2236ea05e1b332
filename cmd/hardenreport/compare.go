package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/AMSONI777/docker-hardening-project/internal/config"
	"github.com/AMSONI777/docker-hardening-project/internal/database"
	"github.com/AMSONI777/docker-hardening-project/internal/model"
	"github.com/AMSONI777/docker-hardening-project/internal/trivy"
	"github.com/spf13/cobra"
)

// Constants for risk direction and summary messages.
const (
	riskDirectionWorsened  = "worsened"
	riskDirectionImproved  = "improved"
	riskDirectionUnchanged = "unchanged"
)

// NewCompareCmd creates the compare command.
func NewCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare <baseline.json> [hardened.json]",
		Short: "Compare two Trivy reports by severity counts",
		Long: `Compare shows per-severity deltas between two Trivy reports, typically
a baseline image scan and a hardened image scan.

The second report can come either from a file or from the history
database via --with-id (use 'hardenreport history' to see record IDs).
The first argument is treated as the "before" side, the second as the
"after" side.

Examples:
  # Compare baseline and hardened report files
  hardenreport compare trivy-scan-results.json trivy-scan-results-hardened.json

  # Compare a report file against a stored summary
  hardenreport compare --with-id 5 trivy-scan-results.json

  # Output comparison result in JSON format
  hardenreport compare --json baseline.json hardened.json`,
		Args: cobra.RangeArgs(1, 2),
		RunE: runCompareCmd,
	}

	// Comparison target flags
	cmd.Flags().Int64P("with-id", "i", 0,
		"Compare against a stored summary by ID (use 'hardenreport history' to see available IDs)")

	// Output format flags
	cmd.Flags().BoolP("json", "j", false,
		"Output comparison result in JSON format")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output comparison result in Markdown format")

	return cmd
}

// runCompareCmd executes the compare command.
func runCompareCmd(cmd *cobra.Command, args []string) error {
	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	markdownOutput, err := cmd.Flags().GetBool("markdown")
	if err != nil {
		return err
	}
	if jsonOutput && markdownOutput {
		return config.ErrConflictingReportFormats
	}

	withID, err := cmd.Flags().GetInt64("with-id")
	if err != nil {
		return err
	}

	logger := setupLogger(getVerboseFlag(cmd))
	slog.SetDefault(logger)

	before, after, err := loadComparisonSides(cmd.Context(), args, withID)
	if err != nil {
		return err
	}

	comparison := compareSummaries(before, after)

	stdout := cmd.OutOrStdout()
	if jsonOutput {
		return outputComparisonJSON(stdout, comparison)
	}
	if markdownOutput {
		return outputComparisonMarkdown(stdout, comparison)
	}
	return outputComparisonText(stdout, comparison)
}

// loadComparisonSides resolves the two summaries to compare.
// Either two file arguments, or one file argument plus a database
// record ID. The stored summary is the "after" side in the latter case.
func loadComparisonSides(ctx context.Context, args []string, withID int64) (before, after *comparisonSide, err error) {
	if withID < 0 {
		return nil, nil, fmt.Errorf("invalid summary ID %d: must be a positive record ID", withID)
	}
	if len(args) == 2 && withID != 0 {
		return nil, nil, errors.New("--with-id cannot be combined with two report files")
	}
	if len(args) == 1 && withID == 0 {
		return nil, nil, errors.New("second report file is required (or use --with-id to compare against a stored summary)")
	}

	before, err = loadComparisonFile(args[0])
	if err != nil {
		return nil, nil, err
	}

	if withID > 0 {
		after, err = loadComparisonRecord(ctx, withID)
		if err != nil {
			return nil, nil, err
		}
		return before, after, nil
	}

	after, err = loadComparisonFile(args[1])
	if err != nil {
		return nil, nil, err
	}
	return before, after, nil
}

// comparisonSide is one side of a comparison with its provenance.
type comparisonSide struct {
	summary *model.ScanSummary
	when    time.Time // zero for file-based sides
}

// loadComparisonFile summarizes a Trivy report file for comparison.
func loadComparisonFile(path string) (*comparisonSide, error) {
	reports, err := trivy.LoadReports(path)
	if err != nil {
		return nil, err
	}
	return &comparisonSide{summary: model.NewScanSummary(path, reports)}, nil
}

// loadComparisonRecord fetches a stored summary from the history database.
func loadComparisonRecord(ctx context.Context, id int64) (*comparisonSide, error) {
	db, err := database.Open(config.XDGDataDir(), database.DefaultOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	record, err := db.GetSummaryByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get summary with ID %d: %w", id, err)
	}
	if record == nil {
		return nil, fmt.Errorf("summary with ID %d not found (use 'hardenreport history' to see available IDs)", id)
	}
	return &comparisonSide{summary: &record.Summary, when: record.CreatedAt}, nil
}

// ComparisonResult holds the result of comparing two scan summaries.
type ComparisonResult struct {
	// Before describes the first (baseline) summary.
	Before ScanMetadata `json:"before"`

	// After describes the second (hardened) summary.
	After ScanMetadata `json:"after"`

	// Change describes the per-severity deltas and overall direction.
	Change RiskChange `json:"change"`
}

// ScanMetadata describes one side of a comparison for display.
type ScanMetadata struct {
	// File is the report file path or stored summary source file.
	File string `json:"file"`

	// ArtifactName is the scanned artifact, when the report names one.
	ArtifactName string `json:"artifact_name,omitempty"`

	// SavedAt is when the summary was stored, for database-backed sides.
	SavedAt *time.Time `json:"saved_at,omitempty"`

	// Severities holds counts per severity label.
	Severities map[string]int `json:"severities"`

	// Total is the total vulnerability count.
	Total int `json:"total"`
}

// RiskChange describes the change in vulnerability counts between scans.
type RiskChange struct {
	// Direction is "improved", "worsened", or "unchanged".
	Direction string `json:"direction"`

	// Deltas holds the after-minus-before count per severity label.
	Deltas map[string]int `json:"deltas"`

	// TotalDelta is the change in total vulnerability count.
	TotalDelta int `json:"total_delta"`
}

// compareSummaries builds a comparison result from two summaries.
func compareSummaries(before, after *comparisonSide) *ComparisonResult {
	result := &ComparisonResult{
		Before: sideMetadata(before),
		After:  sideMetadata(after),
	}
	result.Change = calculateRiskChange(before.summary, after.summary)
	return result
}

// sideMetadata extracts display metadata from one comparison side.
func sideMetadata(side *comparisonSide) ScanMetadata {
	meta := ScanMetadata{
		File:         side.summary.File,
		ArtifactName: side.summary.ArtifactName,
		Severities:   side.summary.Severities,
		Total:        side.summary.Total,
	}
	if !side.when.IsZero() {
		when := side.when
		meta.SavedAt = &when
	}
	return meta
}

// calculateRiskChange calculates per-severity deltas and the overall
// direction. The direction follows the most severe level that changed:
// a CRITICAL increase marks the result worsened even when lower levels
// improved. When no tracked severity changed, the total decides.
func calculateRiskChange(before, after *model.ScanSummary) RiskChange {
	change := RiskChange{
		Deltas:     make(map[string]int, len(model.DisplaySeverities)),
		TotalDelta: after.Total - before.Total,
	}

	change.Direction = riskDirectionUnchanged
	directionSet := false
	for _, severity := range model.DisplaySeverities {
		delta := after.Count(severity) - before.Count(severity)
		change.Deltas[severity] = delta

		if delta == 0 || directionSet {
			continue
		}
		if delta > 0 {
			change.Direction = riskDirectionWorsened
		} else {
			change.Direction = riskDirectionImproved
		}
		directionSet = true
	}

	if !directionSet && change.TotalDelta != 0 {
		if change.TotalDelta > 0 {
			change.Direction = riskDirectionWorsened
		} else {
			change.Direction = riskDirectionImproved
		}
	}

	return change
}

// outputComparisonJSON outputs the comparison result in JSON format.
func outputComparisonJSON(output io.Writer, result *ComparisonResult) error {
	encoder := json.NewEncoder(output)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// outputComparisonMarkdown outputs the comparison result in Markdown format.
func outputComparisonMarkdown(output io.Writer, result *ComparisonResult) error {
	fmt.Fprintf(output, "# Scan Comparison\n\n")

	fmt.Fprintln(output, "## Summary")
	fmt.Fprintf(output, "\n**Risk Status:** %s\n\n", formatRiskDirection(result.Change.Direction))
	fmt.Fprintf(output, "Before: `%s`\n", result.Before.File)
	fmt.Fprintf(output, "After:  `%s`\n\n", result.After.File)

	fmt.Fprintln(output, "| Severity | Before | After | Change |")
	fmt.Fprintln(output, "|----------|--------|-------|--------|")
	for _, severity := range model.DisplaySeverities {
		fmt.Fprintf(output, "| %s | %d | %d | %s |\n",
			severity,
			result.Before.Severities[severity],
			result.After.Severities[severity],
			formatDelta(result.Change.Deltas[severity]))
	}
	fmt.Fprintf(output, "| **Total** | **%d** | **%d** | **%s** |\n",
		result.Before.Total,
		result.After.Total,
		formatDelta(result.Change.TotalDelta))

	return nil
}

// outputComparisonText outputs the comparison result in human-readable text format.
func outputComparisonText(output io.Writer, result *ComparisonResult) error {
	fmt.Fprintln(output, "Scan Comparison")
	fmt.Fprintln(output, strings.Repeat("=", 60))

	fmt.Fprintf(output, "\nRisk Status: %s\n", formatRiskDirection(result.Change.Direction))

	fmt.Fprintf(output, "\nBefore: %s\n", result.Before.File)
	if result.Before.SavedAt != nil {
		fmt.Fprintf(output, "        saved %s\n", result.Before.SavedAt.Format("2006-01-02 15:04:05"))
	}
	fmt.Fprintf(output, "After:  %s\n", result.After.File)
	if result.After.SavedAt != nil {
		fmt.Fprintf(output, "        saved %s\n", result.After.SavedAt.Format("2006-01-02 15:04:05"))
	}

	fmt.Fprintln(output, "\nVulnerability Summary:")
	fmt.Fprintf(output, "  %-10s  %-10s  %-10s  %-10s\n", "Severity", "Before", "After", "Change")
	fmt.Fprintln(output, "  "+strings.Repeat("-", 45))
	for _, severity := range model.DisplaySeverities {
		fmt.Fprintf(output, "  %-10s  %-10d  %-10d  %-10s\n",
			severity,
			result.Before.Severities[severity],
			result.After.Severities[severity],
			formatDelta(result.Change.Deltas[severity]))
	}
	fmt.Fprintln(output, "  "+strings.Repeat("-", 45))
	fmt.Fprintf(output, "  %-10s  %-10d  %-10d  %-10s\n", "Total",
		result.Before.Total, result.After.Total,
		formatDelta(result.Change.TotalDelta))

	return nil
}

// formatRiskDirection formats the risk change direction for display.
func formatRiskDirection(direction string) string {
	switch direction {
	case riskDirectionImproved:
		return "IMPROVED (vulnerabilities decreased)"
	case riskDirectionWorsened:
		return "WORSENED (vulnerabilities increased)"
	default:
		return "UNCHANGED"
	}
}

// formatDelta formats a numeric delta with sign for display.
func formatDelta(delta int) string {
	if delta > 0 {
		return "+" + strconv.Itoa(delta)
	} else if delta < 0 {
		return strconv.Itoa(delta)
	}
	return "0"
}
