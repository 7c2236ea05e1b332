package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/AMSONI777/docker-hardening-project/internal/config"
	"github.com/AMSONI777/docker-hardening-project/internal/database"
	"github.com/AMSONI777/docker-hardening-project/internal/model"
	"github.com/AMSONI777/docker-hardening-project/internal/report"
	"github.com/AMSONI777/docker-hardening-project/internal/trivy"
	"github.com/spf13/cobra"
)

// NewSummaryCmd creates the summary command.
func NewSummaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary <report.json> [report.json ...]",
		Short: "Print per-severity vulnerability counts for Trivy reports",
		Long: `Summary reads one or more Trivy JSON vulnerability reports and prints
a per-severity count table for each.

Severities are counted across all results in a report and printed in
fixed order: CRITICAL, HIGH, MEDIUM, LOW, UNKNOWN. Vulnerabilities
without a severity field are counted as UNKNOWN.

All report files are read and decoded before any output is produced,
so a broken file never leaves a partial summary behind.

Examples:
  # Summarize a single report
  hardenreport summary trivy-scan-results.json

  # Summarize baseline and hardened reports in one run
  hardenreport summary trivy-scan-results.json trivy-scan-results-hardened.json

  # Output JSON instead of the text table
  hardenreport summary --json trivy-scan-results.json

  # Write a Markdown summary to a file
  hardenreport summary --markdown -o summary.md trivy-scan-results.json

  # Record the summary in the history database
  hardenreport summary --save trivy-scan-results.json`,
		Args:          cobra.ArbitraryArgs,
		RunE:          runSummaryCmd,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Report format flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON summary (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown summary (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write summary to specified file path (creates directories if needed)")
	cmd.Flags().BoolP("all-severities", "a", false,
		"Also print severity labels outside the fixed ordering")

	// History flags
	cmd.Flags().BoolP("save", "s", false,
		"Save summaries to the history database")

	return cmd
}

// runSummaryCmd executes the summary command.
func runSummaryCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildSummaryConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(getVerboseFlag(cmd))
	slog.SetDefault(logger)

	return runSummary(cmd.Context(), cfg, cmd.OutOrStdout(), logger)
}

// buildSummaryConfig creates a Config from cobra command flags.
func buildSummaryConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.OutputFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	cfg.ShowOtherLabels, err = cmd.Flags().GetBool("all-severities")
	if err != nil {
		return nil, err
	}

	cfg.SaveToDB, err = cmd.Flags().GetBool("save")
	if err != nil {
		return nil, err
	}

	cfg.ReportFiles = args

	return cfg, nil
}

// runSummary loads all reports, then writes one summary per report file.
func runSummary(ctx context.Context, cfg *config.Config, stdout io.Writer, logger *slog.Logger) error {
	if len(cfg.ReportFiles) == 0 {
		return config.ErrNoReportFile
	}

	// Load every report before producing any output so that a missing
	// or malformed file fails the whole run cleanly.
	summaries := make([]*model.ScanSummary, 0, len(cfg.ReportFiles))
	for _, file := range cfg.ReportFiles {
		reports, err := trivy.LoadReports(file)
		if err != nil {
			return err
		}
		summary := model.NewScanSummary(file, reports)
		logger.Debug("report loaded", "file", file, "total", summary.Total)
		summaries = append(summaries, summary)
	}

	output, closeOutput, err := openSummaryOutput(cfg, stdout)
	if err != nil {
		return err
	}
	defer closeOutput()

	writer := selectSummaryWriter(cfg, output)
	for _, summary := range summaries {
		if _, err := writer.Write(summary); err != nil {
			return fmt.Errorf("failed to write summary for %s: %w", summary.File, err)
		}
	}

	if cfg.SaveToDB {
		if err := saveSummaries(ctx, cfg, summaries, logger); err != nil {
			return err
		}
	}

	return nil
}

// openSummaryOutput resolves the output destination for summaries.
// The returned close function is a no-op for stdout.
func openSummaryOutput(cfg *config.Config, stdout io.Writer) (io.Writer, func(), error) {
	if cfg.OutputFile == "" {
		return stdout, func() {}, nil
	}

	dir := filepath.Dir(cfg.OutputFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.OpenFile(cfg.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}

// selectSummaryWriter picks the report writer for the requested format.
func selectSummaryWriter(cfg *config.Config, output io.Writer) report.Writer {
	switch {
	case cfg.JSONReport:
		return report.NewJSONWriter(output, report.WithPrettyPrint())
	case cfg.MarkdownReport:
		return report.NewMarkdownWriter(output)
	default:
		return report.NewSimpleWriter(output, report.WithOtherLabels(cfg.ShowOtherLabels))
	}
}

// saveSummaries records the summaries in the history database.
func saveSummaries(ctx context.Context, cfg *config.Config, summaries []*model.ScanSummary, logger *slog.Logger) error {
	db, err := database.Open(cfg.DBDir, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	for _, summary := range summaries {
		id, err := db.SaveSummary(ctx, summary)
		if err != nil {
			return fmt.Errorf("failed to save summary for %s: %w", summary.File, err)
		}
		logger.Info("summary saved to database", "file", summary.File, "id", id)
	}
	return nil
}
