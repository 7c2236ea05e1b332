package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/AMSONI777/docker-hardening-project/internal/config"
	"github.com/AMSONI777/docker-hardening-project/internal/database"
	"github.com/AMSONI777/docker-hardening-project/internal/model"
	"github.com/spf13/cobra"
)

// noFindingsMessage is shown for stored summaries without vulnerabilities.
const noFindingsMessage = "No findings"

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List scan summaries stored in the history database",
		Long: `History lists all scan summaries saved with 'hardenreport summary --save'.

Each entry shows the record ID, the save date, the source report file,
and a compact severity summary. Record IDs can be used with
'hardenreport compare --with-id' to compare against a stored summary.`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	db, err := database.Open(config.XDGDataDir(), database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	records, err := db.ListSummaries(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list summaries: %w", err)
	}

	return printHistory(cmd.OutOrStdout(), records)
}

// printHistory renders the stored summaries as a table.
func printHistory(output io.Writer, records []database.SummaryRecord) error {
	if len(records) == 0 {
		fmt.Fprintln(output, "No scan summaries found in the database.")
		fmt.Fprintln(output, "\nUse 'hardenreport summary --save <report.json>' to record one.")
		return nil
	}

	fmt.Fprintf(output, "Saved summaries (%d):\n\n", len(records))
	fmt.Fprintf(output, "  %-6s  %-20s  %-40s  %s\n", "ID", "Date", "Report", "Severity Summary")
	fmt.Fprintln(output, "  "+strings.Repeat("-", 90))

	for _, record := range records {
		fmt.Fprintf(output, "  %-6d  %-20s  %-40s  %s\n",
			record.ID,
			record.CreatedAt.Format("2006-01-02 15:04:05"),
			record.Summary.File,
			formatSeveritySummary(record.Summary.Severities),
		)
	}

	fmt.Fprintln(output, "\nUse 'hardenreport compare --with-id <id> <report.json>' to compare against a stored summary.")

	return nil
}

// formatSeveritySummary formats severity counts into a compact string.
func formatSeveritySummary(severities map[string]int) string {
	if severities == nil {
		return "N/A"
	}

	var parts []string
	if v := severities[model.SeverityCritical]; v > 0 {
		parts = append(parts, fmt.Sprintf("C:%d", v))
	}
	if v := severities[model.SeverityHigh]; v > 0 {
		parts = append(parts, fmt.Sprintf("H:%d", v))
	}
	if v := severities[model.SeverityMedium]; v > 0 {
		parts = append(parts, fmt.Sprintf("M:%d", v))
	}
	if v := severities[model.SeverityLow]; v > 0 {
		parts = append(parts, fmt.Sprintf("L:%d", v))
	}
	if v := severities[model.SeverityUnknown]; v > 0 {
		parts = append(parts, fmt.Sprintf("U:%d", v))
	}

	if len(parts) == 0 {
		return noFindingsMessage
	}
	return strings.Join(parts, " ")
}
