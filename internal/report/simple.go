package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/AMSONI777/docker-hardening-project/internal/model"
)

// separatorWidth is the width of the line between severities and the total.
const separatorWidth = 49

// SimpleWriter outputs the fixed-format text summary table.
// One line per severity in the order CRITICAL, HIGH, MEDIUM, LOW, UNKNOWN,
// each as a left-justified 10-character label followed by ": " and the
// count, then a separator line and a TOTAL line. Severities absent from
// the tally render as 0.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors by default because:
// 1. It works in all terminals without compatibility issues
// 2. It's easier to pipe to files or other tools
// 3. Color can be added as an option later if needed
type SimpleWriter struct {
	baseWriter

	// showOtherLabels also prints labels outside the fixed ordering
	// (e.g. lowercase or scanner-specific severities) after UNKNOWN.
	showOtherLabels bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithOtherLabels configures the writer to print severity labels that
// fall outside the fixed display ordering. The fixed table only names
// the five well-known labels; other labels still count toward TOTAL.
func WithOtherLabels(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showOtherLabels = show
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter:      newBaseWriter(output),
		showOtherLabels: false,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the summary table.
func (w *SimpleWriter) Write(summary *model.ScanSummary) (int, error) {
	var sb strings.Builder

	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("--- Vulnerability Scan Summary for: %s ---\n", summary.File))

	for _, severity := range model.DisplaySeverities {
		sb.WriteString(fmt.Sprintf("%-10s: %d\n", severity, summary.Count(severity)))
	}

	if w.showOtherLabels {
		for _, label := range summary.OtherLabels() {
			sb.WriteString(fmt.Sprintf("%-10s: %d\n", label, summary.Count(label)))
		}
	}

	sb.WriteString(strings.Repeat("-", separatorWidth))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("%-10s: %d\n", "TOTAL", summary.Total))
	sb.WriteString("--- End of Summary ---\n\n")

	return w.output.Write([]byte(sb.String()))
}
