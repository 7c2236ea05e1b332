package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/AMSONI777/docker-hardening-project/internal/model"
)

// MarkdownWriter outputs summaries in Markdown format.
// This format is designed for documentation, READMEs, and CI job summaries.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the summary in Markdown format.
func (w *MarkdownWriter) Write(summary *model.ScanSummary) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, summary)
	w.writeSeverityTable(md, summary)

	if summary.HasFindings() {
		w.writePieChart(md, summary)
	}
	w.writeAlert(md, summary)

	return len(md.String()), md.Build()
}

// writeHeader writes the summary header with scan information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, summary *model.ScanSummary) {
	md.H1("Vulnerability Scan Summary")
	md.PlainText("")

	rows := [][]string{
		{"Report File", "`" + summary.File + "`"},
	}
	if summary.ArtifactName != "" {
		rows = append(rows, []string{"Artifact", "`" + summary.ArtifactName + "`"})
	}
	rows = append(rows, []string{"Total Findings", strconv.Itoa(summary.Total)})

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeSeverityTable writes the per-severity count table.
func (w *MarkdownWriter) writeSeverityTable(md *markdown.Markdown, summary *model.ScanSummary) {
	md.H2("Severity Breakdown")
	md.PlainText("")

	icons := map[string]string{
		model.SeverityCritical: "🔴",
		model.SeverityHigh:     "🟠",
		model.SeverityMedium:   "🟡",
		model.SeverityLow:      "🔵",
		model.SeverityUnknown:  "⚪",
	}

	rows := make([][]string, 0, len(model.DisplaySeverities)+2)
	for _, severity := range model.DisplaySeverities {
		rows = append(rows, []string{
			icons[severity] + " " + severity,
			strconv.Itoa(summary.Count(severity)),
		})
	}
	for _, label := range summary.OtherLabels() {
		rows = append(rows, []string{label, strconv.Itoa(summary.Count(label))})
	}
	rows = append(rows, []string{"**Total**", "**" + strconv.Itoa(summary.Total) + "**"})

	md.Table(markdown.TableSet{
		Header: []string{"Severity", "Count"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writePieChart writes a mermaid pie chart for the severity distribution.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, summary *model.ScanSummary) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Vulnerability Severity Distribution"),
		piechart.WithShowData(true),
	)

	for _, severity := range model.DisplaySeverities {
		if count := summary.Count(severity); count > 0 {
			chart.LabelAndIntValue(severity, uint64(count))
		}
	}
	for _, label := range summary.OtherLabels() {
		chart.LabelAndIntValue(label, uint64(summary.Count(label)))
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeAlert writes an appropriate alert based on severity counts.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, summary *model.ScanSummary) {
	switch {
	case summary.Count(model.SeverityCritical) > 0:
		md.Cautionf(
			"Critical vulnerabilities detected! %d critical finding(s) require immediate attention.",
			summary.Count(model.SeverityCritical),
		)
	case summary.Count(model.SeverityHigh) > 0:
		md.Warningf(
			"High severity vulnerabilities detected. %d high severity finding(s) should be addressed.",
			summary.Count(model.SeverityHigh),
		)
	case summary.HasFindings():
		md.Note("Only medium and lower severity findings detected.")
	default:
		md.Tip("No vulnerabilities detected.")
	}
	md.PlainText("")
}
