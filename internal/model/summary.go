package model

// ScanSummary is the aggregated view of one report file.
// It is the unit consumed by the report writers, the chart renderer,
// the comparison, and the history database.
type ScanSummary struct {
	// File is the path of the report file the summary was built from.
	File string `json:"file"`

	// ArtifactName is the scanned artifact named by the first report
	// document that carries one, if any.
	ArtifactName string `json:"artifact_name,omitempty"`

	// Severities maps severity labels to occurrence counts.
	Severities map[string]int `json:"severities"`

	// Total is the number of findings across all severities.
	Total int `json:"total"`
}

// NewScanSummary builds a ScanSummary for the reports loaded from file.
func NewScanSummary(file string, reports []Report) *ScanSummary {
	tally := NewSeverityTally(reports...)

	summary := &ScanSummary{
		File:       file,
		Severities: tally.Counts(),
		Total:      tally.Total(),
	}
	for _, report := range reports {
		if report.ArtifactName != "" {
			summary.ArtifactName = report.ArtifactName
			break
		}
	}
	return summary
}

// Count returns the count recorded for label, or zero if absent.
func (s *ScanSummary) Count(label string) int {
	return s.Severities[label]
}

// OtherLabels returns recorded labels outside the fixed display ordering,
// in the order the tally reports them (lexicographic).
func (s *ScanSummary) OtherLabels() []string {
	fixed := make(map[string]bool, len(DisplaySeverities))
	for _, label := range DisplaySeverities {
		fixed[label] = true
	}

	tally := &SeverityTally{counts: s.Severities}
	var others []string
	for _, label := range tally.Labels() {
		if !fixed[label] {
			others = append(others, label)
		}
	}
	return others
}

// HasFindings reports whether the summary recorded at least one finding.
func (s *ScanSummary) HasFindings() bool {
	return s.Total > 0
}
