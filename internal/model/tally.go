package model

import "sort"

// SeverityTally holds occurrence counts per severity label together with
// the derived total across all labels.
//
// Design decision: the counts map and the total are mutated only through
// Add, so the sum of all counts always equals Total. The map is never
// exposed directly; callers read through Count, Labels, and Counts to
// keep the invariant intact.
type SeverityTally struct {
	// counts maps severity labels to occurrence counts.
	counts map[string]int

	// total is the number of occurrences across all labels.
	total int
}

// NewSeverityTally aggregates severity counts across the given reports.
//
// A report whose Results field is absent contributes nothing; a result
// section whose Vulnerabilities field is absent contributes nothing.
// Severity labels are preserved verbatim (no case normalization, no
// folding of unexpected labels) except that a finding without a severity
// counts as UNKNOWN. The aggregation has no failure path.
func NewSeverityTally(reports ...Report) *SeverityTally {
	tally := &SeverityTally{counts: make(map[string]int)}
	for _, report := range reports {
		for _, result := range report.Results {
			for _, vuln := range result.Vulnerabilities {
				tally.Add(vuln.SeverityLabel())
			}
		}
	}
	return tally
}

// Add records one occurrence of the given severity label.
func (t *SeverityTally) Add(label string) {
	t.counts[label]++
	t.total++
}

// Count returns the number of occurrences recorded for label.
// Labels that were never recorded return zero.
func (t *SeverityTally) Count(label string) int {
	return t.counts[label]
}

// Total returns the number of occurrences recorded across all labels.
func (t *SeverityTally) Total() int {
	return t.total
}

// Labels returns all recorded severity labels in lexicographic order.
func (t *SeverityTally) Labels() []string {
	labels := make([]string, 0, len(t.counts))
	for label := range t.counts {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// Counts returns a copy of the label-to-count mapping.
func (t *SeverityTally) Counts() map[string]int {
	counts := make(map[string]int, len(t.counts))
	for label, n := range t.counts {
		counts[label] = n
	}
	return counts
}
