package model

import (
	"bytes"
	"encoding/json"
)

// Well-known Trivy severity labels. Labels read from reports are kept
// verbatim; these constants only fix the display and chart ordering.
const (
	SeverityCritical = "CRITICAL"
	SeverityHigh     = "HIGH"
	SeverityMedium   = "MEDIUM"
	SeverityLow      = "LOW"
	SeverityUnknown  = "UNKNOWN"
)

// DisplaySeverities is the fixed ordering used by the text summary table.
var DisplaySeverities = []string{
	SeverityCritical,
	SeverityHigh,
	SeverityMedium,
	SeverityLow,
	SeverityUnknown,
}

// ChartSeverities is the fixed ordering used by the grouped severity chart.
// UNKNOWN findings are included in totals but not broken out per bar.
var ChartSeverities = []string{
	SeverityCritical,
	SeverityHigh,
	SeverityMedium,
	SeverityLow,
}

// Report is the root document of a Trivy scan report.
// Only the fields this tool consumes are declared; all other report
// content is ignored during decoding.
type Report struct {
	// SchemaVersion is the Trivy report schema version.
	SchemaVersion int `json:"SchemaVersion,omitempty"`

	// ArtifactName is the name of the scanned artifact (e.g., an image ref).
	ArtifactName string `json:"ArtifactName,omitempty"`

	// ArtifactType is the kind of artifact that was scanned.
	ArtifactType string `json:"ArtifactType,omitempty"`

	// Results holds one section per scanned target (OS packages,
	// language-specific packages, and so on). A report without results
	// contributes no findings.
	Results []Result `json:"Results,omitempty"`
}

// UnmarshalJSON decodes a report, tolerating a Results field that is
// absent, null, or not a list. Older Trivy versions and hand-edited
// reports sometimes carry such values; they contribute no findings
// rather than failing the whole decode.
func (r *Report) UnmarshalJSON(data []byte) error {
	var raw struct {
		SchemaVersion int             `json:"SchemaVersion"`
		ArtifactName  string          `json:"ArtifactName"`
		ArtifactType  string          `json:"ArtifactType"`
		Results       json.RawMessage `json:"Results"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	r.SchemaVersion = raw.SchemaVersion
	r.ArtifactName = raw.ArtifactName
	r.ArtifactType = raw.ArtifactType
	r.Results = nil

	if isJSONArray(raw.Results) {
		var results []Result
		if err := json.Unmarshal(raw.Results, &results); err != nil {
			return err
		}
		r.Results = results
	}
	return nil
}

// Result is one scanned target's section within a report.
type Result struct {
	// Target identifies what was scanned (e.g., "alpine:3.18 (alpine 3.18.4)").
	Target string `json:"Target,omitempty"`

	// Class is the result class reported by Trivy (e.g., "os-pkgs").
	Class string `json:"Class,omitempty"`

	// Type is the package ecosystem (e.g., "alpine", "gobinary").
	Type string `json:"Type,omitempty"`

	// Vulnerabilities lists the findings for this target. A section
	// without vulnerabilities contributes no findings.
	Vulnerabilities []Vulnerability `json:"Vulnerabilities,omitempty"`
}

// UnmarshalJSON decodes a result section, tolerating a Vulnerabilities
// field that is absent, null, or not a list (Trivy emits null for clean
// targets, and some wrappers replace the list with a placeholder string).
func (res *Result) UnmarshalJSON(data []byte) error {
	var raw struct {
		Target          string          `json:"Target"`
		Class           string          `json:"Class"`
		Type            string          `json:"Type"`
		Vulnerabilities json.RawMessage `json:"Vulnerabilities"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	res.Target = raw.Target
	res.Class = raw.Class
	res.Type = raw.Type
	res.Vulnerabilities = nil

	if isJSONArray(raw.Vulnerabilities) {
		var vulns []Vulnerability
		if err := json.Unmarshal(raw.Vulnerabilities, &vulns); err != nil {
			return err
		}
		res.Vulnerabilities = vulns
	}
	return nil
}

// Vulnerability is a single reported finding.
type Vulnerability struct {
	// VulnerabilityID is the CVE or advisory identifier.
	VulnerabilityID string `json:"VulnerabilityID,omitempty"`

	// PkgName is the affected package name.
	PkgName string `json:"PkgName,omitempty"`

	// InstalledVersion is the version found in the image.
	InstalledVersion string `json:"InstalledVersion,omitempty"`

	// FixedVersion is the version that fixes the finding, if any.
	FixedVersion string `json:"FixedVersion,omitempty"`

	// Severity is the severity label assigned by the scanner.
	// A pointer distinguishes an absent or null field (counted as
	// UNKNOWN) from an explicit value, which is preserved verbatim.
	Severity *string `json:"Severity,omitempty"`

	// Title is the short description of the finding.
	Title string `json:"Title,omitempty"`
}

// SeverityLabel returns the severity label for tallying.
// An absent or null Severity field yields SeverityUnknown; any explicit
// value, including unexpected or lowercase labels, is returned verbatim.
func (v Vulnerability) SeverityLabel() string {
	if v.Severity == nil {
		return SeverityUnknown
	}
	return *v.Severity
}

// isJSONArray reports whether raw holds a JSON array value.
func isJSONArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	return len(trimmed) > 0 && trimmed[0] == '['
}
