// Package main provides the entry point for the hardenreport CLI.
//
// hardenreport summarizes Trivy vulnerability reports and visualizes
// the effect of Docker image hardening.
//
// Usage:
//
//	hardenreport summary <report.json> [report.json ...]
//	hardenreport chart
//	hardenreport compare <baseline.json> <hardened.json>
//
// See --help for all available options.
package main

// main is the entry point for hardenreport.
func main() {
	Execute()
}
