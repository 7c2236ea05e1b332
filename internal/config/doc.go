// Package config provides configuration structures and utilities for
// hardenreport. It defines the options for summarizing reports, rendering
// comparison charts, and history storage, populated from CLI flags and an
// optional .hardenreport YAML file.
package config
