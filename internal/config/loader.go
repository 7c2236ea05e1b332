package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".hardenreport"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File represents the structure of the .hardenreport configuration file.
type File struct {
	// Reports names the default report files used by chart and compare.
	Reports ReportsConfig `yaml:"reports,omitempty"`

	// Charts customizes chart rendering.
	Charts ChartsConfig `yaml:"charts,omitempty"`
}

// ReportsConfig names the report files compared by default.
type ReportsConfig struct {
	// Baseline is the Trivy report of the unhardened image.
	Baseline string `yaml:"baseline,omitempty"`

	// Hardened is the Trivy report of the hardened image.
	Hardened string `yaml:"hardened,omitempty"`
}

// ChartsConfig customizes chart rendering.
type ChartsConfig struct {
	// BaselineSizeMB is the baseline image size in megabytes.
	BaselineSizeMB int `yaml:"baselineSizeMB,omitempty"`

	// HardenedSizeMB is the hardened image size in megabytes.
	HardenedSizeMB int `yaml:"hardenedSizeMB,omitempty"`

	// BaselineLabel captions the baseline image.
	BaselineLabel string `yaml:"baselineLabel,omitempty"`

	// HardenedLabel captions the hardened image.
	HardenedLabel string `yaml:"hardenedLabel,omitempty"`

	// OutputDir is the directory chart PNG files are written to.
	OutputDir string `yaml:"outputDir,omitempty"`
}

// LoadConfigFile loads defaults from a YAML file.
// If the file does not exist, it returns ErrConfigNotFound.
// Callers should handle this error appropriately based on whether
// the config file path was explicitly specified by the user.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}
	return &cf, nil
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .hardenreport in the current directory
// 3. Look for .hardenreport in the user's home directory
//
// Returns the path to the configuration file if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	cwd, err := os.Getwd()
	if err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	home, err := os.UserHomeDir()
	if err == nil {
		homeConfig := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(homeConfig); err == nil {
			return homeConfig
		}
	}

	return ""
}

// Apply overrides cfg with the non-zero values from the file.
// CLI flags that were explicitly set are applied after this, so the
// precedence is flags > config file > built-in defaults.
func (cf *File) Apply(cfg *Config) {
	if cf.Reports.Baseline != "" {
		cfg.BaselineFile = cf.Reports.Baseline
	}
	if cf.Reports.Hardened != "" {
		cfg.HardenedFile = cf.Reports.Hardened
	}
	if cf.Charts.BaselineSizeMB != 0 {
		cfg.BaselineSizeMB = cf.Charts.BaselineSizeMB
	}
	if cf.Charts.HardenedSizeMB != 0 {
		cfg.HardenedSizeMB = cf.Charts.HardenedSizeMB
	}
	if cf.Charts.BaselineLabel != "" {
		cfg.BaselineLabel = cf.Charts.BaselineLabel
	}
	if cf.Charts.HardenedLabel != "" {
		cfg.HardenedLabel = cf.Charts.HardenedLabel
	}
	if cf.Charts.OutputDir != "" {
		cfg.OutputDir = cf.Charts.OutputDir
	}
}
