package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// TestNewConfig tests default values.
func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()

	t.Run("report file defaults", func(t *testing.T) {
		t.Parallel()
		if cfg.BaselineFile != "trivy-scan-results.json" {
			t.Errorf("unexpected baseline file: %q", cfg.BaselineFile)
		}
		if cfg.HardenedFile != "trivy-scan-results-hardened.json" {
			t.Errorf("unexpected hardened file: %q", cfg.HardenedFile)
		}
	})

	t.Run("image size defaults", func(t *testing.T) {
		t.Parallel()
		if cfg.BaselineSizeMB != 1970 {
			t.Errorf("unexpected baseline size: %d", cfg.BaselineSizeMB)
		}
		if cfg.HardenedSizeMB != 555 {
			t.Errorf("unexpected hardened size: %d", cfg.HardenedSizeMB)
		}
	})

	t.Run("output directory defaults to working directory", func(t *testing.T) {
		t.Parallel()
		if cfg.OutputDir != "." {
			t.Errorf("unexpected output dir: %q", cfg.OutputDir)
		}
	})

	t.Run("database directory is set", func(t *testing.T) {
		t.Parallel()
		if cfg.DBDir == "" {
			t.Error("expected non-empty database directory")
		}
	})
}

// TestConfigValidate tests configuration validation.
func TestConfigValidate(t *testing.T) {
	t.Parallel()

	t.Run("valid config passes", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		if err := cfg.Validate(); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("conflicting formats fail", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		cfg.JSONReport = true
		cfg.MarkdownReport = true
		if err := cfg.Validate(); !errors.Is(err, ErrConflictingReportFormats) {
			t.Errorf("expected ErrConflictingReportFormats, got %v", err)
		}
	})

	t.Run("non-positive image size fails", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		cfg.HardenedSizeMB = 0
		if err := cfg.Validate(); !errors.Is(err, ErrInvalidImageSize) {
			t.Errorf("expected ErrInvalidImageSize, got %v", err)
		}

		cfg = NewConfig()
		cfg.BaselineSizeMB = -5
		if err := cfg.Validate(); !errors.Is(err, ErrInvalidImageSize) {
			t.Errorf("expected ErrInvalidImageSize, got %v", err)
		}
	})

	t.Run("empty output directory fails", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		cfg.OutputDir = ""
		if err := cfg.Validate(); !errors.Is(err, ErrInvalidOutputDir) {
			t.Errorf("expected ErrInvalidOutputDir, got %v", err)
		}
	})
}

// TestLoadConfigFile tests YAML config loading.
func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("loads and applies settings", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), DefaultConfigFile)
		content := `reports:
  baseline: before.json
  hardened: after.json
charts:
  baselineSizeMB: 1200
  hardenedSizeMB: 300
  baselineLabel: "Before"
  outputDir: charts
`
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		cf, err := LoadConfigFile(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		cfg := NewConfig()
		cf.Apply(cfg)

		if cfg.BaselineFile != "before.json" {
			t.Errorf("unexpected baseline file: %q", cfg.BaselineFile)
		}
		if cfg.HardenedFile != "after.json" {
			t.Errorf("unexpected hardened file: %q", cfg.HardenedFile)
		}
		if cfg.BaselineSizeMB != 1200 {
			t.Errorf("unexpected baseline size: %d", cfg.BaselineSizeMB)
		}
		if cfg.HardenedSizeMB != 300 {
			t.Errorf("unexpected hardened size: %d", cfg.HardenedSizeMB)
		}
		if cfg.BaselineLabel != "Before" {
			t.Errorf("unexpected baseline label: %q", cfg.BaselineLabel)
		}
		// Unset values keep defaults
		if cfg.HardenedLabel != DefaultHardenedLabel {
			t.Errorf("unexpected hardened label: %q", cfg.HardenedLabel)
		}
		if cfg.OutputDir != "charts" {
			t.Errorf("unexpected output dir: %q", cfg.OutputDir)
		}
	})

	t.Run("missing file returns ErrConfigNotFound", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfigFile(filepath.Join(t.TempDir(), "missing"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("expected ErrConfigNotFound, got %v", err)
		}
	})

	t.Run("invalid YAML returns error", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), DefaultConfigFile)
		if err := os.WriteFile(path, []byte("reports: ["), 0600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		if _, err := LoadConfigFile(path); err == nil {
			t.Error("expected error for invalid YAML")
		}
	})
}

// TestFindConfigFile tests config file discovery.
func TestFindConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("explicit existing path is returned", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "custom.yaml")
		if err := os.WriteFile(path, []byte("charts: {}\n"), 0600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		if got := FindConfigFile(path); got != path {
			t.Errorf("expected %q, got %q", path, got)
		}
	})

	t.Run("explicit missing path returns empty", func(t *testing.T) {
		t.Parallel()

		if got := FindConfigFile(filepath.Join(t.TempDir(), "missing.yaml")); got != "" {
			t.Errorf("expected empty result, got %q", got)
		}
	})
}

// TestXDGDataDir tests the data directory helper.
func TestXDGDataDir(t *testing.T) {
	t.Parallel()

	dir := XDGDataDir()
	if dir == "" {
		t.Fatal("expected non-empty path")
	}
	if filepath.Base(dir) != AppName {
		t.Errorf("expected path ending in %q, got %q", AppName, dir)
	}
}
