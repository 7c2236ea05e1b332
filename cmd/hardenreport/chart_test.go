package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/AMSONI777/docker-hardening-project/internal/chart"
	"github.com/AMSONI777/docker-hardening-project/internal/config"
	"github.com/AMSONI777/docker-hardening-project/internal/trivy"
)

func TestNewChartCmd(t *testing.T) {
	t.Parallel()

	cmd := NewChartCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "chart" {
			t.Errorf("unexpected Use: got %q", cmd.Use)
		}
	})

	t.Run("has expected flags", func(t *testing.T) {
		t.Parallel()
		flagsWithShort := map[string]string{
			"baseline":      "b",
			"hardened":      "H",
			"baseline-size": "B",
			"hardened-size": "S",
			"output-dir":    "o",
			"config":        "c",
		}
		for flag, shorthand := range flagsWithShort {
			f := cmd.Flags().Lookup(flag)
			if f == nil {
				t.Errorf("expected flag %q to exist", flag)
				continue
			}
			if f.Shorthand != shorthand {
				t.Errorf("flag %q: expected shorthand %q, got %q", flag, shorthand, f.Shorthand)
			}
		}
	})

	t.Run("defaults match configuration defaults", func(t *testing.T) {
		t.Parallel()
		f := cmd.Flags().Lookup("baseline")
		if f == nil {
			t.Fatal("expected baseline flag")
		}
		if f.DefValue != config.DefaultBaselineReportFile {
			t.Errorf("baseline default = %q, want %q", f.DefValue, config.DefaultBaselineReportFile)
		}
	})
}

func TestRunChartCmd(t *testing.T) {
	t.Parallel()

	t.Run("renders all three charts", func(t *testing.T) {
		t.Parallel()

		baseline := writeTrivyReport(t, summaryTestReport)
		hardened := filepath.Join(t.TempDir(), "hardened.json")
		if err := os.WriteFile(hardened, []byte(`{"Results": []}`), 0600); err != nil {
			t.Fatalf("failed to write report file: %v", err)
		}
		outDir := t.TempDir()

		var buf bytes.Buffer
		cmd := NewChartCmd()
		cmd.SetOut(&buf)
		cmd.SetErr(&buf)
		cmd.SetArgs([]string{"-b", baseline, "-H", hardened, "-o", outDir})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		for _, name := range []string{
			chart.ImageSizeChartFile,
			chart.TotalChartFile,
			chart.SeverityChartFile,
		} {
			path := filepath.Join(outDir, name)
			info, err := os.Stat(path)
			if err != nil {
				t.Errorf("expected chart file %s: %v", name, err)
				continue
			}
			if info.Size() == 0 {
				t.Errorf("chart file %s is empty", name)
			}
			if !strings.Contains(buf.String(), name) {
				t.Errorf("expected output to mention %s, got:\n%s", name, buf.String())
			}
		}
	})

	t.Run("fails before rendering when a report is missing", func(t *testing.T) {
		t.Parallel()

		baseline := writeTrivyReport(t, summaryTestReport)
		outDir := t.TempDir()

		cmd := NewChartCmd()
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs([]string{
			"-b", baseline,
			"-H", filepath.Join(t.TempDir(), "missing.json"),
			"-o", outDir,
		})

		err := cmd.Execute()
		if !errors.Is(err, trivy.ErrReportNotFound) {
			t.Fatalf("expected ErrReportNotFound, got %v", err)
		}

		entries, err := os.ReadDir(outDir)
		if err != nil {
			t.Fatalf("failed to read output dir: %v", err)
		}
		if len(entries) != 0 {
			t.Errorf("expected no chart files after failure, found %d", len(entries))
		}
	})

	t.Run("fails for explicit missing config file", func(t *testing.T) {
		t.Parallel()

		cmd := NewChartCmd()
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs([]string{"-c", filepath.Join(t.TempDir(), "nope.yaml")})

		err := cmd.Execute()
		if !errors.Is(err, config.ErrConfigNotFound) {
			t.Errorf("expected ErrConfigNotFound, got %v", err)
		}
	})

	t.Run("rejects invalid image size", func(t *testing.T) {
		t.Parallel()

		cmd := NewChartCmd()
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs([]string{"-B", "0"})

		err := cmd.Execute()
		if !errors.Is(err, config.ErrInvalidImageSize) {
			t.Errorf("expected ErrInvalidImageSize, got %v", err)
		}
	})
}

func TestBuildChartConfig(t *testing.T) {
	t.Parallel()

	t.Run("config file values apply over defaults", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		configPath := filepath.Join(dir, ".hardenreport")
		yaml := `reports:
  baseline: custom-baseline.json
charts:
  baselineSizeMB: 1000
  outputDir: charts
`
		if err := os.WriteFile(configPath, []byte(yaml), 0600); err != nil {
			t.Fatalf("failed to write config file: %v", err)
		}

		cmd := NewChartCmd()
		if err := cmd.Flags().Set("config", configPath); err != nil {
			t.Fatalf("failed to set config flag: %v", err)
		}

		cfg, err := buildChartConfig(cmd)
		if err != nil {
			t.Fatalf("buildChartConfig() error = %v", err)
		}

		if cfg.BaselineFile != "custom-baseline.json" {
			t.Errorf("BaselineFile = %q, want config file value", cfg.BaselineFile)
		}
		if cfg.BaselineSizeMB != 1000 {
			t.Errorf("BaselineSizeMB = %d, want 1000", cfg.BaselineSizeMB)
		}
		if cfg.OutputDir != "charts" {
			t.Errorf("OutputDir = %q, want %q", cfg.OutputDir, "charts")
		}
		// Values the config file does not set keep their defaults.
		if cfg.HardenedSizeMB != config.DefaultHardenedImageSizeMB {
			t.Errorf("HardenedSizeMB = %d, want default %d", cfg.HardenedSizeMB, config.DefaultHardenedImageSizeMB)
		}
	})

	t.Run("flags override config file values", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		configPath := filepath.Join(dir, ".hardenreport")
		yaml := `charts:
  baselineSizeMB: 1000
`
		if err := os.WriteFile(configPath, []byte(yaml), 0600); err != nil {
			t.Fatalf("failed to write config file: %v", err)
		}

		cmd := NewChartCmd()
		if err := cmd.Flags().Set("config", configPath); err != nil {
			t.Fatalf("failed to set config flag: %v", err)
		}
		if err := cmd.Flags().Set("baseline-size", "2500"); err != nil {
			t.Fatalf("failed to set baseline-size flag: %v", err)
		}

		cfg, err := buildChartConfig(cmd)
		if err != nil {
			t.Fatalf("buildChartConfig() error = %v", err)
		}

		if cfg.BaselineSizeMB != 2500 {
			t.Errorf("BaselineSizeMB = %d, want flag value 2500", cfg.BaselineSizeMB)
		}
	})
}
