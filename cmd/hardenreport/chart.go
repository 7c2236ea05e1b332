package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/AMSONI777/docker-hardening-project/internal/chart"
	"github.com/AMSONI777/docker-hardening-project/internal/config"
	"github.com/AMSONI777/docker-hardening-project/internal/model"
	"github.com/AMSONI777/docker-hardening-project/internal/trivy"
	"github.com/spf13/cobra"
)

// NewChartCmd creates the chart command.
func NewChartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Render before/after hardening comparison charts",
		Long: `Chart renders three PNG bar charts comparing a baseline Docker image
with its hardened counterpart:

- image_size_comparison.png: image size in MB
- total_vulnerabilities_comparison.png: total vulnerability counts
- vulnerability_severity_comparison.png: per-severity breakdown

Both Trivy reports are loaded before any chart is written, so a missing
or malformed report never leaves partial output behind.

Defaults can be set in a .hardenreport configuration file in the current
or home directory. Command-line flags override the configuration file.

Examples:
  # Render charts from the default report files
  hardenreport chart

  # Use explicit report files and image sizes
  hardenreport chart -b baseline.json -H hardened.json -B 1970 -S 555

  # Write charts to a different directory
  hardenreport chart -o charts/

  # Use a custom configuration file
  hardenreport chart -c myconfig.yaml`,
		Args: cobra.NoArgs,
		RunE: runChartCmd,
	}

	// Report selection flags
	cmd.Flags().StringP("baseline", "b", config.DefaultBaselineReportFile,
		"Trivy report of the baseline image")
	cmd.Flags().StringP("hardened", "H", config.DefaultHardenedReportFile,
		"Trivy report of the hardened image")

	// Chart content flags
	cmd.Flags().IntP("baseline-size", "B", config.DefaultBaselineImageSizeMB,
		"Baseline image size in megabytes")
	cmd.Flags().IntP("hardened-size", "S", config.DefaultHardenedImageSizeMB,
		"Hardened image size in megabytes")
	cmd.Flags().StringP("output-dir", "o", ".",
		"Directory chart PNG files are written to")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .hardenreport in current or home directory)")

	return cmd
}

// runChartCmd executes the chart command.
func runChartCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildChartConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(getVerboseFlag(cmd))
	slog.SetDefault(logger)

	return runChart(cfg, cmd.OutOrStdout(), logger)
}

// buildChartConfig creates a Config from flags and the configuration file.
// Precedence: command-line flags > configuration file > built-in defaults.
func buildChartConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// Apply configuration file values over the defaults first.
	// If user explicitly specified a config file path, error if not found.
	// If no path specified, silently skip when no file is found.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		file, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		file.Apply(cfg)
	} else if explicitConfigPath {
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
	}

	// Command-line flags win over the config file, but only when the
	// user actually set them; otherwise flag defaults would silently
	// shadow config file values.
	if cmd.Flags().Changed("baseline") {
		cfg.BaselineFile, err = cmd.Flags().GetString("baseline")
		if err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("hardened") {
		cfg.HardenedFile, err = cmd.Flags().GetString("hardened")
		if err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("baseline-size") {
		cfg.BaselineSizeMB, err = cmd.Flags().GetInt("baseline-size")
		if err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("hardened-size") {
		cfg.HardenedSizeMB, err = cmd.Flags().GetInt("hardened-size")
		if err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("output-dir") {
		cfg.OutputDir, err = cmd.Flags().GetString("output-dir")
		if err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// runChart loads both reports and renders all comparison charts.
func runChart(cfg *config.Config, stdout io.Writer, logger *slog.Logger) error {
	baselineReports, err := trivy.LoadReports(cfg.BaselineFile)
	if err != nil {
		return err
	}
	hardenedReports, err := trivy.LoadReports(cfg.HardenedFile)
	if err != nil {
		return err
	}

	baseline := model.NewScanSummary(cfg.BaselineFile, baselineReports)
	hardened := model.NewScanSummary(cfg.HardenedFile, hardenedReports)

	logger.Debug("reports loaded",
		"baselineTotal", baseline.Total,
		"hardenedTotal", hardened.Total,
	)

	renderer := chart.NewRenderer(
		chart.WithOutputDir(cfg.OutputDir),
		chart.WithLabels(cfg.BaselineLabel, cfg.HardenedLabel),
	)

	paths, err := renderer.RenderAll(cfg.BaselineSizeMB, cfg.HardenedSizeMB, baseline, hardened)
	if err != nil {
		return fmt.Errorf("failed to render charts: %w", err)
	}

	for _, path := range paths {
		fmt.Fprintf(stdout, "Chart %s has been saved.\n", path)
	}

	return nil
}
