package chart

import (
	"fmt"
	"image/color"
	"path/filepath"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/AMSONI777/docker-hardening-project/internal/model"
)

// Output file names, fixed so CI pipelines and documentation can link them.
const (
	ImageSizeChartFile = "image_size_comparison.png"
	TotalChartFile     = "total_vulnerabilities_comparison.png"
	SeverityChartFile  = "vulnerability_severity_comparison.png"
)

// Bar colors: red for the baseline image, green for the hardened image
// (Bootstrap's danger and success shades).
var (
	baselineColor = color.RGBA{R: 0xd9, G: 0x53, B: 0x4f, A: 0xff}
	hardenedColor = color.RGBA{R: 0x5c, G: 0xb8, B: 0x5c, A: 0xff}
)

// Renderer writes comparison charts as PNG files into a directory.
type Renderer struct {
	// outputDir is the directory the PNG files are written to.
	outputDir string

	// baselineLabel and hardenedLabel caption the two compared images.
	baselineLabel string
	hardenedLabel string
}

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithOutputDir sets the directory the PNG files are written to.
func WithOutputDir(dir string) RendererOption {
	return func(r *Renderer) {
		if dir != "" {
			r.outputDir = dir
		}
	}
}

// WithLabels sets the captions for the baseline and hardened images.
func WithLabels(baseline, hardened string) RendererOption {
	return func(r *Renderer) {
		if baseline != "" {
			r.baselineLabel = baseline
		}
		if hardened != "" {
			r.hardenedLabel = hardened
		}
	}
}

// NewRenderer creates a Renderer writing to the working directory by default.
func NewRenderer(opts ...RendererOption) *Renderer {
	r := &Renderer{
		outputDir:     ".",
		baselineLabel: "Baseline (insecure-app)",
		hardenedLabel: "Hardened (hardened-app)",
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// RenderAll renders all three comparison charts and returns the written
// file paths. Rendering stops at the first failure; no partial chart set
// is reported as success.
func (r *Renderer) RenderAll(baselineSizeMB, hardenedSizeMB int, baseline, hardened *model.ScanSummary) ([]string, error) {
	var paths []string

	path, err := r.ImageSizeChart(baselineSizeMB, hardenedSizeMB)
	if err != nil {
		return nil, err
	}
	paths = append(paths, path)

	path, err = r.TotalComparisonChart(baseline, hardened)
	if err != nil {
		return nil, err
	}
	paths = append(paths, path)

	path, err = r.SeverityBreakdownChart(baseline, hardened)
	if err != nil {
		return nil, err
	}
	paths = append(paths, path)

	return paths, nil
}

// ImageSizeChart renders the Docker image size comparison.
// Sizes are supplied by the caller because Trivy reports do not carry them.
func (r *Renderer) ImageSizeChart(baselineSizeMB, hardenedSizeMB int) (string, error) {
	p := plot.New()
	p.Title.Text = "Docker Image Size Comparison"
	p.Y.Label.Text = "Image Size (MB)"

	if err := r.pairedBars(p, float64(baselineSizeMB), float64(hardenedSizeMB), func(v float64) string {
		return fmt.Sprintf("%.0f MB", v)
	}); err != nil {
		return "", err
	}

	return r.save(p, ImageSizeChartFile)
}

// TotalComparisonChart renders the total vulnerability count comparison.
func (r *Renderer) TotalComparisonChart(baseline, hardened *model.ScanSummary) (string, error) {
	p := plot.New()
	p.Title.Text = "Total Vulnerability Comparison"
	p.Y.Label.Text = "Total Vulnerability Count"

	if err := r.pairedBars(p, float64(baseline.Total), float64(hardened.Total), func(v float64) string {
		return strconv.Itoa(int(v))
	}); err != nil {
		return "", err
	}

	return r.save(p, TotalChartFile)
}

// SeverityBreakdownChart renders grouped bars for the four ordered
// severities across the two summaries.
func (r *Renderer) SeverityBreakdownChart(baseline, hardened *model.ScanSummary) (string, error) {
	p := plot.New()
	p.Title.Text = "Vulnerability Breakdown by Severity"
	p.Y.Label.Text = "Vulnerability Count"

	baseVals := make(plotter.Values, len(model.ChartSeverities))
	hardVals := make(plotter.Values, len(model.ChartSeverities))
	for i, severity := range model.ChartSeverities {
		baseVals[i] = float64(baseline.Count(severity))
		hardVals[i] = float64(hardened.Count(severity))
	}

	width := vg.Points(25)

	baseBars, err := plotter.NewBarChart(baseVals, width)
	if err != nil {
		return "", fmt.Errorf("could not build baseline bars: %w", err)
	}
	baseBars.Color = baselineColor
	baseBars.LineStyle.Width = 0
	baseBars.Offset = -width / 2

	hardBars, err := plotter.NewBarChart(hardVals, width)
	if err != nil {
		return "", fmt.Errorf("could not build hardened bars: %w", err)
	}
	hardBars.Color = hardenedColor
	hardBars.LineStyle.Width = 0
	hardBars.Offset = width / 2

	baseLabels, err := valueLabels(baseVals, vg.Point{X: -width / 2, Y: vg.Points(3)})
	if err != nil {
		return "", err
	}
	hardLabels, err := valueLabels(hardVals, vg.Point{X: width / 2, Y: vg.Points(3)})
	if err != nil {
		return "", err
	}

	p.Add(plotter.NewGrid(), baseBars, hardBars, baseLabels, hardLabels)
	p.Legend.Add("Baseline", baseBars)
	p.Legend.Add("Hardened", hardBars)
	p.Legend.Top = true
	p.NominalX(model.ChartSeverities...)
	p.Y.Min = 0

	return r.save(p, SeverityChartFile)
}

// pairedBars adds one red and one green bar with value labels to p.
// Each series carries a zero-height placeholder in the other category so
// both bars share the category axis.
func (r *Renderer) pairedBars(p *plot.Plot, baseline, hardened float64, format func(float64) string) error {
	width := vg.Points(60)

	baseBars, err := plotter.NewBarChart(plotter.Values{baseline, 0}, width)
	if err != nil {
		return fmt.Errorf("could not build baseline bar: %w", err)
	}
	baseBars.Color = baselineColor
	baseBars.LineStyle.Width = 0

	hardBars, err := plotter.NewBarChart(plotter.Values{0, hardened}, width)
	if err != nil {
		return fmt.Errorf("could not build hardened bar: %w", err)
	}
	hardBars.Color = hardenedColor
	hardBars.LineStyle.Width = 0

	labels, err := plotter.NewLabels(plotter.XYLabels{
		XYs: []plotter.XY{
			{X: 0, Y: baseline},
			{X: 1, Y: hardened},
		},
		Labels: []string{format(baseline), format(hardened)},
	})
	if err != nil {
		return fmt.Errorf("could not build value labels: %w", err)
	}
	labels.Offset = vg.Point{Y: vg.Points(3)}
	for i := range labels.TextStyle {
		labels.TextStyle[i].XAlign = draw.XCenter
		labels.TextStyle[i].YAlign = draw.YBottom
	}

	p.Add(plotter.NewGrid(), baseBars, hardBars, labels)
	p.NominalX(r.baselineLabel, r.hardenedLabel)
	p.Y.Min = 0
	return nil
}

// valueLabels builds centered labels above each bar of a grouped series.
func valueLabels(vals plotter.Values, offset vg.Point) (*plotter.Labels, error) {
	xys := make([]plotter.XY, len(vals))
	texts := make([]string, len(vals))
	for i, v := range vals {
		xys[i] = plotter.XY{X: float64(i), Y: v}
		texts[i] = strconv.Itoa(int(v))
	}

	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: texts})
	if err != nil {
		return nil, fmt.Errorf("could not build value labels: %w", err)
	}
	labels.Offset = offset
	for i := range labels.TextStyle {
		labels.TextStyle[i].XAlign = draw.XCenter
		labels.TextStyle[i].YAlign = draw.YBottom
	}
	return labels, nil
}

// save writes the plot as a PNG file and returns its path.
func (r *Renderer) save(p *plot.Plot, name string) (string, error) {
	path := filepath.Join(r.outputDir, name)
	if err := p.Save(8*vg.Inch, 6*vg.Inch, path); err != nil {
		return "", fmt.Errorf("could not save chart %s: %w", name, err)
	}
	return path, nil
}
