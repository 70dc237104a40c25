// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package chart renders the before/after deduplication counts as two bar
// charts side by side in a PNG image.
package chart

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/pdiddy/research-harvest/internal/report"
)

var (
	skyBlue    = color.RGBA{R: 135, G: 206, B: 235, A: 255}
	lightGreen = color.RGBA{R: 144, G: 238, B: 144, A: 255}
)

// BarRenderer implements report.ChartRenderer with gonum/plot.
type BarRenderer struct {
	Width, Height vg.Length
	DPI           int
}

// NewBarRenderer returns a renderer for a 10x5 inch image at 300 DPI.
func NewBarRenderer() *BarRenderer {
	return &BarRenderer{Width: 10 * vg.Inch, Height: 5 * vg.Inch, DPI: 300}
}

var _ report.ChartRenderer = (*BarRenderer)(nil)

// Render draws before on the left and after on the right and writes the
// PNG to path, creating its directory. Each panel keeps its own category
// order; an empty mapping yields an empty panel.
func (r *BarRenderer) Render(path string, before, after report.SourceCounts) error {
	left, err := panel("Before Deduplication", before, skyBlue)
	if err != nil {
		return err
	}
	left.Y.Label.Text = "Record Count"

	right, err := panel("After Deduplication", after, lightGreen)
	if err != nil {
		return err
	}

	img := vgimg.NewWith(vgimg.UseWH(r.Width, r.Height), vgimg.UseDPI(r.DPI))
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows:      1,
		Cols:      2,
		PadX:      vg.Centimeter,
		PadTop:    vg.Millimeter * 2,
		PadBottom: vg.Millimeter * 2,
		PadLeft:   vg.Millimeter * 2,
		PadRight:  vg.Millimeter * 2,
	}
	plots := [][]*plot.Plot{{left, right}}
	canvases := plot.Align(plots, tiles, dc)
	left.Draw(canvases[0][0])
	right.Draw(canvases[0][1])

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating chart directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating chart file: %w", err)
	}
	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("encoding PNG: %w", err)
	}
	return f.Close()
}

func panel(title string, counts report.SourceCounts, fill color.Color) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Tick.Label.Rotation = math.Pi / 6
	p.X.Tick.Label.XAlign = draw.XRight

	if len(counts) == 0 {
		return p, nil
	}

	values := make(plotter.Values, len(counts))
	names := make([]string, len(counts))
	for i, sc := range counts {
		values[i] = float64(sc.Count)
		names[i] = string(sc.Source)
	}

	bars, err := plotter.NewBarChart(values, vg.Points(30))
	if err != nil {
		return nil, fmt.Errorf("building %s bars: %w", title, err)
	}
	bars.Color = fill
	bars.LineStyle.Width = 0
	p.Add(bars)
	p.NominalX(names...)
	return p, nil
}
