// Package chart renders the game data charts (line plots, histograms and
// category counts) to image files with gonum/plot.
package chart

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
)

var ErrNoData = errors.New("no data to plot")

const (
	DefaultWidth  = 7.5 * vg.Inch
	DefaultHeight = 3.5 * vg.Inch
	DefaultBins   = 10
)

type Options struct {
	Title  string
	XLabel string
	YLabel string
	Width  vg.Length
	Height vg.Length
	// Bins is the histogram bin count.
	Bins int
	// XTicks, when set, replaces the automatic x axis ticks.
	XTicks []float64
	// TickRotation rotates x tick labels, in degrees.
	TickRotation float64
}

func (o Options) size() (vg.Length, vg.Length) {
	w, h := o.Width, o.Height
	if w <= 0 {
		w = DefaultWidth
	}
	if h <= 0 {
		h = DefaultHeight
	}
	return w, h
}

func (o Options) newPlot() *plot.Plot {
	p := plot.New()
	p.Title.Text = o.Title
	p.X.Label.Text = o.XLabel
	p.Y.Label.Text = o.YLabel

	if len(o.XTicks) > 0 {
		ticks := make([]plot.Tick, len(o.XTicks))
		for i, v := range o.XTicks {
			ticks[i] = plot.Tick{Value: v, Label: strconv.FormatFloat(v, 'g', -1, 64)}
		}
		p.X.Tick.Marker = plot.ConstantTicks(ticks)
	}
	if o.TickRotation != 0 {
		p.X.Tick.Label.Rotation = o.TickRotation * math.Pi / 180
		p.X.Tick.Label.XAlign = text.XRight
	}
	return p
}

func save(p *plot.Plot, o Options, path string) error {
	w, h := o.size()
	if err := p.Save(w, h, path); err != nil {
		return fmt.Errorf("failed to save chart to %s: %w", path, err)
	}
	return nil
}

// Line draws xys as a single line. Points with a NaN coordinate are skipped.
func Line(xys plotter.XYs, o Options, path string) error {
	points := make(plotter.XYs, 0, len(xys))
	for _, xy := range xys {
		if math.IsNaN(xy.X) || math.IsNaN(xy.Y) {
			continue
		}
		points = append(points, xy)
	}
	if len(points) == 0 {
		return ErrNoData
	}

	p := o.newPlot()
	line, err := plotter.NewLine(points)
	if err != nil {
		return fmt.Errorf("failed to build line: %w", err)
	}
	p.Add(line)
	return save(p, o, path)
}

// Histogram draws the distribution of values. NaN values are skipped.
func Histogram(values []float64, o Options, path string) error {
	vs := make(plotter.Values, 0, len(values))
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		vs = append(vs, v)
	}
	if len(vs) == 0 {
		return ErrNoData
	}

	bins := o.Bins
	if bins <= 0 {
		bins = DefaultBins
	}

	p := o.newPlot()
	hist, err := plotter.NewHist(vs, bins)
	if err != nil {
		return fmt.Errorf("failed to build histogram: %w", err)
	}
	p.Add(hist)
	return save(p, o, path)
}

// Categories draws one bar per distinct label, sized by how often it occurs.
// Bars are ordered by first appearance.
func Categories(labels []string, o Options, path string) error {
	if len(labels) == 0 {
		return ErrNoData
	}

	names, counts := Count(labels)

	p := o.newPlot()
	bars, err := plotter.NewBarChart(counts, vg.Points(20))
	if err != nil {
		return fmt.Errorf("failed to build bar chart: %w", err)
	}
	p.Add(bars)
	p.NominalX(names...)
	return save(p, o, path)
}

// Count tallies labels in first-seen order.
func Count(labels []string) ([]string, plotter.Values) {
	var names []string
	var counts plotter.Values
	index := make(map[string]int)
	for _, l := range labels {
		i, ok := index[l]
		if !ok {
			i = len(names)
			index[l] = i
			names = append(names, l)
			counts = append(counts, 0)
		}
		counts[i]++
	}
	return names, counts
}
