// Package geometry turns normalized rows and a chart configuration into
// renderer-agnostic shapes: scales, ticks, line paths, bars and pie wedges.
//
// Compute is pure apart from the line hue, which is drawn from the supplied
// RNG once per call. Theme changes only colors, never coordinates.
package geometry

import (
	"handchart/domain/chart"
	"handchart/ports"
)

// Empty-state reasons
const (
	ReasonNoWidth      = "viewport has no width"
	ReasonNoColumns    = "x and y columns are not selected"
	ReasonNoRows       = "no plottable rows"
	ReasonUnknownChart = "unknown chart type"
)

// Input is everything a redraw depends on
type Input struct {
	Rows     []chart.NormalizedRow
	Config   chart.ChartConfig
	Viewport chart.Viewport
	Theme    chart.Theme
	RNG      ports.RNGPort
	Options  Options
}

// Compute derives the geometry for one redraw. Insufficient input yields the
// empty state, which renderers draw as a cleared surface.
func Compute(in Input) *chart.Geometry {
	cfg := in.Config
	switch {
	case in.Viewport.Width <= 0:
		return chart.EmptyGeometry(ReasonNoWidth)
	case !cfg.Configured():
		return chart.EmptyGeometry(ReasonNoColumns)
	case len(in.Rows) == 0:
		return chart.EmptyGeometry(ReasonNoRows)
	}
	chartType, err := chart.ParseChartType(string(cfg.ChartType))
	if err != nil {
		return chart.EmptyGeometry(ReasonUnknownChart)
	}
	cfg.ChartType = chartType

	opts := in.Options.withDefaults()
	palette := in.Theme.Palette()
	width := in.Viewport.Width
	height := opts.height(in.Viewport)

	g := &chart.Geometry{
		State:     chart.StateReady,
		ChartType: cfg.ChartType,
		Title:     cfg.Title,
		XColumn:   cfg.XColumn,
		YColumn:   cfg.YColumn,
		Theme:     in.Theme,
		TextColor: palette.Text,
		AxisColor: palette.Axis,
		Width:     width,
		Height:    height,
	}

	if !cfg.ChartType.IsCartesian() {
		g.InnerWidth, g.InnerHeight = width, height
		g.Pie = pieGeometry(in.Rows, cfg, width, height, opts)
		return g
	}

	g.Margin = CartesianMargin
	g.InnerWidth, g.InnerHeight = inner(width, height, g.Margin)
	c := newCartesian(in.Rows, g.InnerWidth, g.InnerHeight, opts)
	g.Bandwidth = c.x.Bandwidth()
	g.XTicks = c.xTicks(opts)
	g.YTicks = c.yTicks()

	switch cfg.ChartType {
	case chart.ChartBar:
		g.Bars = c.bars(in.Rows, cfg, opts)
	default:
		g.Line = c.lineGeometry(in.Rows, cfg, in.Theme, in.RNG, opts)
	}
	return g
}
