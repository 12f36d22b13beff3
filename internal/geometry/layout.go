package geometry

import "handchart/domain/chart"

// Options tunes the drawing area. Zero fields fall back to DefaultOptions.
type Options struct {
	TargetHeight     float64
	NarrowHeight     float64
	NarrowBreakpoint float64
	BandPadding      float64
	MaxLabelWidth    float64
	MarkerRadius     float64
	StrokeWidth      float64
	ShadowOffset     float64
	PieInset         float64
}

// DefaultOptions returns the standard chart layout
func DefaultOptions() Options {
	return Options{
		TargetHeight:     400,
		NarrowHeight:     300,
		NarrowBreakpoint: 640,
		BandPadding:      0.1,
		MaxLabelWidth:    50,
		MarkerRadius:     6,
		StrokeWidth:      2,
		ShadowOffset:     2,
		PieInset:         40,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.TargetHeight <= 0 {
		o.TargetHeight = d.TargetHeight
	}
	if o.NarrowHeight <= 0 {
		o.NarrowHeight = d.NarrowHeight
	}
	if o.NarrowBreakpoint <= 0 {
		o.NarrowBreakpoint = d.NarrowBreakpoint
	}
	if o.BandPadding <= 0 || o.BandPadding >= 1 {
		o.BandPadding = d.BandPadding
	}
	if o.MaxLabelWidth <= 0 {
		o.MaxLabelWidth = d.MaxLabelWidth
	}
	if o.MarkerRadius <= 0 {
		o.MarkerRadius = d.MarkerRadius
	}
	if o.StrokeWidth <= 0 {
		o.StrokeWidth = d.StrokeWidth
	}
	if o.ShadowOffset <= 0 {
		o.ShadowOffset = d.ShadowOffset
	}
	if o.PieInset <= 0 {
		o.PieInset = d.PieInset
	}
	return o
}

// CartesianMargin leaves room for the rotated x labels and the y tick labels
var CartesianMargin = chart.Margin{Top: 20, Right: 30, Bottom: 50, Left: 60}

// height resolves the drawing height: the viewport's own when given,
// otherwise the target height, reduced on narrow viewports
func (o Options) height(vp chart.Viewport) float64 {
	if vp.Height > 0 {
		return vp.Height
	}
	if vp.Width < o.NarrowBreakpoint {
		return o.NarrowHeight
	}
	return o.TargetHeight
}

// inner returns the plot area inside the margins, never negative
func inner(width, height float64, m chart.Margin) (float64, float64) {
	w := width - m.Left - m.Right
	h := height - m.Top - m.Bottom
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return w, h
}
