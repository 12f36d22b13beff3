package geometry

import (
	"math"

	"handchart/domain/chart"
	"handchart/ports"

	"github.com/montanaflynn/stats"
)

const yTickCount = 5

// cartesian holds the scales shared by the line and bar charts
type cartesian struct {
	x      *BandScale
	y      *LinearScale
	innerW float64
	innerH float64
}

func newCartesian(rows []chart.NormalizedRow, innerW, innerH float64, opts Options) *cartesian {
	categories := make([]string, len(rows))
	values := make([]float64, len(rows))
	for i, r := range rows {
		categories[i] = r.X
		values[i] = r.Y
	}

	max, err := stats.Max(values)
	if err != nil {
		max = 0
	}

	return &cartesian{
		x:      NewBandScale(categories, 0, innerW, opts.BandPadding),
		y:      NewLinearScale(max, innerH, 0),
		innerW: innerW,
		innerH: innerH,
	}
}

// xTicks labels a thinned subset of the categories, centered on their bands
func (c *cartesian) xTicks(opts Options) []chart.Tick {
	domain := c.x.Domain()
	keep := ThinIndices(len(domain), c.innerW, opts.MaxLabelWidth)

	ticks := make([]chart.Tick, 0, len(keep))
	for _, i := range keep {
		pos, _ := c.x.Center(domain[i])
		ticks = append(ticks, chart.Tick{Value: domain[i], Label: domain[i], Pos: pos})
	}
	return ticks
}

func (c *cartesian) yTicks() []chart.Tick {
	values := c.y.Ticks(yTickCount)
	f := NewTickFormatter(c.y.TickStep(yTickCount))

	ticks := make([]chart.Tick, len(values))
	for i, v := range values {
		ticks[i] = chart.Tick{Value: FormatValue(v), Label: f.Format(v), Pos: c.y.Scale(v)}
	}
	return ticks
}

// lineGeometry threads one path through the band centers. Points that do not
// map to finite coordinates break the path into separate segments.
func (c *cartesian) lineGeometry(rows []chart.NormalizedRow, cfg chart.ChartConfig, theme chart.Theme, rng ports.RNGPort, opts Options) *chart.LineGeometry {
	line := &chart.LineGeometry{
		Color:       LineColor(rng, theme),
		StrokeWidth: opts.StrokeWidth,
		Segments:    [][]chart.Point{},
		Points:      make([]chart.LinePoint, 0, len(rows)),
	}

	var segment []chart.Point
	for _, r := range rows {
		cx, ok := c.x.Center(r.X)
		cy := c.y.Scale(r.Y)
		if !ok || !finite(cx) || !finite(cy) {
			if len(segment) > 0 {
				line.Segments = append(line.Segments, segment)
				segment = nil
			}
			continue
		}

		p := chart.Point{X: cx, Y: cy}
		segment = append(segment, p)
		line.Points = append(line.Points, chart.LinePoint{
			Mark:   markFor(cfg, r),
			Center: p,
			Radius: opts.MarkerRadius,
		})
	}
	if len(segment) > 0 {
		line.Segments = append(line.Segments, segment)
	}
	return line
}

// bars emits one rectangle per row. Bars grow from the zero line, so negative
// values extend downward.
func (c *cartesian) bars(rows []chart.NormalizedRow, cfg chart.ChartConfig, opts Options) []chart.Bar {
	colors := NewCategoryColors(c.x.Domain())
	zero := c.y.Scale(0)
	bw := c.x.Bandwidth()

	bars := make([]chart.Bar, 0, len(rows))
	for _, r := range rows {
		x0, ok := c.x.Position(r.X)
		if !ok {
			continue
		}
		yv := c.y.Scale(r.Y)
		top := math.Min(yv, zero)
		height := math.Abs(zero - yv)

		rect := chart.Rect{X: x0, Y: top, Width: bw, Height: height}
		bars = append(bars, chart.Bar{
			Mark: markFor(cfg, r),
			Rect: rect,
			Shadow: chart.Rect{
				X:      rect.X + opts.ShadowOffset,
				Y:      rect.Y + opts.ShadowOffset,
				Width:  rect.Width,
				Height: rect.Height,
			},
			Fill: colors.Color(r.X),
		})
	}
	return bars
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
