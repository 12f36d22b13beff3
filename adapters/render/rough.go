// Package render paints chart geometry with a hand-drawn look, either as
// SVG markup for the browser widget or as a PNG raster.
package render

import (
	"math"
	"math/rand"

	"handchart/domain/chart"
)

// Sketch style defaults
const (
	DefaultRoughness    = 1.5
	DefaultHachureAngle = 60.0
	DefaultHachureGap   = 4.0
	DefaultSeed         = 1
	circleSteps         = 24
	arcStep             = math.Pi / 36
)

// Style configures the sketch look shared by the SVG and PNG renderers
type Style struct {
	Seed         int64
	Roughness    float64
	HachureAngle float64
	HachureGap   float64
}

// DefaultStyle returns the standard sketch parameters
func DefaultStyle() Style {
	return Style{
		Seed:         DefaultSeed,
		Roughness:    DefaultRoughness,
		HachureAngle: DefaultHachureAngle,
		HachureGap:   DefaultHachureGap,
	}
}

func (s Style) withDefaults() Style {
	d := DefaultStyle()
	if s.Roughness < 0 {
		s.Roughness = d.Roughness
	}
	if s.HachureGap <= 0 {
		s.HachureGap = d.HachureGap
	}
	if s.HachureAngle == 0 {
		s.HachureAngle = d.HachureAngle
	}
	return s
}

// pen produces wobbly strokes. It is seeded per render so the same geometry
// always sketches the same way.
type pen struct {
	rng       *rand.Rand
	roughness float64
}

func newPen(style Style) *pen {
	return &pen{rng: rand.New(rand.NewSource(style.Seed)), roughness: style.Roughness}
}

func (p *pen) offset(scale float64) float64 {
	return (p.rng.Float64()*2 - 1) * p.roughness * scale
}

func (p *pen) wobble(pt chart.Point) chart.Point {
	return chart.Point{X: pt.X + p.offset(1), Y: pt.Y + p.offset(1)}
}

// line returns two slightly different strokes from a to b, each bowed
// through a jittered midpoint
func (p *pen) line(a, b chart.Point) [][]chart.Point {
	length := math.Hypot(b.X-a.X, b.Y-a.Y)
	bow := math.Min(length/20, 2)
	strokes := make([][]chart.Point, 2)
	for i := range strokes {
		mid := chart.Point{
			X: (a.X+b.X)/2 + p.offset(bow),
			Y: (a.Y+b.Y)/2 + p.offset(bow),
		}
		strokes[i] = []chart.Point{p.wobble(a), mid, p.wobble(b)}
	}
	return strokes
}

// polyline sketches a path through pts twice
func (p *pen) polyline(pts []chart.Point) [][]chart.Point {
	if len(pts) < 2 {
		return nil
	}
	strokes := make([][]chart.Point, 2)
	for i := range strokes {
		s := make([]chart.Point, len(pts))
		for j, pt := range pts {
			s[j] = p.wobble(pt)
		}
		strokes[i] = s
	}
	return strokes
}

// rect sketches the four edges of r, each double-stroked
func (p *pen) rect(r chart.Rect) [][]chart.Point {
	corners := []chart.Point{
		{X: r.X, Y: r.Y},
		{X: r.X + r.Width, Y: r.Y},
		{X: r.X + r.Width, Y: r.Y + r.Height},
		{X: r.X, Y: r.Y + r.Height},
	}
	var strokes [][]chart.Point
	for i := range corners {
		strokes = append(strokes, p.line(corners[i], corners[(i+1)%len(corners)])...)
	}
	return strokes
}

// circle returns a closed outline with a jittered radius
func (p *pen) circle(center chart.Point, radius float64) []chart.Point {
	pts := make([]chart.Point, 0, circleSteps+1)
	for i := 0; i <= circleSteps; i++ {
		a := 2 * math.Pi * float64(i) / circleSteps
		r := radius * (1 + p.offset(0.05))
		pts = append(pts, chart.Point{X: center.X + r*math.Cos(a), Y: center.Y + r*math.Sin(a)})
	}
	return pts
}

// wedge returns a closed polygon for a pie sector. Angles run clockwise
// from 12 o'clock.
func (p *pen) wedge(center chart.Point, radius, start, end float64) []chart.Point {
	pts := []chart.Point{center}
	for a := start; a < end; a += arcStep {
		pts = append(pts, p.wobble(polar(center, radius, a)))
	}
	pts = append(pts, p.wobble(polar(center, radius, end)), center)
	return pts
}

func polar(center chart.Point, radius, angle float64) chart.Point {
	return chart.Point{X: center.X + radius*math.Sin(angle), Y: center.Y - radius*math.Cos(angle)}
}

// maxHachureLines caps the fill of a single shape
const maxHachureLines = 2000

// zigzagHachure fills r with parallel lines at angleDeg, gap apart, joined
// end to end into one zigzag path
func zigzagHachure(r chart.Rect, angleDeg, gap float64) []chart.Point {
	if r.Width <= 0 || r.Height <= 0 || gap <= 0 {
		return nil
	}
	theta := angleDeg * math.Pi / 180
	dx, dy := math.Cos(theta), math.Sin(theta)
	nx, ny := -dy, dx

	x0, x1 := r.X, r.X+r.Width
	y0, y1 := r.Y, r.Y+r.Height
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, c := range [][2]float64{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}} {
		d := c[0]*nx + c[1]*ny
		lo = math.Min(lo, d)
		hi = math.Max(hi, d)
	}

	lines := math.Min(math.Ceil((hi-lo)/gap-0.5), maxHachureLines)
	if !(lines > 0) {
		return nil
	}
	n := int(lines)

	path := make([]chart.Point, 0, 2*n)
	forward := true
	for i := 0; i < n; i++ {
		o := lo + gap/2 + float64(i)*gap
		a, b, ok := clipLine(o*nx, o*ny, dx, dy, x0, y0, x1, y1)
		if !ok {
			continue
		}
		if !forward {
			a, b = b, a
		}
		path = append(path, a, b)
		forward = !forward
	}
	return path
}

// clipLine intersects the line through (px, py) with direction (dx, dy)
// against the box [x0, x1] x [y0, y1]
func clipLine(px, py, dx, dy, x0, y0, x1, y1 float64) (chart.Point, chart.Point, bool) {
	tmin, tmax := math.Inf(-1), math.Inf(1)
	clip := func(p, d, lo, hi float64) bool {
		if math.Abs(d) < 1e-12 {
			return p >= lo && p <= hi
		}
		t0, t1 := (lo-p)/d, (hi-p)/d
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		tmin = math.Max(tmin, t0)
		tmax = math.Min(tmax, t1)
		return true
	}
	if !clip(px, dx, x0, x1) || !clip(py, dy, y0, y1) || tmin >= tmax {
		return chart.Point{}, chart.Point{}, false
	}
	return chart.Point{X: px + tmin*dx, Y: py + tmin*dy},
		chart.Point{X: px + tmax*dx, Y: py + tmax*dy}, true
}
