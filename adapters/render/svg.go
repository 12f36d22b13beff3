package render

import (
	"bufio"
	"fmt"
	"html"
	"io"
	"strconv"
	"strings"

	"handchart/domain/chart"
)

// FontStack is the handwriting-style font used for every label
const FontStack = "'Comic Sans MS', 'Comic Neue', cursive"

// SVGRenderer writes geometry as a standalone sketch-styled SVG document.
// Every data mark carries data-row and data-tooltip attributes plus a
// <title> child, which the widget page uses for hover tooltips.
type SVGRenderer struct {
	style Style
}

// NewSVGRenderer creates an SVG renderer with the given sketch style
func NewSVGRenderer(style Style) *SVGRenderer {
	return &SVGRenderer{style: style.withDefaults()}
}

// ContentType implements ports.Renderer
func (r *SVGRenderer) ContentType() string {
	return "image/svg+xml"
}

// Render implements ports.Renderer. Empty geometry produces an empty
// document: the cleared drawing surface.
func (r *SVGRenderer) Render(w io.Writer, g *chart.Geometry) error {
	bw := bufio.NewWriter(w)
	s := &svgWriter{w: bw, pen: newPen(r.style), style: r.style}

	if !g.Ready() {
		state := chart.StateEmpty
		if g != nil {
			state = g.State
		}
		s.printf(`<svg xmlns="http://www.w3.org/2000/svg" class="handchart" data-state="%s"></svg>`, state)
		return bw.Flush()
	}

	s.printf(`<svg xmlns="http://www.w3.org/2000/svg" class="handchart" data-state="%s" data-chart="%s" width="%s" height="%s" viewBox="0 0 %s %s" font-family="%s">`,
		g.State, g.ChartType, num(g.Width), num(g.Height), num(g.Width), num(g.Height), html.EscapeString(FontStack))

	if g.Title != "" {
		s.printf(`<text class="title" x="%s" y="14" text-anchor="middle" font-size="14" fill="%s">%s</text>`,
			num(g.Width/2), g.TextColor, html.EscapeString(g.Title))
	}

	if g.Pie != nil {
		s.pie(g)
	} else {
		s.printf(`<g transform="translate(%s,%s)">`, num(g.Margin.Left), num(g.Margin.Top))
		s.axes(g)
		if g.Line != nil {
			s.line(g)
		}
		if len(g.Bars) > 0 {
			s.bars(g)
		}
		s.printf(`</g>`)
	}

	s.printf(`</svg>`)
	if s.err != nil {
		return s.err
	}
	return bw.Flush()
}

type svgWriter struct {
	w     *bufio.Writer
	pen   *pen
	style Style
	err   error
}

func (s *svgWriter) printf(format string, args ...interface{}) {
	if s.err != nil {
		return
	}
	_, s.err = fmt.Fprintf(s.w, format, args...)
}

func (s *svgWriter) axes(g *chart.Geometry) {
	s.printf(`<g class="x-axis" transform="translate(0,%s)" font-size="10" fill="%s">`, num(g.InnerHeight), g.TextColor)
	for _, t := range g.XTicks {
		s.printf(`<text transform="translate(%s,0) rotate(-45)" y="9" dy="0.71em" text-anchor="end">%s</text>`,
			num(t.Pos), html.EscapeString(t.Label))
	}
	s.printf(`</g>`)

	s.printf(`<g class="y-axis" font-size="10" fill="%s">`, g.TextColor)
	for _, t := range g.YTicks {
		s.printf(`<text x="-9" y="%s" dy="0.32em" text-anchor="end">%s</text>`, num(t.Pos), html.EscapeString(t.Label))
	}
	s.printf(`</g>`)
}

func (s *svgWriter) line(g *chart.Geometry) {
	l := g.Line
	s.printf(`<g class="line">`)
	for _, seg := range l.Segments {
		for _, stroke := range s.pen.polyline(seg) {
			s.printf(`<path d="%s" fill="none" stroke="%s" stroke-width="%s" stroke-linecap="round"/>`,
				pathData(stroke, false), l.Color, num(l.StrokeWidth))
		}
	}
	for _, p := range l.Points {
		s.printf(`<path d="%s" fill="%s" stroke="none"/>`, pathData(s.pen.circle(p.Center, p.Radius/2), true), l.Color)
	}
	for _, p := range l.Points {
		s.printf(`<circle class="mark" cx="%s" cy="%s" r="%s" fill="transparent"%s>%s</circle>`,
			num(p.Center.X), num(p.Center.Y), num(p.Radius), markAttrs(p.Mark), markTitle(p.Mark))
	}
	s.printf(`</g>`)
}

func (s *svgWriter) bars(g *chart.Geometry) {
	outline := g.Theme.Palette().Outline
	s.printf(`<g class="bars">`)
	for _, b := range g.Bars {
		if fill := zigzagHachure(b.Rect, s.style.HachureAngle, s.style.HachureGap); len(fill) > 1 {
			s.printf(`<path d="%s" fill="none" stroke="%s" stroke-width="1"/>`, pathData(fill, false), b.Fill)
		}
		for _, stroke := range s.pen.rect(b.Rect) {
			s.printf(`<path d="%s" fill="none" stroke="%s" stroke-width="2"/>`, pathData(stroke, false), outline)
		}
		for _, stroke := range s.pen.rect(b.Shadow) {
			s.printf(`<path d="%s" fill="none" stroke="%s" stroke-width="1"/>`, pathData(stroke, false), outline)
		}
	}
	for _, b := range g.Bars {
		s.printf(`<rect class="mark" x="%s" y="%s" width="%s" height="%s" fill="transparent"%s>%s</rect>`,
			num(b.Rect.X), num(b.Rect.Y), num(b.Rect.Width), num(b.Rect.Height), markAttrs(b.Mark), markTitle(b.Mark))
	}
	s.printf(`</g>`)
}

func (s *svgWriter) pie(g *chart.Geometry) {
	p := g.Pie
	s.printf(`<g class="pie">`)
	for _, w := range p.Wedges {
		if w.Span() <= 0 {
			continue
		}
		s.printf(`<path d="%s" fill="%s" stroke="none"/>`, pathData(s.pen.wedge(p.Center, p.Radius, w.StartAngle, w.EndAngle), true), w.Fill)
	}
	for _, w := range p.Wedges {
		s.printf(`<text x="%s" y="%s" dy="0.35em" text-anchor="middle" font-size="12" fill="%s">%s</text>`,
			num(w.Centroid.X), num(w.Centroid.Y), g.TextColor, html.EscapeString(w.Label))
	}
	for _, w := range p.Wedges {
		s.printf(`<path class="mark" d="%s" fill="transparent"%s>%s</path>`,
			pathData(exactWedge(p.Center, p.Radius, w.StartAngle, w.EndAngle), true), markAttrs(w.Mark), markTitle(w.Mark))
	}
	s.printf(`</g>`)
}

// exactWedge is the unjittered sector outline used for hit testing
func exactWedge(center chart.Point, radius, start, end float64) []chart.Point {
	pts := []chart.Point{center}
	for a := start; a < end; a += arcStep {
		pts = append(pts, polar(center, radius, a))
	}
	return append(pts, polar(center, radius, end))
}

func markAttrs(m chart.Mark) string {
	return fmt.Sprintf(` data-row="%d" data-tooltip="%s"`, m.Row, html.EscapeString(m.Tooltip))
}

func markTitle(m chart.Mark) string {
	return "<title>" + html.EscapeString(m.Tooltip) + "</title>"
}

func pathData(pts []chart.Point, closed bool) string {
	var b strings.Builder
	for i, p := range pts {
		if i == 0 {
			b.WriteString("M")
		} else {
			b.WriteString(" L")
		}
		b.WriteString(num(p.X))
		b.WriteByte(',')
		b.WriteString(num(p.Y))
	}
	if closed && len(pts) > 0 {
		b.WriteString(" Z")
	}
	return b.String()
}

// num prints coordinates with at most two decimals
func num(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" || s == "" {
		return "0"
	}
	return s
}
