package render

import (
	"fmt"
	"io"
	"math"

	"handchart/domain/chart"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"
)

// Label sizes in points
const (
	tickFontSize  = 10
	labelFontSize = 12
	titleFontSize = 14
)

// maxRasterSide bounds each image dimension
const maxRasterSide = 16384

// PNGRenderer rasterizes geometry with the same sketch strokes as the SVG
// renderer, using the Go Regular font for labels
type PNGRenderer struct {
	style Style
	font  *text.FontSource
}

// NewPNGRenderer loads the label font and creates a rasterizer
func NewPNGRenderer(style Style) (*PNGRenderer, error) {
	font, err := text.NewFontSource(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to load label font: %w", err)
	}
	return &PNGRenderer{style: style.withDefaults(), font: font}, nil
}

// ContentType implements ports.Renderer
func (r *PNGRenderer) ContentType() string {
	return "image/png"
}

// Close releases the font source
func (r *PNGRenderer) Close() error {
	return r.font.Close()
}

// Render implements ports.Renderer. Empty geometry produces a 1x1
// transparent image.
func (r *PNGRenderer) Render(w io.Writer, g *chart.Geometry) error {
	if !g.Ready() {
		return gg.NewContext(1, 1).EncodePNG(w)
	}

	if g.Width > maxRasterSide || g.Height > maxRasterSide {
		return fmt.Errorf("image %gx%g exceeds %d pixels per side", g.Width, g.Height, maxRasterSide)
	}
	width := int(math.Ceil(g.Width))
	height := int(math.Ceil(g.Height))
	if width < 1 || height < 1 {
		return gg.NewContext(1, 1).EncodePNG(w)
	}

	dc := gg.NewContext(width, height)
	palette := g.Theme.Palette()
	dc.ClearWithColor(gg.Hex(palette.Background))

	p := &painter{dc: dc, pen: newPen(r.style), style: r.style, font: r.font}

	if g.Title != "" {
		dc.SetFont(r.font.Face(titleFontSize))
		dc.SetHexColor(g.TextColor)
		dc.DrawStringAnchored(g.Title, g.Width/2, 4, 0.5, 1)
	}

	if g.Pie != nil {
		if err := p.pie(g); err != nil {
			return err
		}
		return dc.EncodePNG(w)
	}

	dc.Push()
	dc.Translate(g.Margin.Left, g.Margin.Top)
	p.axes(g)
	var err error
	if g.Line != nil {
		err = p.line(g.Line)
	} else {
		err = p.bars(g.Bars, palette.Outline)
	}
	dc.Pop()
	if err != nil {
		return err
	}
	return dc.EncodePNG(w)
}

type painter struct {
	dc    *gg.Context
	pen   *pen
	style Style
	font  *text.FontSource
}

func (p *painter) axes(g *chart.Geometry) {
	p.dc.SetFont(p.font.Face(tickFontSize))
	p.dc.SetHexColor(g.TextColor)
	for _, t := range g.XTicks {
		p.dc.Push()
		p.dc.RotateAbout(-math.Pi/4, t.Pos, g.InnerHeight+9)
		p.dc.DrawStringAnchored(t.Label, t.Pos, g.InnerHeight+9, 1, 0.5)
		p.dc.Pop()
	}
	for _, t := range g.YTicks {
		p.dc.DrawStringAnchored(t.Label, -9, t.Pos, 1, 0.35)
	}
}

func (p *painter) strokes(strokes [][]chart.Point, color string, width float64) error {
	p.dc.SetHexColor(color)
	p.dc.SetLineWidth(width)
	for _, s := range strokes {
		p.trace(s, false)
		if err := p.dc.Stroke(); err != nil {
			return err
		}
	}
	return nil
}

func (p *painter) fill(pts []chart.Point, color string) error {
	if len(pts) < 3 {
		return nil
	}
	p.dc.SetHexColor(color)
	p.trace(pts, true)
	return p.dc.Fill()
}

func (p *painter) trace(pts []chart.Point, closed bool) {
	for i, pt := range pts {
		if i == 0 {
			p.dc.MoveTo(pt.X, pt.Y)
		} else {
			p.dc.LineTo(pt.X, pt.Y)
		}
	}
	if closed {
		p.dc.ClosePath()
	}
}

func (p *painter) line(l *chart.LineGeometry) error {
	for _, seg := range l.Segments {
		if err := p.strokes(p.pen.polyline(seg), l.Color, l.StrokeWidth); err != nil {
			return err
		}
	}
	for _, pt := range l.Points {
		if err := p.fill(p.pen.circle(pt.Center, pt.Radius/2), l.Color); err != nil {
			return err
		}
	}
	return nil
}

func (p *painter) bars(bars []chart.Bar, outline string) error {
	for _, b := range bars {
		if fill := zigzagHachure(b.Rect, p.style.HachureAngle, p.style.HachureGap); len(fill) > 1 {
			if err := p.strokes([][]chart.Point{fill}, b.Fill, 1); err != nil {
				return err
			}
		}
		if err := p.strokes(p.pen.rect(b.Rect), outline, 2); err != nil {
			return err
		}
		if err := p.strokes(p.pen.rect(b.Shadow), outline, 1); err != nil {
			return err
		}
	}
	return nil
}

func (p *painter) pie(g *chart.Geometry) error {
	pie := g.Pie
	for _, w := range pie.Wedges {
		if w.Span() <= 0 {
			continue
		}
		if err := p.fill(p.pen.wedge(pie.Center, pie.Radius, w.StartAngle, w.EndAngle), w.Fill); err != nil {
			return err
		}
	}

	p.dc.SetFont(p.font.Face(labelFontSize))
	p.dc.SetHexColor(g.TextColor)
	for _, w := range pie.Wedges {
		p.dc.DrawStringAnchored(w.Label, w.Centroid.X, w.Centroid.Y, 0.5, 0.35)
	}
	return nil
}
