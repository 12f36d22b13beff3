package chart

// GeometryState is one of the two states a render cycle can reach
type GeometryState string

const (
	// StateEmpty means insufficient input: nothing is drawn and the surface is cleared
	StateEmpty GeometryState = "insufficient_input"
	// StateReady means the full shape set was emitted
	StateReady GeometryState = "ready"
)

// Point is a screen coordinate inside the plot group
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is an axis-aligned rectangle in plot coordinates
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Margin reserves space around the plot area for axis labels
type Margin struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// Tick is one axis label. Pos is measured along the axis inside the plot area.
type Tick struct {
	Value string  `json:"value"`
	Label string  `json:"label"`
	Pos   float64 `json:"pos"`
}

// Mark ties a drawn shape to the row it came from
type Mark struct {
	Row     int     `json:"row"`
	X       string  `json:"x"`
	Y       float64 `json:"y"`
	Tooltip string  `json:"tooltip"`
}

// LinePoint is a marker circle on the line path
type LinePoint struct {
	Mark
	Center Point   `json:"center"`
	Radius float64 `json:"radius"`
}

// LineGeometry is a single series path, split into segments at gaps
type LineGeometry struct {
	Color       string      `json:"color"`
	StrokeWidth float64     `json:"strokeWidth"`
	Segments    [][]Point   `json:"segments"`
	Points      []LinePoint `json:"points"`
}

// Bar is one data rectangle plus its purely decorative shadow outline
type Bar struct {
	Mark
	Rect   Rect   `json:"rect"`
	Shadow Rect   `json:"shadow"`
	Fill   string `json:"fill"`
}

// Wedge is one pie sector. Angles are radians clockwise from 12 o'clock.
type Wedge struct {
	Mark
	StartAngle float64 `json:"startAngle"`
	EndAngle   float64 `json:"endAngle"`
	Fill       string  `json:"fill"`
	Centroid   Point   `json:"centroid"`
	Label      string  `json:"label"`
}

// Span returns the wedge's angular size in radians
func (w Wedge) Span() float64 {
	return w.EndAngle - w.StartAngle
}

// PieGeometry is centered in the full viewport, without margins
type PieGeometry struct {
	Center Point   `json:"center"`
	Radius float64 `json:"radius"`
	Wedges []Wedge `json:"wedges"`
}

// Geometry is the renderer-agnostic output of one redraw
type Geometry struct {
	State  GeometryState `json:"state"`
	Reason string        `json:"reason,omitempty"`

	ChartType ChartType `json:"chartType,omitempty"`
	Title     string    `json:"title,omitempty"`
	XColumn   Column    `json:"xColumn,omitempty"`
	YColumn   Column    `json:"yColumn,omitempty"`
	Theme     Theme     `json:"theme,omitempty"`
	TextColor string    `json:"textColor,omitempty"`
	AxisColor string    `json:"axisColor,omitempty"`

	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	Margin      Margin  `json:"margin"`
	InnerWidth  float64 `json:"innerWidth"`
	InnerHeight float64 `json:"innerHeight"`

	Bandwidth float64 `json:"bandwidth,omitempty"`
	XTicks    []Tick  `json:"xTicks,omitempty"`
	YTicks    []Tick  `json:"yTicks,omitempty"`

	Line *LineGeometry `json:"line,omitempty"`
	Bars []Bar         `json:"bars,omitempty"`
	Pie  *PieGeometry  `json:"pie,omitempty"`
}

// EmptyGeometry is the "insufficient input" state
func EmptyGeometry(reason string) *Geometry {
	return &Geometry{State: StateEmpty, Reason: reason}
}

// Ready reports whether shapes were emitted
func (g *Geometry) Ready() bool {
	return g != nil && g.State == StateReady
}

// Marks returns every data-bearing mark in drawing order
func (g *Geometry) Marks() []Mark {
	if !g.Ready() {
		return nil
	}
	var marks []Mark
	if g.Line != nil {
		for _, p := range g.Line.Points {
			marks = append(marks, p.Mark)
		}
	}
	for _, b := range g.Bars {
		marks = append(marks, b.Mark)
	}
	if g.Pie != nil {
		for _, w := range g.Pie.Wedges {
			marks = append(marks, w.Mark)
		}
	}
	return marks
}
