package geometry

import (
	"math"
	"testing"

	"handchart/domain/chart"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRNG is a mock implementation of ports.RNGPort
type MockRNG struct {
	mock.Mock
}

func (m *MockRNG) Float64() float64 {
	args := m.Called()
	return args.Get(0).(float64)
}

func (m *MockRNG) Intn(n int) int {
	args := m.Called(n)
	return args.Int(0)
}

func salesRows() []chart.NormalizedRow {
	return []chart.NormalizedRow{
		{X: "Jan", Y: 120, Source: 0},
		{X: "Mar", Y: 200, Source: 2},
	}
}

func salesConfig(t chart.ChartType) chart.ChartConfig {
	return chart.ChartConfig{ChartType: t, XColumn: "month", YColumn: "sales"}
}

func TestComputeEmptyStates(t *testing.T) {
	tests := []struct {
		name   string
		in     Input
		reason string
	}{
		{"no width", Input{Rows: salesRows(), Config: salesConfig(chart.ChartLine)}, ReasonNoWidth},
		{"no columns", Input{Rows: salesRows(), Config: chart.DefaultConfig(), Viewport: chart.Viewport{Width: 800}}, ReasonNoColumns},
		{"no rows", Input{Config: salesConfig(chart.ChartBar), Viewport: chart.Viewport{Width: 800}}, ReasonNoRows},
		{"bad type", Input{Rows: salesRows(), Config: salesConfig("Radar"), Viewport: chart.Viewport{Width: 800}}, ReasonUnknownChart},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := Compute(tt.in)
			assert.Equal(t, chart.StateEmpty, g.State)
			assert.Equal(t, tt.reason, g.Reason)
			assert.Empty(t, g.Marks())
		})
	}
}

func TestComputeHeight(t *testing.T) {
	wide := Compute(Input{Rows: salesRows(), Config: salesConfig(chart.ChartBar), Viewport: chart.Viewport{Width: 800}})
	assert.Equal(t, 400.0, wide.Height)
	assert.Equal(t, 710.0, wide.InnerWidth)
	assert.Equal(t, 330.0, wide.InnerHeight)

	narrow := Compute(Input{Rows: salesRows(), Config: salesConfig(chart.ChartBar), Viewport: chart.Viewport{Width: 500}})
	assert.Equal(t, 300.0, narrow.Height)

	explicit := Compute(Input{Rows: salesRows(), Config: salesConfig(chart.ChartBar), Viewport: chart.Viewport{Width: 500, Height: 250}})
	assert.Equal(t, 250.0, explicit.Height)
}

func TestComputeBars(t *testing.T) {
	g := Compute(Input{Rows: salesRows(), Config: salesConfig(chart.ChartBar), Viewport: chart.Viewport{Width: 800}})
	require.True(t, g.Ready())
	require.Len(t, g.Bars, 2)

	jan := g.Bars[0]
	assert.InDelta(t, 132.0, jan.Rect.Y, 1e-9)
	assert.InDelta(t, 198.0, jan.Rect.Height, 1e-9)
	assert.InDelta(t, g.Bandwidth, jan.Rect.Width, 1e-9)
	assert.Equal(t, jan.Rect.X+2, jan.Shadow.X)
	assert.Equal(t, jan.Rect.Y+2, jan.Shadow.Y)
	assert.Equal(t, "#4e79a7", jan.Fill)
	assert.Equal(t, "#f28e2c", g.Bars[1].Fill)

	assert.Equal(t, 0, jan.Row)
	assert.Equal(t, 2, g.Bars[1].Row)
	assert.Equal(t, "month: Jan, sales: 120", jan.Tooltip)
	assert.Equal(t, "month: Mar, sales: 200", g.Bars[1].Tooltip)

	require.Len(t, g.XTicks, 2)
	assert.Equal(t, "Jan", g.XTicks[0].Label)
	assert.InDelta(t, jan.Rect.X+g.Bandwidth/2, g.XTicks[0].Pos, 1e-9)

	labels := make([]string, len(g.YTicks))
	for i, tick := range g.YTicks {
		labels[i] = tick.Label
	}
	assert.Equal(t, []string{"0", "50", "100", "150", "200"}, labels)
}

func TestComputeNegativeBar(t *testing.T) {
	rows := []chart.NormalizedRow{{X: "a", Y: 100}, {X: "b", Y: -50}}
	g := Compute(Input{Rows: rows, Config: salesConfig(chart.ChartBar), Viewport: chart.Viewport{Width: 800}})

	zero := g.InnerHeight
	neg := g.Bars[1]
	assert.InDelta(t, zero, neg.Rect.Y, 1e-9)
	assert.InDelta(t, zero/2, neg.Rect.Height, 1e-9)
}

func TestComputeLine(t *testing.T) {
	rng := new(MockRNG)
	rng.On("Float64").Return(0.0).Once()

	g := Compute(Input{Rows: salesRows(), Config: salesConfig(chart.ChartLine), Viewport: chart.Viewport{Width: 800}, RNG: rng})
	require.True(t, g.Ready())
	require.NotNil(t, g.Line)

	assert.Equal(t, "#d92626", g.Line.Color)
	assert.Equal(t, 2.0, g.Line.StrokeWidth)
	require.Len(t, g.Line.Segments, 1)
	require.Len(t, g.Line.Points, 2)

	p := g.Line.Points[1]
	assert.Equal(t, 6.0, p.Radius)
	assert.InDelta(t, 0.0, p.Center.Y, 1e-9)
	assert.Equal(t, g.Line.Segments[0][1], p.Center)
	assert.Equal(t, 2, p.Row)
	rng.AssertExpectations(t)
}

func TestThemeChangesColorsOnly(t *testing.T) {
	rng := new(MockRNG)
	rng.On("Float64").Return(0.0)

	in := Input{Rows: salesRows(), Config: salesConfig(chart.ChartLine), Viewport: chart.Viewport{Width: 800}, RNG: rng}
	light := Compute(in)
	in.Theme = chart.ThemeDark
	dark := Compute(in)

	assert.Equal(t, "#000000", light.TextColor)
	assert.Equal(t, "#ffffff", dark.TextColor)
	assert.Equal(t, "#d65c5c", dark.Line.Color)
	assert.Equal(t, light.Line.Segments, dark.Line.Segments)
	assert.Equal(t, light.YTicks, dark.YTicks)
}

func TestComputeThinsManyCategories(t *testing.T) {
	rows := make([]chart.NormalizedRow, 37)
	for i := range rows {
		rows[i] = chart.NormalizedRow{X: string(rune('A'+i%26)) + string(rune('a'+i/26)), Y: float64(i), Source: i}
	}
	// inner width 500 fits ten labels
	g := Compute(Input{Rows: rows, Config: salesConfig(chart.ChartBar), Viewport: chart.Viewport{Width: 590}})

	require.Len(t, g.XTicks, 10)
	assert.Equal(t, rows[4].X, g.XTicks[1].Label)
	assert.Equal(t, rows[36].X, g.XTicks[9].Label)
}

func TestComputePie(t *testing.T) {
	rows := []chart.NormalizedRow{{X: "a", Y: 10}, {X: "b", Y: 20}, {X: "c", Y: 30}, {X: "d", Y: -5}}
	g := Compute(Input{Rows: rows, Config: salesConfig(chart.ChartPie), Viewport: chart.Viewport{Width: 400, Height: 400}})

	require.True(t, g.Ready())
	require.NotNil(t, g.Pie)
	assert.Equal(t, chart.Point{X: 200, Y: 200}, g.Pie.Center)
	assert.Equal(t, 160.0, g.Pie.Radius)
	assert.Equal(t, chart.Margin{}, g.Margin)

	w := g.Pie.Wedges
	require.Len(t, w, 4)
	assert.InDelta(t, math.Pi/3, w[0].Span(), 1e-9)
	assert.InDelta(t, 2*math.Pi/3, w[1].Span(), 1e-9)
	assert.InDelta(t, math.Pi, w[2].Span(), 1e-9)
	assert.Equal(t, 0.0, w[3].Span())
	assert.InDelta(t, 2*math.Pi, w[2].EndAngle, 1e-9)

	// c spans the left half, so its centroid sits left of center
	assert.InDelta(t, 120, w[2].Centroid.X, 1e-9)
	assert.InDelta(t, 200, w[2].Centroid.Y, 1e-9)
	assert.Equal(t, "c", w[2].Label)
	assert.Equal(t, "#e15759", w[2].Fill)
	assert.Len(t, g.Marks(), 4)
}

func TestComputePieTinyViewport(t *testing.T) {
	rows := []chart.NormalizedRow{{X: "a", Y: 1}}
	g := Compute(Input{Rows: rows, Config: salesConfig(chart.ChartPie), Viewport: chart.Viewport{Width: 60, Height: 60}})
	assert.Equal(t, 0.0, g.Pie.Radius)
}

func TestCategoryColorsWrap(t *testing.T) {
	cats := make([]string, 12)
	for i := range cats {
		cats[i] = string(rune('a' + i))
	}
	c := NewCategoryColors(cats)
	assert.Equal(t, Tableau10[0], c.Color("k"))
	assert.Equal(t, Tableau10[1], c.Color("l"))
	assert.Equal(t, Tableau10[2], c.Color("new"))
}
