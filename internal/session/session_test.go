package session

import (
	"strings"
	"testing"

	"handchart/domain/chart"
	"handchart/domain/core"
	"handchart/internal/dataset"
	"handchart/internal/geometry"
	"handchart/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession() *Session {
	return New(core.NewSessionID(), ports.NewSeededRand(7), geometry.DefaultOptions(), nil)
}

func TestIngestSelectsDefaults(t *testing.T) {
	s := newTestSession()

	s.Ingest("sales.csv", strings.NewReader("month,sales\nJan,120\nFeb,abc\nMar,200\n"))

	st := s.State()
	assert.Equal(t, []chart.Column{"month", "sales"}, st.Columns)
	assert.Equal(t, chart.Column("month"), st.Config.XColumn)
	assert.Equal(t, chart.Column("sales"), st.Config.YColumn)
	assert.Equal(t, 3, st.RowCount)

	rows := s.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, "Jan", rows[0].X)
	assert.Equal(t, "Mar", rows[1].X)
}

func TestReuploadReplacesEverything(t *testing.T) {
	s := newTestSession()
	s.Ingest("first.csv", strings.NewReader("a,b,c\n1,2,3\n"))
	require.NoError(t, s.SetYColumn("c"))
	s.SetTitle("Old title")
	require.NoError(t, s.SetChartType("Bar"))

	s.Ingest("second.csv", strings.NewReader("city,temp\nOslo,4\n"))

	st := s.State()
	assert.Equal(t, []chart.Column{"city", "temp"}, st.Columns)
	assert.Equal(t, chart.Column("city"), st.Config.XColumn)
	assert.Equal(t, chart.Column("temp"), st.Config.YColumn)
	assert.Empty(t, st.Config.Title)
	assert.Equal(t, 1, st.RowCount)
	assert.Equal(t, chart.ChartBar, st.Config.ChartType)
}

func TestMalformedIngestClearsChart(t *testing.T) {
	s := newTestSession()
	s.Ingest("good.csv", strings.NewReader("x,y\na,1\n"))
	s.Ingest("bad.csv", strings.NewReader(""))

	st := s.State()
	assert.Empty(t, st.Columns)
	assert.False(t, st.Config.Configured())

	g := s.Geometry(chart.Viewport{Width: 800})
	assert.Equal(t, chart.StateEmpty, g.State)
}

func TestSelectUnknownColumn(t *testing.T) {
	s := newTestSession()
	s.Ingest("d.csv", strings.NewReader("x,y\na,1\n"))

	err := s.SetXColumn("nope")
	assert.ErrorIs(t, err, core.ErrColumnNotFound)
	err = s.SetYColumn("nope")
	assert.ErrorIs(t, err, core.ErrColumnNotFound)

	st := s.State()
	assert.Equal(t, chart.Column("x"), st.Config.XColumn)
	assert.Equal(t, chart.Column("y"), st.Config.YColumn)
}

func TestUpdateConfigIsAllOrNothing(t *testing.T) {
	s := newTestSession()
	s.Ingest("d.csv", strings.NewReader("x,y,z\na,1,2\n"))

	pie := "Pie"
	title := "New"
	bad := chart.Column("missing")
	err := s.UpdateConfig(&pie, nil, &bad, &title)
	assert.ErrorIs(t, err, core.ErrColumnNotFound)

	st := s.State()
	assert.Equal(t, chart.ChartLine, st.Config.ChartType)
	assert.Empty(t, st.Config.Title)

	z := chart.Column("z")
	require.NoError(t, s.UpdateConfig(&pie, nil, &z, &title))
	st = s.State()
	assert.Equal(t, chart.ChartPie, st.Config.ChartType)
	assert.Equal(t, chart.Column("z"), st.Config.YColumn)
	assert.Equal(t, "New", st.Config.Title)

	unknown := "Radar"
	assert.ErrorIs(t, s.UpdateConfig(&unknown, nil, nil, nil), core.ErrUnknownChartType)

	empty := chart.Column("")
	assert.ErrorIs(t, s.UpdateConfig(nil, &empty, nil, nil), core.ErrColumnNotFound)
	assert.Equal(t, chart.Column("x"), s.State().Config.XColumn)
}

func TestUpdateConfigBeforeAnyDataset(t *testing.T) {
	s := newTestSession()

	title := "Draft"
	require.NoError(t, s.UpdateConfig(nil, nil, nil, &title))
	assert.Equal(t, "Draft", s.State().Config.Title)

	x := chart.Column("month")
	assert.ErrorIs(t, s.UpdateConfig(nil, &x, nil, nil), core.ErrColumnNotFound)
}

func TestApplyGrid(t *testing.T) {
	s := newTestSession()
	s.Ingest("d.csv", strings.NewReader("x,y\na,1\n"))

	bad := dataset.NewGrid()
	_, err := s.ApplyGrid(bad)
	require.ErrorIs(t, err, core.ErrGridInvalid)
	assert.Equal(t, []chart.Column{"x", "y"}, s.State().Columns)

	good, err := dataset.GridFromCells([]string{"fruit", "count"}, [][]string{{"apple", "3"}})
	require.NoError(t, err)
	_, err = s.ApplyGrid(good)
	require.NoError(t, err)

	st := s.State()
	assert.Equal(t, []chart.Column{"fruit", "count"}, st.Columns)
	assert.Equal(t, chart.Column("fruit"), st.Config.XColumn)
}

func TestLoadSample(t *testing.T) {
	s := newTestSession()

	sample, err := s.LoadSample("website-traffic")
	require.NoError(t, err)

	st := s.State()
	assert.Equal(t, sample.Title, st.Config.Title)
	assert.Equal(t, chart.Column("weekday"), st.Config.XColumn)
	assert.Equal(t, 7, st.RowCount)

	random, err := s.LoadSample("")
	require.NoError(t, err)
	assert.NotEmpty(t, random.Name)

	_, err = s.LoadSample("unknown")
	assert.ErrorIs(t, err, core.ErrSampleNotFound)
	assert.Equal(t, random.Title, s.State().Config.Title)
}

func TestIngestFileRejectsUnknownExtension(t *testing.T) {
	s := newTestSession()
	_, err := s.IngestFile("chart.pdf", strings.NewReader("%PDF"))
	assert.ErrorIs(t, err, core.ErrUnsupportedFormat)

	res, err := s.IngestFile("data.csv", strings.NewReader("a,b\n1,2\n"))
	require.NoError(t, err)
	assert.Equal(t, 2, res.Columns)
	assert.Equal(t, 1, res.Rows)
}

func TestThemeAndControls(t *testing.T) {
	s := newTestSession()
	assert.Equal(t, chart.ThemeLight, s.State().Theme)
	assert.Equal(t, chart.ThemeDark, s.ToggleTheme())
	assert.Equal(t, chart.ThemeLight, s.ToggleTheme())

	assert.True(t, s.State().ControlsVisible)
	assert.False(t, s.ToggleControls())

	s.SetTheme(chart.ThemeDark)
	assert.Equal(t, chart.ThemeDark, s.State().Theme)
}

func TestGeometryAndSummary(t *testing.T) {
	s := newTestSession()
	s.Ingest("d.csv", strings.NewReader("month,sales\nJan,120\nFeb,abc\nMar,200\n"))
	require.NoError(t, s.SetChartType("bar"))

	g := s.Geometry(chart.Viewport{Width: 800})
	require.True(t, g.Ready())
	require.Len(t, g.Bars, 2)
	assert.Equal(t, 2, g.Bars[1].Row)

	sum := s.Summary()
	assert.Equal(t, 2, sum.Count)
	assert.Equal(t, 160.0, sum.Mean)
	assert.Equal(t, chart.Column("sales"), sum.Column)
}
