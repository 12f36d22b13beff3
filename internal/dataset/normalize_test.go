package dataset

import (
	"testing"

	"handchart/adapters/tabular"
	"handchart/domain/chart"
	"handchart/domain/datareadiness/ingestion"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectDefaultColumns(t *testing.T) {
	tests := []struct {
		name    string
		columns []chart.Column
		wantX   chart.Column
		wantY   chart.Column
		wantOK  bool
	}{
		{"none", nil, "", "", false},
		{"one", []chart.Column{"a"}, "", "", false},
		{"two", []chart.Column{"a", "b"}, "a", "b", true},
		{"three", []chart.Column{"c", "a", "b"}, "c", "a", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y, ok := SelectDefaultColumns(tt.columns)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantX, x)
			assert.Equal(t, tt.wantY, y)
		})
	}
}

func TestNormalizeDropsNonNumericY(t *testing.T) {
	ds := tabular.ParseString("month,sales\nJan,120\nFeb,abc\nMar,200\n", "sales.csv")
	x, y, ok := SelectDefaultColumns(ds.Columns)
	require.True(t, ok)

	rows, report := NormalizeWithReport(ds.Rows, x, y)

	require.Len(t, rows, 2)
	assert.Equal(t, chart.NormalizedRow{X: "Jan", Y: 120, Source: 0}, rows[0])
	assert.Equal(t, chart.NormalizedRow{X: "Mar", Y: 200, Source: 2}, rows[1])

	assert.Equal(t, 3, report.RowsRead)
	assert.Equal(t, 2, report.RowsKept)
	require.Equal(t, 1, report.DroppedCount())
	assert.Equal(t, ingestion.DropNonNumericY, report.Dropped[0].ErrorType)
	assert.Equal(t, 1, report.Dropped[0].RowIndex)
}

func TestNormalizePrefixAndMissing(t *testing.T) {
	rows := []chart.RawRow{
		{"x": "a", "y": "12abc"},
		{"x": "b", "y": "  7.5"},
		{"y": "3"},
		{"x": "d"},
		{"x": "e", "y": "Infinity"},
		{"x": "", "y": "1e3"},
	}

	got, report := NormalizeWithReport(rows, "x", "y")

	require.Len(t, got, 3)
	assert.Equal(t, 12.0, got[0].Y)
	assert.Equal(t, 7.5, got[1].Y)
	assert.Equal(t, "", got[2].X)
	assert.Equal(t, 1000.0, got[2].Y)
	assert.Equal(t, 5, got[2].Source)

	counts := report.CountBy()
	assert.Equal(t, 1, counts[ingestion.DropMissingX])
	assert.Equal(t, 1, counts[ingestion.DropNonNumericY])
	assert.Equal(t, 1, counts[ingestion.DropNonFiniteY])
}

func TestNormalizeUnsetAxes(t *testing.T) {
	rows := []chart.RawRow{{"x": "a", "y": "1"}}

	assert.Empty(t, Normalize(rows, "", "y"))
	assert.Empty(t, Normalize(rows, "x", ""))
	assert.Empty(t, Normalize(nil, "x", "y"))
}

func TestNormalizeIdempotent(t *testing.T) {
	rows := []chart.RawRow{
		{"x": "a", "y": "0.1"},
		{"x": "b", "y": "oops"},
		{"x": "c", "y": "-3.25e2"},
		{"x": "d", "y": "1e21"},
		{"x": "e", "y": "42 apples"},
	}

	first := Normalize(rows, "x", "y")
	second := Normalize(ToRaw(first, "x", "y"), "x", "y")

	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].X, second[i].X)
		assert.Equal(t, first[i].Y, second[i].Y)
	}
}

func TestSummarize(t *testing.T) {
	rows := []chart.NormalizedRow{{X: "a", Y: 2}, {X: "b", Y: 4}, {X: "c", Y: 4}, {X: "d", Y: 6}}

	s := Summarize(rows, "y")

	assert.Equal(t, 4, s.Count)
	assert.Equal(t, 2.0, s.Min)
	assert.Equal(t, 6.0, s.Max)
	assert.Equal(t, 16.0, s.Sum)
	assert.Equal(t, 4.0, s.Mean)
	assert.Equal(t, 4.0, s.Median)
	assert.InDelta(t, 1.63299, s.StdDev, 1e-4)

	empty := Summarize(nil, "y")
	assert.Equal(t, 0, empty.Count)
	assert.Equal(t, 0.0, empty.StdDev)

	single := Summarize([]chart.NormalizedRow{{X: "a", Y: 5}}, "y")
	assert.Equal(t, 0.0, single.StdDev)
	assert.Equal(t, 5.0, single.Median)
}
