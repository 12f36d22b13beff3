package chart

import (
	"fmt"
	"strings"

	"handchart/domain/core"
)

// Column names a field present in every row of a dataset
type Column string

// String returns the column name
func (c Column) String() string { return string(c) }

// IsEmpty reports an unset column selection
func (c Column) IsEmpty() bool { return c == "" }

// RawRow maps column names to untyped cells as parsed from text.
// An absent key is a missing value; an empty string is a present, empty cell.
type RawRow map[Column]string

// Get returns the cell for column c and whether it was present
func (r RawRow) Get(c Column) (string, bool) {
	v, ok := r[c]
	return v, ok
}

// NormalizedRow is a row restricted to the selected x and y columns.
// Y is always finite; Source is the index of the originating RawRow.
type NormalizedRow struct {
	X      string  `json:"x"`
	Y      float64 `json:"y"`
	Source int     `json:"source"`
}

// Dataset is an ordered sequence of rows sharing one set of column names
type Dataset struct {
	ID      core.DatasetID `json:"id"`
	Name    string         `json:"name"`
	Columns []Column       `json:"columns"`
	Rows    []RawRow       `json:"rows"`
}

// NewDataset creates a dataset with a fresh identifier
func NewDataset(name string, columns []Column, rows []RawRow) *Dataset {
	if columns == nil {
		columns = []Column{}
	}
	if rows == nil {
		rows = []RawRow{}
	}
	return &Dataset{
		ID:      core.NewDatasetID(),
		Name:    name,
		Columns: columns,
		Rows:    rows,
	}
}

// EmptyDataset is what malformed or headerless input degrades to
func EmptyDataset(name string) *Dataset {
	return NewDataset(name, nil, nil)
}

// HasColumn reports whether c is one of the dataset's declared columns
func (d *Dataset) HasColumn(c Column) bool {
	if d == nil {
		return false
	}
	for _, col := range d.Columns {
		if col == c {
			return true
		}
	}
	return false
}

// IsEmpty reports a dataset with no columns, on which no chart can be configured
func (d *Dataset) IsEmpty() bool {
	return d == nil || len(d.Columns) == 0
}

// ColumnNames returns the column names as plain strings
func (d *Dataset) ColumnNames() []string {
	if d == nil {
		return nil
	}
	names := make([]string, len(d.Columns))
	for i, c := range d.Columns {
		names[i] = string(c)
	}
	return names
}

// Fingerprint hashes column names and cell contents, ignoring the dataset ID
func (d *Dataset) Fingerprint() core.Hash {
	if d == nil {
		return core.ContentHash(nil, nil)
	}
	rows := make([]map[string]string, len(d.Rows))
	for i, r := range d.Rows {
		m := make(map[string]string, len(r))
		for k, v := range r {
			m[string(k)] = v
		}
		rows[i] = m
	}
	return core.ContentHash(d.ColumnNames(), rows)
}

// ChartType selects the geometry family
type ChartType string

const (
	ChartLine ChartType = "Line"
	ChartBar  ChartType = "Bar"
	ChartPie  ChartType = "Pie"
)

// ChartTypes lists the supported chart types in menu order
var ChartTypes = []ChartType{ChartLine, ChartBar, ChartPie}

// ParseChartType accepts a chart type name case-insensitively
func ParseChartType(s string) (ChartType, error) {
	for _, t := range ChartTypes {
		if strings.EqualFold(strings.TrimSpace(s), string(t)) {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", core.ErrUnknownChartType, s)
}

// IsCartesian reports whether the chart uses band/linear axes
func (t ChartType) IsCartesian() bool {
	return t == ChartLine || t == ChartBar
}

// ChartConfig is the user's selection for the active dataset
type ChartConfig struct {
	ChartType ChartType `json:"chartType"`
	XColumn   Column    `json:"xColumn"`
	YColumn   Column    `json:"yColumn"`
	Title     string    `json:"title"`
}

// DefaultConfig is the configuration before any dataset is ingested
func DefaultConfig() ChartConfig {
	return ChartConfig{ChartType: ChartLine}
}

// Configured reports whether both axes are selected
func (c ChartConfig) Configured() bool {
	return !c.XColumn.IsEmpty() && !c.YColumn.IsEmpty()
}

// Validate checks that every selected axis references a column of d.
// Unselected axes are allowed so a config can precede its dataset.
func (c ChartConfig) Validate(d *Dataset) error {
	for _, col := range []Column{c.XColumn, c.YColumn} {
		if !col.IsEmpty() && !d.HasColumn(col) {
			return core.NewColumnNotFoundError(string(col))
		}
	}
	return nil
}

// Theme is the light/dark presentation flag
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme maps any value other than "dark" to the light theme
func ParseTheme(s string) Theme {
	if strings.EqualFold(strings.TrimSpace(s), string(ThemeDark)) {
		return ThemeDark
	}
	return ThemeLight
}

// Toggle returns the opposite theme
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// ThemePalette holds the colors a theme contributes to a chart
type ThemePalette struct {
	Text       string  `json:"text"`
	Axis       string  `json:"axis"`
	Background string  `json:"background"`
	Outline    string  `json:"outline"`
	Saturation float64 `json:"saturation"`
	Lightness  float64 `json:"lightness"`
}

// Palette returns text/axis colors and the line saturation/lightness for t
func (t Theme) Palette() ThemePalette {
	if t == ThemeDark {
		return ThemePalette{
			Text:       "#ffffff",
			Axis:       "#ffffff",
			Background: "#000000",
			Outline:    "#ffffff",
			Saturation: 60,
			Lightness:  60,
		}
	}
	return ThemePalette{
		Text:       "#000000",
		Axis:       "#000000",
		Background: "#ffffff",
		Outline:    "#000000",
		Saturation: 70,
		Lightness:  50,
	}
}

// Viewport is the drawing surface size in logical units.
// A zero Height asks the engine to pick its target height.
type Viewport struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}
