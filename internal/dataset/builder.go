package dataset

import (
	"fmt"
	"strings"

	"handchart/adapters/datareadiness/coercer"
	"handchart/domain/chart"
	"handchart/domain/core"
	"handchart/internal/errors"
)

// GridInvalidMessage is shown to the user when a manual grid fails validation
const GridInvalidMessage = "Please ensure all cells are filled and at least one column contains numeric values."

const (
	minGridColumns = 2
	minGridRows    = 1
)

// Grid is the editable table behind manual dataset entry. Cells are keyed by
// column name so renames carry the values along.
type Grid struct {
	columns []string
	rows    []map[string]string
}

// NewGrid returns the starting grid: two columns and one empty row
func NewGrid() *Grid {
	g := &Grid{columns: []string{"Column 1", "Column 2"}}
	g.AddRow()
	return g
}

// GridFromCells builds a grid from positional cells. Short rows are padded
// with empty cells, which Validate will then reject.
func GridFromCells(columns []string, cells [][]string) (*Grid, error) {
	if len(columns) < minGridColumns {
		return nil, fmt.Errorf("%w: need at least %d columns, got %d", core.ErrGridShape, minGridColumns, len(columns))
	}
	if len(cells) < minGridRows {
		return nil, fmt.Errorf("%w: need at least %d row", core.ErrGridShape, minGridRows)
	}

	g := &Grid{}
	seen := make(map[string]bool, len(columns))
	for _, c := range columns {
		name := strings.TrimSpace(c)
		if name == "" || seen[name] {
			return nil, fmt.Errorf("%w: %q", core.ErrColumnName, c)
		}
		seen[name] = true
		g.columns = append(g.columns, name)
	}

	for _, record := range cells {
		if len(record) > len(g.columns) {
			return nil, fmt.Errorf("%w: row has %d cells for %d columns", core.ErrGridShape, len(record), len(g.columns))
		}
		row := make(map[string]string, len(g.columns))
		for i, name := range g.columns {
			if i < len(record) {
				row[name] = record[i]
			} else {
				row[name] = ""
			}
		}
		g.rows = append(g.rows, row)
	}
	return g, nil
}

// Columns returns a copy of the column names in order
func (g *Grid) Columns() []string {
	return append([]string(nil), g.columns...)
}

// RowCount returns the number of rows
func (g *Grid) RowCount() int {
	return len(g.rows)
}

// Cell returns the value at (row, column), empty when out of range
func (g *Grid) Cell(row int, column string) string {
	if row < 0 || row >= len(g.rows) {
		return ""
	}
	return g.rows[row][column]
}

// AddColumn appends "Column N+1" (or the next free number) and returns its name
func (g *Grid) AddColumn() string {
	n := len(g.columns) + 1
	name := fmt.Sprintf("Column %d", n)
	for g.hasColumn(name) {
		n++
		name = fmt.Sprintf("Column %d", n)
	}
	g.columns = append(g.columns, name)
	for _, row := range g.rows {
		row[name] = ""
	}
	return name
}

// RemoveColumn drops a column and its cells. The grid keeps at least two columns.
func (g *Grid) RemoveColumn(name string) error {
	idx := g.columnIndex(name)
	if idx < 0 {
		return core.NewColumnNotFoundError(name)
	}
	if len(g.columns) <= minGridColumns {
		return fmt.Errorf("%w: at least %d columns are required", core.ErrGridShape, minGridColumns)
	}
	g.columns = append(g.columns[:idx], g.columns[idx+1:]...)
	for _, row := range g.rows {
		delete(row, name)
	}
	return nil
}

// RenameColumn renames a column; cell values follow
func (g *Grid) RenameColumn(oldName, newName string) error {
	idx := g.columnIndex(oldName)
	if idx < 0 {
		return core.NewColumnNotFoundError(oldName)
	}
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return fmt.Errorf("%w: name is empty", core.ErrColumnName)
	}
	if newName == oldName {
		return nil
	}
	if g.hasColumn(newName) {
		return fmt.Errorf("%w: %q already exists", core.ErrColumnName, newName)
	}

	g.columns[idx] = newName
	for _, row := range g.rows {
		row[newName] = row[oldName]
		delete(row, oldName)
	}
	return nil
}

// AddRow appends a row of empty cells
func (g *Grid) AddRow() {
	row := make(map[string]string, len(g.columns))
	for _, c := range g.columns {
		row[c] = ""
	}
	g.rows = append(g.rows, row)
}

// RemoveRow deletes row i. The grid keeps at least one row.
func (g *Grid) RemoveRow(i int) error {
	if i < 0 || i >= len(g.rows) {
		return fmt.Errorf("%w: row %d out of range", core.ErrGridShape, i)
	}
	if len(g.rows) <= minGridRows {
		return fmt.Errorf("%w: at least %d row is required", core.ErrGridShape, minGridRows)
	}
	g.rows = append(g.rows[:i], g.rows[i+1:]...)
	return nil
}

// SetCell stores value at (row, column)
func (g *Grid) SetCell(row int, column, value string) error {
	if row < 0 || row >= len(g.rows) {
		return fmt.Errorf("%w: row %d out of range", core.ErrGridShape, row)
	}
	if !g.hasColumn(column) {
		return core.NewColumnNotFoundError(column)
	}
	g.rows[row][column] = value
	return nil
}

// Validate requires every cell to be filled and at least one column to hold
// only strictly numeric values. The grid is never modified.
func (g *Grid) Validate() error {
	analyzer := coercer.NewTypeCoercer(coercer.DefaultCoercionConfig())
	numericColumn := false
	for _, c := range g.columns {
		values := make([]string, len(g.rows))
		for i, row := range g.rows {
			values[i] = row[c]
		}
		analysis := analyzer.AnalyzeTypeDistribution(values)
		if analysis.ValidCount != analysis.TotalCount {
			return errors.ValidationErrorWithCause(GridInvalidMessage, core.ErrGridInvalid)
		}
		if analysis.AllNumeric() {
			numericColumn = true
		}
	}
	if !numericColumn {
		return errors.ValidationErrorWithCause(GridInvalidMessage, core.ErrGridInvalid)
	}
	return nil
}

// Build validates the grid and converts it into a dataset shaped like a
// parsed file
func (g *Grid) Build(name string) (*chart.Dataset, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}

	columns := make([]chart.Column, len(g.columns))
	for i, c := range g.columns {
		columns[i] = chart.Column(c)
	}
	rows := make([]chart.RawRow, len(g.rows))
	for i, row := range g.rows {
		raw := make(chart.RawRow, len(g.columns))
		for _, c := range g.columns {
			raw[chart.Column(c)] = row[c]
		}
		rows[i] = raw
	}
	return chart.NewDataset(name, columns, rows), nil
}

func (g *Grid) hasColumn(name string) bool {
	return g.columnIndex(name) >= 0
}

func (g *Grid) columnIndex(name string) int {
	for i, c := range g.columns {
		if c == name {
			return i
		}
	}
	return -1
}
