// Package dataset turns parsed tabular rows into chart-ready points and hosts
// the manual dataset builder.
package dataset

import (
	"math"
	"strconv"

	"handchart/adapters/datareadiness/coercer"
	"handchart/domain/chart"
	"handchart/domain/datareadiness/ingestion"
)

// SelectDefaultColumns picks the first two declared columns as x and y.
// Fewer than two columns leaves the axes unset.
func SelectDefaultColumns(columns []chart.Column) (x, y chart.Column, ok bool) {
	if len(columns) < 2 {
		return "", "", false
	}
	return columns[0], columns[1], true
}

// Normalize projects raw rows onto the chosen axes. Rows whose x value is
// absent or whose y value does not parse to a finite number are dropped;
// the survivors keep their input order and source index.
func Normalize(rows []chart.RawRow, x, y chart.Column) []chart.NormalizedRow {
	out, _ := NormalizeWithReport(rows, x, y)
	return out
}

// NormalizeWithReport is Normalize plus an account of every dropped row
func NormalizeWithReport(rows []chart.RawRow, x, y chart.Column) ([]chart.NormalizedRow, ingestion.Report) {
	report := ingestion.Report{RowsRead: len(rows)}
	out := make([]chart.NormalizedRow, 0, len(rows))
	if x.IsEmpty() || y.IsEmpty() {
		return out, report
	}

	for i, row := range rows {
		xv, present := row.Get(x)
		if !present {
			report.Dropped = append(report.Dropped, ingestion.IngestionError{
				RowIndex: i, Field: x.String(), ErrorType: ingestion.DropMissingX,
			})
			continue
		}

		raw, _ := row.Get(y)
		v, ok := coercer.ParseDecimal(raw)
		if !ok {
			report.Dropped = append(report.Dropped, ingestion.IngestionError{
				RowIndex: i, Field: y.String(), Value: raw, ErrorType: ingestion.DropNonNumericY,
			})
			continue
		}
		if math.IsInf(v, 0) || math.IsNaN(v) {
			report.Dropped = append(report.Dropped, ingestion.IngestionError{
				RowIndex: i, Field: y.String(), Value: raw, ErrorType: ingestion.DropNonFiniteY,
			})
			continue
		}

		out = append(out, chart.NormalizedRow{X: xv, Y: v, Source: i})
	}

	report.RowsKept = len(out)
	return out, report
}

// ToRaw re-encodes normalized rows as raw rows keyed by the same axes.
// y uses the shortest representation that parses back to the same float.
func ToRaw(rows []chart.NormalizedRow, x, y chart.Column) []chart.RawRow {
	out := make([]chart.RawRow, len(rows))
	for i, r := range rows {
		out[i] = chart.RawRow{
			y: strconv.FormatFloat(r.Y, 'g', -1, 64),
			x: r.X,
		}
	}
	return out
}
