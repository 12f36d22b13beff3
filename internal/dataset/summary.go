package dataset

import (
	"sort"

	"handchart/domain/chart"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary describes the y values that survived normalization
type Summary struct {
	Column chart.Column `json:"column"`
	Count  int          `json:"count"`
	Min    float64      `json:"min"`
	Max    float64      `json:"max"`
	Sum    float64      `json:"sum"`
	Mean   float64      `json:"mean"`
	StdDev float64      `json:"stddev"`
	Median float64      `json:"median"`
}

// Summarize computes descriptive statistics over the rows' y values.
// StdDev is the sample standard deviation and is zero below two values.
func Summarize(rows []chart.NormalizedRow, column chart.Column) Summary {
	s := Summary{Column: column, Count: len(rows)}
	if len(rows) == 0 {
		return s
	}

	values := make([]float64, len(rows))
	for i, r := range rows {
		values[i] = r.Y
	}

	s.Min = floats.Min(values)
	s.Max = floats.Max(values)
	s.Sum = floats.Sum(values)
	s.Mean = stat.Mean(values, nil)
	if len(values) > 1 {
		s.StdDev = stat.StdDev(values, nil)
	}

	sort.Float64s(values)
	if n := len(values); n%2 == 1 {
		s.Median = values[n/2]
	} else {
		s.Median = (values[n/2-1] + values[n/2]) / 2
	}
	return s
}
