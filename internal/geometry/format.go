package geometry

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"handchart/domain/chart"
)

// FormatValue renders a y value the way a browser prints a number:
// shortest round-trip digits, exponent form only for very large or small magnitudes
func FormatValue(v float64) string {
	abs := math.Abs(v)
	if abs != 0 && (abs >= 1e21 || abs < 1e-6) {
		s := strconv.FormatFloat(v, 'e', -1, 64)
		mantissa, exp, _ := strings.Cut(s, "e")
		sign := exp[:1]
		digits := strings.TrimLeft(exp[1:], "0")
		return mantissa + "e" + sign + digits
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Tooltip is the hover text attached to every mark
func Tooltip(x, y chart.Column, row chart.NormalizedRow) string {
	return fmt.Sprintf("%s: %s, %s: %s", x, row.X, y, FormatValue(row.Y))
}

func markFor(cfg chart.ChartConfig, row chart.NormalizedRow) chart.Mark {
	return chart.Mark{
		Row:     row.Source,
		X:       row.X,
		Y:       row.Y,
		Tooltip: Tooltip(cfg.XColumn, cfg.YColumn, row),
	}
}
