package geometry

import (
	"math"

	"handchart/domain/chart"

	"github.com/montanaflynn/stats"
)

// pieGeometry divides the full circle among rows in row order, clockwise
// from 12 o'clock. Non-positive values take no angle.
func pieGeometry(rows []chart.NormalizedRow, cfg chart.ChartConfig, width, height float64, opts Options) *chart.PieGeometry {
	center := chart.Point{X: width / 2, Y: height / 2}
	radius := math.Max(0, math.Min(width, height)/2-opts.PieInset)

	positive := make([]float64, 0, len(rows))
	categories := make([]string, len(rows))
	for i, r := range rows {
		categories[i] = r.X
		if r.Y > 0 {
			positive = append(positive, r.Y)
		}
	}
	total, err := stats.Sum(positive)
	if err != nil {
		total = 0
	}

	k := 0.0
	if total > 0 {
		k = 2 * math.Pi / total
	}

	colors := NewCategoryColors(categories)
	wedges := make([]chart.Wedge, 0, len(rows))
	angle := 0.0
	for _, r := range rows {
		span := 0.0
		if r.Y > 0 {
			span = r.Y * k
		}
		start, end := angle, angle+span
		angle = end

		mid := (start + end) / 2
		wedges = append(wedges, chart.Wedge{
			Mark:       markFor(cfg, r),
			StartAngle: start,
			EndAngle:   end,
			Fill:       colors.Color(r.X),
			Centroid: chart.Point{
				X: center.X + math.Sin(mid)*radius/2,
				Y: center.Y - math.Cos(mid)*radius/2,
			},
			Label: r.X,
		})
	}

	return &chart.PieGeometry{Center: center, Radius: radius, Wedges: wedges}
}
