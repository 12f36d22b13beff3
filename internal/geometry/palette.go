package geometry

import (
	"fmt"
	"math"

	"handchart/domain/chart"
	"handchart/ports"

	"github.com/gogpu/gg"
)

// Tableau10 is the categorical fill palette
var Tableau10 = []string{
	"#4e79a7", "#f28e2c", "#e15759", "#76b7b2", "#59a14f",
	"#edc949", "#af7aa1", "#ff9da7", "#9c755f", "#bab0ab",
}

// CategoryColors assigns palette colors to categories by first-seen order,
// wrapping after ten
type CategoryColors struct {
	index map[string]int
}

// NewCategoryColors registers categories in the order given
func NewCategoryColors(categories []string) *CategoryColors {
	c := &CategoryColors{index: make(map[string]int, len(categories))}
	for _, cat := range categories {
		if _, ok := c.index[cat]; !ok {
			c.index[cat] = len(c.index)
		}
	}
	return c
}

// Color returns the fill for category. Unknown categories get the next free slot.
func (c *CategoryColors) Color(category string) string {
	i, ok := c.index[category]
	if !ok {
		i = len(c.index)
		c.index[category] = i
	}
	return Tableau10[i%len(Tableau10)]
}

// LineColor draws a random hue and applies the theme's saturation and
// lightness. A nil rng yields a fixed blue.
func LineColor(rng ports.RNGPort, theme chart.Theme) string {
	hue := 210.0
	if rng != nil {
		hue = rng.Float64() * 360
	}
	p := theme.Palette()
	return toHex(gg.HSL(hue, p.Saturation/100, p.Lightness/100))
}

func toHex(c gg.RGBA) string {
	channel := func(v float64) uint8 {
		return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
	}
	return fmt.Sprintf("#%02x%02x%02x", channel(c.R), channel(c.G), channel(c.B))
}
