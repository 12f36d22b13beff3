package geometry

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var (
	e10 = math.Sqrt(50)
	e5  = math.Sqrt(10)
	e2  = math.Sqrt(2)
)

// jsRound rounds half toward positive infinity
func jsRound(x float64) float64 {
	return math.Floor(x + 0.5)
}

// tickSpec picks a 1/2/5 x 10^k increment for about count ticks over
// [start, stop]. A negative inc is the reciprocal of a sub-unit step, kept
// that way so tick values stay exact integers divided by -inc.
func tickSpec(start, stop, count float64) (i1, i2, inc float64) {
	step := (stop - start) / math.Max(0, count)
	power := math.Floor(math.Log10(step))
	e := step / math.Pow(10, power)

	factor := 1.0
	switch {
	case e >= e10:
		factor = 10
	case e >= e5:
		factor = 5
	case e >= e2:
		factor = 2
	}

	if power < 0 {
		inc = math.Pow(10, -power) / factor
		i1 = jsRound(start * inc)
		i2 = jsRound(stop * inc)
		if i1/inc < start {
			i1++
		}
		if i2/inc > stop {
			i2--
		}
		inc = -inc
	} else {
		inc = math.Pow(10, power) * factor
		i1 = jsRound(start / inc)
		i2 = jsRound(stop / inc)
		if i1*inc < start {
			i1++
		}
		if i2*inc > stop {
			i2--
		}
	}

	if i2 < i1 && 0.5 <= count && count < 2 {
		return tickSpec(start, stop, count*2)
	}
	return i1, i2, inc
}

func tickIncrement(start, stop, count float64) float64 {
	_, _, inc := tickSpec(start, stop, count)
	return inc
}

// TickStep returns the signed distance between adjacent ticks
func TickStep(start, stop float64, count int) float64 {
	reversed := stop < start
	var inc float64
	if reversed {
		inc = tickIncrement(stop, start, float64(count))
	} else {
		inc = tickIncrement(start, stop, float64(count))
	}
	if inc < 0 {
		inc = 1 / -inc
	}
	if reversed {
		return -inc
	}
	return inc
}

// Ticks returns about count round values between start and stop inclusive
func Ticks(start, stop float64, count int) []float64 {
	if count <= 0 {
		return nil
	}
	if start == stop {
		return []float64{start}
	}

	reversed := stop < start
	lo, hi := start, stop
	if reversed {
		lo, hi = stop, start
	}
	i1, i2, inc := tickSpec(lo, hi, float64(count))
	if !(i2 >= i1) {
		return nil
	}

	n := int(i2-i1) + 1
	ticks := make([]float64, n)
	for i := 0; i < n; i++ {
		k := i1 + float64(i)
		if reversed {
			k = i2 - float64(i)
		}
		if inc < 0 {
			ticks[i] = k / -inc
		} else {
			ticks[i] = k * inc
		}
	}
	return ticks
}

// precisionFixed is the number of fraction digits needed to show step exactly
func precisionFixed(step float64) int {
	step = math.Abs(step)
	if step == 0 || math.IsInf(step, 0) || math.IsNaN(step) {
		return 0
	}
	p := -int(math.Floor(math.Log10(step)))
	if p < 0 {
		return 0
	}
	return p
}

// TickFormatter renders tick values with grouped thousands and enough
// fraction digits for the tick step
type TickFormatter struct {
	printer   *message.Printer
	precision int
}

// NewTickFormatter prepares a formatter for ticks spaced step apart
func NewTickFormatter(step float64) *TickFormatter {
	return &TickFormatter{
		printer:   message.NewPrinter(language.English),
		precision: precisionFixed(step),
	}
}

// Format renders v, e.g. 12000 as "12,000" and 0.25 as "0.25"
func (f *TickFormatter) Format(v float64) string {
	if v == 0 {
		v = 0 // normalize -0
	}
	return f.printer.Sprintf("%v", number.Decimal(v, number.Scale(f.precision)))
}

// ThinIndices returns the positions of the category labels that fit across
// width, assuming maxLabelWidth per label
func ThinIndices(count int, width, maxLabelWidth float64) []int {
	if count <= 0 {
		return nil
	}
	maxLabels := int(math.Floor(width / maxLabelWidth))
	if maxLabels < 1 {
		maxLabels = 1
	}
	skip := int(math.Ceil(float64(count) / float64(maxLabels)))
	if skip < 1 {
		skip = 1
	}

	keep := make([]int, 0, count/skip+1)
	for i := 0; i < count; i += skip {
		keep = append(keep, i)
	}
	return keep
}
