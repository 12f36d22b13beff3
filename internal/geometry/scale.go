package geometry

import "math"

// BandScale maps discrete categories to equal-width bands along a range.
// Positions follow d3's scaleBand with round disabled.
type BandScale struct {
	domain    []string
	index     map[string]int
	start     float64
	step      float64
	bandwidth float64
}

// NewBandScale lays out domain over [r0, r1] with the same inner and outer padding
func NewBandScale(domain []string, r0, r1, padding float64) *BandScale {
	return newBandScale(domain, r0, r1, padding, padding, 0.5)
}

func newBandScale(domain []string, r0, r1, paddingInner, paddingOuter, align float64) *BandScale {
	b := &BandScale{index: make(map[string]int, len(domain))}
	for _, d := range domain {
		if _, ok := b.index[d]; ok {
			continue
		}
		b.index[d] = len(b.domain)
		b.domain = append(b.domain, d)
	}

	n := float64(len(b.domain))
	span := r1 - r0
	b.step = span / math.Max(1, n-paddingInner+paddingOuter*2)
	b.start = r0 + (span-b.step*(n-paddingInner))*align
	b.bandwidth = b.step * (1 - paddingInner)
	return b
}

// Position returns the start of the band for value
func (b *BandScale) Position(value string) (float64, bool) {
	i, ok := b.index[value]
	if !ok {
		return 0, false
	}
	return b.start + b.step*float64(i), true
}

// Center returns the middle of the band for value
func (b *BandScale) Center(value string) (float64, bool) {
	p, ok := b.Position(value)
	if !ok {
		return 0, false
	}
	return p + b.bandwidth/2, true
}

func (b *BandScale) Bandwidth() float64 { return b.bandwidth }

// Domain returns the distinct categories in first-seen order
func (b *BandScale) Domain() []string {
	return append([]string(nil), b.domain...)
}

// LinearScale is a continuous mapping from a numeric domain to a pixel range
type LinearScale struct {
	d0, d1 float64
	r0, r1 float64
}

// NewLinearScale builds the y scale: domain [0, max] niced to round numbers,
// range [r0, r1]. A non-positive max falls back to an upper bound of 1.
func NewLinearScale(max, r0, r1 float64) *LinearScale {
	if !(max > 0) {
		max = 1
	}
	d0, d1 := Nice(0, max, 10)
	return &LinearScale{d0: d0, d1: d1, r0: r0, r1: r1}
}

// Scale maps v into the range
func (s *LinearScale) Scale(v float64) float64 {
	if s.d1 == s.d0 {
		return (s.r0 + s.r1) / 2
	}
	return s.r0 + (v-s.d0)/(s.d1-s.d0)*(s.r1-s.r0)
}

// Domain returns the niced domain bounds
func (s *LinearScale) Domain() (float64, float64) {
	return s.d0, s.d1
}

// Ticks returns roughly count round values across the domain
func (s *LinearScale) Ticks(count int) []float64 {
	return Ticks(s.d0, s.d1, count)
}

// TickStep returns the spacing Ticks(count) uses
func (s *LinearScale) TickStep(count int) float64 {
	return TickStep(s.d0, s.d1, count)
}

// Nice extends [start, stop] outward to multiples of the tick increment,
// iterating until the increment stops changing. The bounds are left
// untouched when no stable increment is found within ten passes.
func Nice(start, stop float64, count int) (float64, float64) {
	reversed := stop < start
	if reversed {
		start, stop = stop, start
	}
	lo, hi := start, stop

	var prestep float64
	for iter := 0; iter < 10; iter++ {
		step := tickIncrement(lo, hi, float64(count))
		if step == prestep {
			if reversed {
				return hi, lo
			}
			return lo, hi
		}
		if step > 0 {
			lo = math.Floor(lo/step) * step
			hi = math.Ceil(hi/step) * step
		} else if step < 0 {
			lo = math.Ceil(lo*step) / step
			hi = math.Floor(hi*step) / step
		} else {
			break
		}
		prestep = step
	}

	if reversed {
		return stop, start
	}
	return start, stop
}
