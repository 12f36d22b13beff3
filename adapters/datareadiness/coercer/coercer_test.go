package coercer

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDecimal(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    float64
		wantOK  bool
		wantInf int
	}{
		{name: "integer", input: "120", want: 120, wantOK: true},
		{name: "decimal", input: "3.25", want: 3.25, wantOK: true},
		{name: "leading whitespace", input: "  42", want: 42, wantOK: true},
		{name: "trailing garbage", input: "12abc", want: 12, wantOK: true},
		{name: "leading point", input: "-.5", want: -0.5, wantOK: true},
		{name: "trailing point", input: "7.", want: 7, wantOK: true},
		{name: "exponent", input: "1.5e3", want: 1500, wantOK: true},
		{name: "dangling exponent", input: "2e", want: 2, wantOK: true},
		{name: "explicit plus", input: "+8", want: 8, wantOK: true},
		{name: "thousands separator stops the prefix", input: "1,234", want: 1, wantOK: true},
		{name: "word", input: "abc", wantOK: false},
		{name: "empty", input: "", wantOK: false},
		{name: "sign only", input: "-", wantOK: false},
		{name: "point only", input: ".", wantOK: false},
		{name: "infinity", input: "Infinity", wantOK: true, wantInf: 1},
		{name: "negative infinity", input: "-Infinity", wantOK: true, wantInf: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDecimal(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			switch {
			case !tt.wantOK:
				assert.True(t, math.IsNaN(got))
			case tt.wantInf != 0:
				assert.True(t, math.IsInf(got, tt.wantInf))
			default:
				assert.InDelta(t, tt.want, got, 1e-12)
			}
		})
	}
}

func TestParseFiniteRejectsInfinity(t *testing.T) {
	_, ok := ParseFinite("Infinity")
	assert.False(t, ok)

	_, ok = ParseFinite("1e400")
	assert.False(t, ok)

	v, ok := ParseFinite("200")
	assert.True(t, ok)
	assert.Equal(t, 200.0, v)
}

func TestIsStrictNumber(t *testing.T) {
	numeric := []string{"1", "-2.5", " 3 ", "1e3", ".5"}
	for _, s := range numeric {
		assert.True(t, IsStrictNumber(s), "expected %q to be numeric", s)
	}

	notNumeric := []string{"", "  ", "12abc", "abc", "NaN", "Infinity", "0x10", "1_000"}
	for _, s := range notNumeric {
		assert.False(t, IsStrictNumber(s), "expected %q to be rejected", s)
	}
}

func TestAnalyzeTypeDistribution(t *testing.T) {
	c := NewTypeCoercer(DefaultCoercionConfig())

	numeric := c.AnalyzeTypeDistribution([]string{"10", "20", "30"})
	assert.Equal(t, ValueTypeNumeric, numeric.RecommendedType)
	assert.True(t, numeric.AllNumeric())

	mixed := c.AnalyzeTypeDistribution([]string{"10", "abc", "30"})
	assert.Equal(t, ValueTypeCategorical, mixed.RecommendedType)
	assert.False(t, mixed.AllNumeric())
	assert.InDelta(t, 2.0/3.0, mixed.NumericRatio, 1e-9)

	withBlank := c.AnalyzeTypeDistribution([]string{"10", "", "30"})
	assert.False(t, withBlank.AllNumeric())

	missing := c.AnalyzeTypeDistribution([]string{"", " "})
	assert.Equal(t, ValueTypeMissing, missing.RecommendedType)
}
