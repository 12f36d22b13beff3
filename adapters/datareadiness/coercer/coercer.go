package coercer

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// TypeCoercer turns untyped cells into numbers with locale-independent rules
type TypeCoercer struct {
	config CoercionConfig
}

// CoercionConfig defines the coercion thresholds and rules
type CoercionConfig struct {
	NumericThreshold float64 `json:"numeric_threshold"` // share of values that must parse as numbers
	MaxCategories    int     `json:"max_categories"`    // distinct values above which a column stops being categorical
}

// DefaultCoercionConfig returns sensible defaults
func DefaultCoercionConfig() CoercionConfig {
	return CoercionConfig{
		NumericThreshold: 1.0,
		MaxCategories:    100,
	}
}

// NewTypeCoercer creates a coercer with the given config
func NewTypeCoercer(config CoercionConfig) *TypeCoercer {
	return &TypeCoercer{config: config}
}

// ParseDecimal parses the longest decimal prefix of s after leading whitespace,
// the way a browser's parseFloat does: "12abc" is 12, "abc" is NaN.
// The second result is false when no digits were found.
// "Infinity" prefixes parse to ±Inf; callers decide whether to accept them.
func ParseDecimal(s string) (float64, bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	if s == "" {
		return math.NaN(), false
	}

	i := 0
	if s[i] == '+' || s[i] == '-' {
		i++
	}
	if strings.HasPrefix(s[i:], "Infinity") {
		if s[0] == '-' {
			return math.Inf(-1), true
		}
		return math.Inf(1), true
	}

	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return math.NaN(), false
	}
	end := i

	// exponent only counts when at least one digit follows it
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		expDigits := 0
		for j < len(s) && isDigit(s[j]) {
			j++
			expDigits++
		}
		if expDigits > 0 {
			end = j
		}
	}

	val, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		// out of range values come back as ±Inf with ErrRange
		if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
			return val, true
		}
		return math.NaN(), false
	}
	return val, true
}

// ParseFinite is ParseDecimal restricted to finite results
func ParseFinite(s string) (float64, bool) {
	v, ok := ParseDecimal(s)
	if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// IsStrictNumber reports whether the whole trimmed cell is a finite decimal number.
// Unlike ParseDecimal, trailing garbage is rejected and an empty cell is not a number.
func IsStrictNumber(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return false
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return false
	}
	// strconv also accepts hex floats, underscores and "inf"; keep to plain decimals
	for _, r := range s {
		if !(isDigit(byte(r)) || r == '.' || r == '-' || r == '+' || r == 'e' || r == 'E') {
			return false
		}
	}
	return true
}

// AnalyzeTypeDistribution inspects a column's cells
func (c *TypeCoercer) AnalyzeTypeDistribution(values []string) TypeAnalysis {
	analysis := TypeAnalysis{TotalCount: len(values)}

	distinct := make(map[string]struct{})
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			continue
		}
		analysis.ValidCount++
		distinct[v] = struct{}{}
		if IsStrictNumber(v) {
			analysis.NumericCount++
		}
	}
	analysis.DistinctCount = len(distinct)

	if analysis.ValidCount > 0 {
		analysis.NumericRatio = float64(analysis.NumericCount) / float64(analysis.ValidCount)
	}
	analysis.RecommendedType = c.determineRecommendedType(analysis)

	return analysis
}

// determineRecommendedType chooses the best type based on analysis
func (c *TypeCoercer) determineRecommendedType(analysis TypeAnalysis) ValueType {
	if analysis.ValidCount == 0 {
		return ValueTypeMissing
	}
	if analysis.NumericRatio >= c.config.NumericThreshold {
		return ValueTypeNumeric
	}
	if analysis.DistinctCount <= c.config.MaxCategories {
		return ValueTypeCategorical
	}
	return ValueTypeString
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// ValueType is the coarse type of a column
type ValueType string

const (
	ValueTypeNumeric     ValueType = "numeric"
	ValueTypeCategorical ValueType = "categorical"
	ValueTypeString      ValueType = "string"
	ValueTypeMissing     ValueType = "missing"
)

// TypeAnalysis contains the results of type distribution analysis
type TypeAnalysis struct {
	TotalCount      int       `json:"total_count"`
	ValidCount      int       `json:"valid_count"`
	NumericCount    int       `json:"numeric_count"`
	DistinctCount   int       `json:"distinct_count"`
	NumericRatio    float64   `json:"numeric_ratio"`
	RecommendedType ValueType `json:"recommended_type"`
}

// AllNumeric reports a column with at least one value where every value is numeric
func (a TypeAnalysis) AllNumeric() bool {
	return a.TotalCount > 0 && a.ValidCount == a.TotalCount && a.NumericCount == a.TotalCount
}
