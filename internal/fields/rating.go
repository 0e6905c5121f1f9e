package fields

import (
	"math"
	"strconv"
	"strings"
)

// Bounds declares the closed range and display step of a numeric rating.
type Bounds struct {
	Min  float64 `json:"min" yaml:"min"`
	Max  float64 `json:"max" yaml:"max"`
	Step float64 `json:"step,omitempty" yaml:"step,omitempty"`
}

// Clamp limits v to [b.Min, b.Max]. NaN clamps to Min.
func (b Bounds) Clamp(v float64) float64 {
	if math.IsNaN(v) || v < b.Min {
		return b.Min
	}
	if v > b.Max {
		return b.Max
	}
	return v
}

// ParseRating parses a decimal rating and clamps it. ok is false when s is not
// a number.
func (b Bounds) ParseRating(s string) (v float64, ok bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return b.Clamp(f), true
}

// FormatRating renders v with one decimal against the upper bound, e.g. "4.5 / 5.0".
func (b Bounds) FormatRating(v float64) string {
	return strconv.FormatFloat(b.Clamp(v), 'f', 1, 64) + " / " + strconv.FormatFloat(b.Max, 'f', 1, 64)
}
