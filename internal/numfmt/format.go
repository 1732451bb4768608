// Package numfmt renders map numbers in the one canonical text form used by
// every rewritten field, so repeated runs over already-canonical output never drift.
package numfmt

import (
	"math"
	"strconv"
	"strings"
)

// Format renders v as a plain integer when it has no fractional part and
// otherwise with four fractional digits, trailing zeros and a dangling
// decimal point removed. Negative zero renders as "0".
func Format(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}

	var s string
	if v == math.Trunc(v) {
		s = strconv.FormatFloat(v, 'f', 0, 64)
	} else {
		s = strconv.FormatFloat(v, 'f', 4, 64)
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}

	if s == "-0" {
		return "0"
	}
	return s
}

// Join formats each value and joins them with single spaces.
func Join(vals ...float64) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = Format(v)
	}
	return strings.Join(parts, " ")
}
