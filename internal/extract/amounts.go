package extract

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseAmount parses a monetary value out of noisy, Polish-locale text:
// "1 234,56 zł" and "1234.56" both yield 1234.56. Every character that is
// not a digit, comma, dot or minus is stripped, then the first comma becomes
// the decimal point. Values that still fail to parse (or parse to NaN) are
// an error, never zero.
func ParseAmount(raw string) (float64, error) {
	var b strings.Builder
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9', r == ',', r == '.', r == '-':
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if cleaned == "" {
		return 0, fmt.Errorf("no numeric content in %q", raw)
	}
	cleaned = strings.Replace(cleaned, ",", ".", 1)

	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", raw, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("amount %q is not finite", raw)
	}
	return v, nil
}
