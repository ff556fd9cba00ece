package risk

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseNumber converts a decimal literal to float64. A comma is accepted as
// the decimal separator ("3564,58"). Thousands separators are not: "3,564.58"
// becomes "3.564.58" and is rejected instead of being read as 3.564.
// Exponents and a leading "+" are rejected too.
func ParseNumber(s string) (float64, error) {
	norm := strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if norm == "" {
		return 0, fmt.Errorf("%w: empty value", ErrInvalidNumber)
	}

	d, err := decimal.NewFromString(norm)
	if err != nil || strings.ContainsAny(norm, "eE+") {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNumber, s)
	}
	f := d.InexactFloat64()
	if math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %q out of range", ErrInvalidNumber, s)
	}
	return f, nil
}
