package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatTHB formats an amount in baht as "฿1,234" or "฿1,234.50".
// Whole amounts drop the satang part.
func FormatTHB(amount decimal.Decimal) string {
	neg := amount.IsNegative()
	if neg {
		amount = amount.Neg()
	}

	var s string
	if amount.Equal(amount.Truncate(0)) {
		s = amount.StringFixed(0)
	} else {
		s = amount.StringFixed(2)
	}

	intPart, frac, hasFrac := strings.Cut(s, ".")

	var b strings.Builder
	// digits + separators + sign + symbol
	b.Grow(len(s) + len(intPart)/3 + 4)
	if neg {
		b.WriteByte('-')
	}
	b.WriteString("฿")

	// Insert separators from the left.
	rem := len(intPart) % 3
	if rem == 0 {
		rem = 3
	}
	b.WriteString(intPart[:rem])
	for i := rem; i < len(intPart); i += 3 {
		b.WriteByte(',')
		b.WriteString(intPart[i : i+3])
	}

	if hasFrac {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String()
}
