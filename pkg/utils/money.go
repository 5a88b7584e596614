package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatBRL renders an amount the way it is printed on receipts: "R$ 1.234,56".
func FormatBRL(amount decimal.Decimal) string {
	neg := amount.IsNegative()
	s := amount.Abs().StringFixed(2)

	intPart, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}

	out := "R$ " + b.String() + "," + frac
	if neg {
		return "-" + out
	}
	return out
}
