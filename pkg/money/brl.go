// Package money formats monetary values for the Brazilian market.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatBRL renders a decimal amount as Brazilian currency, e.g. "R$ 1.234,56".
func FormatBRL(amount decimal.Decimal) string {
	fixed := amount.StringFixed(2)

	negative := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")

	parts := strings.SplitN(fixed, ".", 2)
	intPart, fracPart := parts[0], parts[1]

	var grouped strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			grouped.WriteByte('.')
		}
		grouped.WriteRune(digit)
	}

	out := "R$ " + grouped.String() + "," + fracPart
	if negative {
		out = "-" + out
	}
	return out
}
