package commons

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatUSD renders whole dollars the way en-US currency formatting does: "$1,234.00",
// "-$40.00".
func FormatUSD(amount int64) string {
	return FormatUSDDecimal(decimal.NewFromInt(amount))
}

func FormatUSDDecimal(amount decimal.Decimal) string {
	fixed := amount.Abs().StringFixed(2)
	whole, cents, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	if amount.IsNegative() {
		b.WriteByte('-')
	}
	b.WriteByte('$')
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	b.WriteByte('.')
	b.WriteString(cents)

	return b.String()
}
