package commons

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatUSD(t *testing.T) {
	cases := []struct {
		amount int64
		want   string
	}{
		{amount: 0, want: "$0.00"},
		{amount: 100, want: "$100.00"},
		{amount: 1234, want: "$1,234.00"},
		{amount: 1234567, want: "$1,234,567.00"},
		{amount: -40, want: "-$40.00"},
		{amount: -1000, want: "-$1,000.00"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatUSD(tc.amount))
	}
}

func TestFormatUSDDecimalRoundsToCents(t *testing.T) {
	assert.Equal(t, "$12.35", FormatUSDDecimal(decimal.RequireFromString("12.345")))
}
