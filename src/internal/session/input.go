package session

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// MaxPinLength is the number of digits a pin may hold.
const MaxPinLength = 4

var errAmountOutOfRange = errors.New("amount out of range")

// DigitsOnly drops every rune that is not an ASCII digit.
func DigitsOnly(raw string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, raw)
}

// ParseAmount parses a digits-only amount as a base-10 integer. The empty string is 0.
func ParseAmount(digits string) (int64, error) {
	if digits == "" {
		return 0, nil
	}

	d, err := decimal.NewFromString(digits)
	if err != nil {
		return 0, err
	}
	if !d.IsInteger() || !d.BigInt().IsInt64() {
		return 0, errAmountOutOfRange
	}

	return d.IntPart(), nil
}

// exceeds reports whether the digits-only amount is greater than limit. Amounts too
// large for int64 still compare correctly.
func exceeds(digits string, limit int64) bool {
	if digits == "" {
		return 0 > limit
	}

	d, err := decimal.NewFromString(digits)
	if err != nil {
		return false
	}

	return d.GreaterThan(decimal.NewFromInt(limit))
}
