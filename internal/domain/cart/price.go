package cart

import (
	"strings"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ErrInvalidPrice is returned when a display price string cannot be parsed.
var ErrInvalidPrice = errors.New("invalid price")

// ParsePrice converts a display price like "$19.99" to a decimal amount.
// The leading currency symbol is optional and surrounding whitespace is
// ignored.
func ParsePrice(display string) (decimal.Decimal, error) {
	s := strings.TrimSpace(display)
	s = strings.TrimPrefix(s, "$")
	if s == "" {
		return decimal.Zero, ErrInvalidPrice
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, errors.Wrapf(ErrInvalidPrice, "parse %q", display)
	}
	return d, nil
}

// FormatPrice renders a decimal amount as a display price with two decimal
// places, e.g. "$19.99".
func FormatPrice(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}
