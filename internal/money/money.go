// Package money converts between submitted decimal amounts, integer cents
// and the USD display strings shown on the dashboard.
package money

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var ErrInvalidAmount = errors.New("invalid amount")

// Bounds on the accepted notation. Amounts outside them are far beyond the
// storable range, and comparing them costs time proportional to the exponent.
const (
	maxFractionDigits = 12
	maxIntegerDigits  = 15
)

var (
	hundred = decimal.NewFromInt(100)
	printer = message.NewPrinter(language.AmericanEnglish)
)

// ParseAmount parses a dollar amount such as "19.99" into a decimal.
// Surrounding spaces are ignored; anything else non-numeric is rejected, as
// are amounts with more than 12 decimal places or 15 integer digits.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}

	exp := int64(d.Exponent())
	if exp < -maxFractionDigits || int64(d.NumDigits())+exp > maxIntegerDigits {
		return decimal.Zero, ErrInvalidAmount
	}

	return d, nil
}

// ToCents converts a dollar amount into integer cents, rounding half away
// from zero. 19.99 -> 1999, 0.10 -> 10, 100 -> 10000.
func ToCents(d decimal.Decimal) int64 {
	return d.Mul(hundred).Round(0).IntPart()
}

// FromCents converts integer cents back into a dollar amount.
func FromCents(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}

// FormatCents renders cents as a USD display string: 123456 -> "$1,234.56".
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}

	dollars := FromCents(cents).InexactFloat64()

	return sign + "$" + printer.Sprintf("%.2f", dollars)
}
