// Package money formats and parses monetary amounts carried as decimal strings.
package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Formatter renders amounts the way the dashboard displays them: currency symbol,
// grouped thousands, and no minor digits unless the amount has them.
type Formatter struct {
	unit    currency.Unit
	symbol  string
	printer *message.Printer
}

// DefaultFormatter formats Nigerian Naira.
var DefaultFormatter = MustFormatter("NGN", "₦")

// NewFormatter creates a formatter for an ISO 4217 currency code.
func NewFormatter(code, symbol string) (*Formatter, error) {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return nil, fmt.Errorf("money: invalid currency code %q: %w", code, err)
	}
	if symbol == "" {
		symbol = unit.String() + " "
	}
	return &Formatter{
		unit:    unit,
		symbol:  symbol,
		printer: message.NewPrinter(language.English),
	}, nil
}

// MustFormatter is like NewFormatter but panics on an invalid code.
func MustFormatter(code, symbol string) *Formatter {
	f, err := NewFormatter(code, symbol)
	if err != nil {
		panic(err)
	}
	return f
}

// Code returns the ISO code of the formatter's currency.
func (f *Formatter) Code() string {
	return f.unit.String()
}

// Format renders an amount, e.g. 3000 -> "₦3,000", -300 -> "-₦300", 12.5 -> "₦12.5".
func (f *Formatter) Format(amount decimal.Decimal) string {
	rounded := amount.Round(2)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Abs()
	}

	whole := rounded.Truncate(0)
	out := sign + f.symbol + f.printer.Sprintf("%d", whole.IntPart())

	frac := rounded.Sub(whole)
	if !frac.IsZero() {
		digits := strings.TrimRight(frac.StringFixed(2)[2:], "0")
		out += "." + digits
	}
	return out
}

// Parse reads a decimal amount from its wire representation. Empty input is zero.
func Parse(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("money: invalid amount %q: %w", s, err)
	}
	return d, nil
}

// Format renders an amount with DefaultFormatter.
func Format(amount decimal.Decimal) string {
	return DefaultFormatter.Format(amount)
}
