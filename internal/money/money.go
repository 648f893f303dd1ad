package money

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// BaseCurrency is the fallback currency applied when a blank code is given.
const BaseCurrency = "USD"

// Currencies is the default set of supported wallet currencies.
var Currencies = []string{"USD", "EUR", "GBP", "JPY", "AUD", "CAD"}

// ErrInvalidAmount occurs when user input does not parse as a positive number.
var ErrInvalidAmount = errors.New("invalid amount")

var printer = message.NewPrinter(language.English)

// Supported reports whether the currency code belongs to the default set.
func Supported(code string) bool {
	code = normalize(code)
	for _, c := range Currencies {
		if c == code {
			return true
		}
	}
	return false
}

// ParseAmount parses user-provided amount input. Non-numeric, zero and
// negative values all yield ErrInvalidAmount rather than being ignored.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	if !amount.IsPositive() {
		return decimal.Zero, ErrInvalidAmount
	}
	return amount, nil
}

// Format renders an amount with its currency symbol, grouped digits and
// exactly two fraction digits. A blank code defaults to the base currency.
// Codes the formatter does not recognize degrade to "<amount> <code>".
func Format(amount decimal.Decimal, code string) string {
	code = normalize(code)
	if code == "" {
		code = BaseCurrency
	}
	unit, err := currency.ParseISO(code)
	if err != nil {
		return fmt.Sprintf("%s %s", amount.StringFixed(2), code)
	}
	value, _ := amount.Float64()
	return printer.Sprintf("%v%v",
		currency.NarrowSymbol(unit),
		number.Decimal(value, number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

// ParseDisplay recovers the numeric value from a formatted string by
// discarding symbols and group separators.
func ParseDisplay(s string) (decimal.Decimal, error) {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	amount, err := decimal.NewFromString(b.String())
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	return amount, nil
}

func normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
