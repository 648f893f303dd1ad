package money

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseAmountRejectsInvalidInput(t *testing.T) {
	for _, input := range []string{"", "abc", "0", "-5", "12..3"} {
		if _, err := ParseAmount(input); !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("input %q: expected ErrInvalidAmount, got %v", input, err)
		}
	}
}

func TestParseAmountAcceptsPositiveNumbers(t *testing.T) {
	amount, err := ParseAmount(" 100.50 ")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !amount.Equal(decimal.RequireFromString("100.5")) {
		t.Fatalf("expected 100.5, got %s", amount)
	}
}

func TestFormatTwoFractionDigits(t *testing.T) {
	got := Format(decimal.NewFromInt(1000), "USD")
	if !strings.Contains(got, "1,000.00") {
		t.Fatalf("expected grouped two-digit amount, got %q", got)
	}
	if !strings.HasPrefix(got, "$") {
		t.Fatalf("expected dollar symbol, got %q", got)
	}
}

func TestFormatBlankCodeUsesBaseCurrency(t *testing.T) {
	got := Format(decimal.NewFromInt(5), "")
	if !strings.HasPrefix(got, "$") {
		t.Fatalf("expected base currency formatting, got %q", got)
	}
}

func TestFormatUnknownCodeFallsBack(t *testing.T) {
	got := Format(decimal.RequireFromString("12.345"), "ZZZ")
	if got != "12.35 ZZZ" {
		t.Fatalf("expected plain fallback, got %q", got)
	}
}

func TestFormatParseRoundTrip(t *testing.T) {
	for _, code := range Currencies {
		original := decimal.RequireFromString("1234.56")
		parsed, err := ParseDisplay(Format(original, code))
		if err != nil {
			t.Fatalf("%s: parse display: %v", code, err)
		}
		if !parsed.Round(2).Equal(original) {
			t.Fatalf("%s: round trip mismatch: %s != %s", code, parsed, original)
		}
	}
}

func TestSupported(t *testing.T) {
	if !Supported("usd") {
		t.Fatal("expected usd to be supported")
	}
	if Supported("XYZ") {
		t.Fatal("expected XYZ to be unsupported")
	}
}
