package rates

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
)

// ErrUnknownPair occurs when a rate is requested for a currency outside the
// table.
var ErrUnknownPair = errors.New("unknown currency pair")

// Source answers the current exchange rate for a currency pair. Injected so
// money movement can be tested against deterministic rates.
type Source interface {
	Rate(ctx context.Context, from, to string) (decimal.Decimal, error)
}

// Table is a thread-safe rate table keyed by currency, holding units of each
// currency per one USD. Cross rates are derived from the USD legs.
type Table struct {
	mu     sync.RWMutex
	perUSD map[string]decimal.Decimal
}

// NewTable builds a table from per-USD quotes.
func NewTable(perUSD map[string]decimal.Decimal) *Table {
	quotes := make(map[string]decimal.Decimal, len(perUSD))
	for code, rate := range perUSD {
		quotes[strings.ToUpper(code)] = rate
	}
	return &Table{perUSD: quotes}
}

// DefaultTable returns quotes for the supported wallet currencies.
func DefaultTable() *Table {
	return NewTable(map[string]decimal.Decimal{
		"USD": decimal.NewFromInt(1),
		"EUR": decimal.RequireFromString("0.85"),
		"GBP": decimal.RequireFromString("0.79"),
		"JPY": decimal.RequireFromString("151.20"),
		"AUD": decimal.RequireFromString("1.52"),
		"CAD": decimal.RequireFromString("1.36"),
	})
}

// Rate returns the from→to multiplier. The rate is always positive and
// finite; a currency missing from the table yields ErrUnknownPair.
func (t *Table) Rate(_ context.Context, from, to string) (decimal.Decimal, error) {
	from = strings.ToUpper(strings.TrimSpace(from))
	to = strings.ToUpper(strings.TrimSpace(to))

	t.mu.RLock()
	defer t.mu.RUnlock()

	fromQuote, ok := t.perUSD[from]
	if !ok || !fromQuote.IsPositive() {
		return decimal.Zero, ErrUnknownPair
	}
	toQuote, ok := t.perUSD[to]
	if !ok || !toQuote.IsPositive() {
		return decimal.Zero, ErrUnknownPair
	}
	if from == to {
		return decimal.NewFromInt(1), nil
	}
	return toQuote.DivRound(fromQuote, 8), nil
}

// Snapshot returns a copy of the current per-USD quotes.
func (t *Table) Snapshot() map[string]decimal.Decimal {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make(map[string]decimal.Decimal, len(t.perUSD))
	for code, rate := range t.perUSD {
		out[code] = rate
	}
	return out
}

// Set replaces the quote for one currency. Non-positive quotes are ignored.
func (t *Table) Set(code string, rate decimal.Decimal) {
	if !rate.IsPositive() {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.perUSD[strings.ToUpper(code)] = rate
}

// scale multiplies every non-USD quote by its factor, keeping quotes positive.
func (t *Table) scale(factors map[string]decimal.Decimal) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for code, factor := range factors {
		if code == "USD" || !factor.IsPositive() {
			continue
		}
		if quote, ok := t.perUSD[code]; ok {
			next := quote.Mul(factor)
			if next.IsPositive() {
				t.perUSD[code] = next
			}
		}
	}
}
