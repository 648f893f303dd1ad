package ledger

import "github.com/shopspring/decimal"

// Seed is a test helper that sets a balance directly when using the
// in-memory ledger.
func Seed(l Ledger, walletID, currency string, amount decimal.Decimal) {
	if mem, ok := l.(*inMemoryLedger); ok {
		mem.mu.Lock()
		defer mem.mu.Unlock()
		if s, exists := mem.sheets[walletID]; exists {
			s.balances[currency] = amount
		}
	}
}
