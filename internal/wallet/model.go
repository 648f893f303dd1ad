package wallet

import (
	"time"

	"github.com/shopspring/decimal"
)

// Wallet is the stored-value account whose balances live in the ledger.
type Wallet struct {
	ID         string
	OwnerID    string
	Currencies []string
	Status     string
	CreatedAt  time.Time
}

// BalanceSheet is a point-in-time view of the wallet's balances per currency.
type BalanceSheet struct {
	WalletID string
	Amounts  map[string]decimal.Decimal
	AsOf     time.Time
}
