package ledger

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidInput occurs when an operation receives a non-positive amount
	// or a missing counterparty label. Invalid input never mutates the sheet.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInsufficientFunds occurs when the source currency balance cannot
	// cover a requested debit.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrUnknownWallet indicates no balance sheet exists for the wallet.
	ErrUnknownWallet = errors.New("unknown wallet")

	// ErrUnknownCurrency indicates the currency is not part of the wallet's
	// balance sheet.
	ErrUnknownCurrency = errors.New("unknown currency")
)

const (
	// KindSend marks an outbound transfer to a named recipient.
	KindSend = "send"
	// KindDeposit marks funds added to the wallet.
	KindDeposit = "deposit"

	// StatusCompleted is the only transaction status the ledger records.
	StatusCompleted = "completed"

	// DepositCounterparty labels self-deposits in the history.
	DepositCounterparty = "Wallet"
)

// Transaction is one completed movement of funds. Records are immutable once
// appended and ordered most-recent-first in the history.
type Transaction struct {
	ID           string
	Kind         string
	Amount       decimal.Decimal
	FromCurrency string
	ToCurrency   string
	Counterparty string
	Date         string
	Status       string
}

// SendResult captures the outcome of a send posting.
type SendResult struct {
	Transaction Transaction
	NewBalance  decimal.Decimal
}

// DepositResult captures the outcome of a deposit posting.
type DepositResult struct {
	Transaction Transaction
	NewBalance  decimal.Decimal
}

// Ledger is the contract implemented by ledger backends. Send and Deposit are
// deliberately not idempotent: every call is a new financial event, and
// deduplication is layered at the transport boundary.
type Ledger interface {
	CreateSheet(ctx context.Context, walletID string, currencies []string) error
	Balance(ctx context.Context, walletID, currency string) (decimal.Decimal, error)
	Balances(ctx context.Context, walletID string) (map[string]decimal.Decimal, error)
	Send(ctx context.Context, walletID string, amount decimal.Decimal, fromCurrency, toCurrency, recipient string) (SendResult, error)
	Deposit(ctx context.Context, walletID string, amount decimal.Decimal, currency string) (DepositResult, error)
	History(ctx context.Context, walletID string) ([]Transaction, error)
}

// newTransactionID returns a time-ordered identifier. UUIDv7 keeps IDs
// monotone without the same-tick collisions of timestamp-derived IDs.
func newTransactionID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
