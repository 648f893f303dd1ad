package ledger

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

type sheet struct {
	balances map[string]decimal.Decimal
	history  []Transaction
}

type inMemoryLedger struct {
	mu     sync.RWMutex
	sheets map[string]*sheet
}

// NewInMemory creates a concurrency-safe in-memory ledger used in tests and
// when no database is configured.
func NewInMemory() Ledger {
	return &inMemoryLedger{sheets: make(map[string]*sheet)}
}

func (l *inMemoryLedger) CreateSheet(_ context.Context, walletID string, currencies []string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, exists := l.sheets[walletID]; exists {
		return nil
	}
	balances := make(map[string]decimal.Decimal, len(currencies))
	for _, c := range currencies {
		balances[strings.ToUpper(c)] = decimal.Zero
	}
	l.sheets[walletID] = &sheet{balances: balances}
	return nil
}

func (l *inMemoryLedger) Balance(_ context.Context, walletID, currency string) (decimal.Decimal, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	s, ok := l.sheets[walletID]
	if !ok {
		return decimal.Zero, ErrUnknownWallet
	}
	balance, ok := s.balances[strings.ToUpper(currency)]
	if !ok {
		return decimal.Zero, ErrUnknownCurrency
	}
	return balance, nil
}

func (l *inMemoryLedger) Balances(_ context.Context, walletID string) (map[string]decimal.Decimal, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	s, ok := l.sheets[walletID]
	if !ok {
		return nil, ErrUnknownWallet
	}
	out := make(map[string]decimal.Decimal, len(s.balances))
	for c, b := range s.balances {
		out[c] = b
	}
	return out, nil
}

func (l *inMemoryLedger) Send(_ context.Context, walletID string, amount decimal.Decimal, fromCurrency, toCurrency, recipient string) (SendResult, error) {
	if !amount.IsPositive() || strings.TrimSpace(recipient) == "" {
		return SendResult{}, ErrInvalidInput
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	s, ok := l.sheets[walletID]
	if !ok {
		return SendResult{}, ErrUnknownWallet
	}

	fromCurrency = strings.ToUpper(fromCurrency)
	toCurrency = strings.ToUpper(toCurrency)
	balance, ok := s.balances[fromCurrency]
	if !ok {
		return SendResult{}, ErrUnknownCurrency
	}
	if balance.LessThan(amount) {
		return SendResult{}, ErrInsufficientFunds
	}

	// Only the source side is debited; the destination currency appears on
	// the record for conversion display, never as a balance effect.
	balance = balance.Sub(amount)
	s.balances[fromCurrency] = balance

	tx := Transaction{
		ID:           newTransactionID(),
		Kind:         KindSend,
		Amount:       amount,
		FromCurrency: fromCurrency,
		ToCurrency:   toCurrency,
		Counterparty: strings.TrimSpace(recipient),
		Date:         time.Now().UTC().Format("2006-01-02"),
		Status:       StatusCompleted,
	}
	s.history = append([]Transaction{tx}, s.history...)

	return SendResult{Transaction: tx, NewBalance: balance}, nil
}

func (l *inMemoryLedger) Deposit(_ context.Context, walletID string, amount decimal.Decimal, currency string) (DepositResult, error) {
	if !amount.IsPositive() {
		return DepositResult{}, ErrInvalidInput
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	s, ok := l.sheets[walletID]
	if !ok {
		return DepositResult{}, ErrUnknownWallet
	}

	currency = strings.ToUpper(currency)
	balance, ok := s.balances[currency]
	if !ok {
		return DepositResult{}, ErrUnknownCurrency
	}

	balance = balance.Add(amount)
	s.balances[currency] = balance

	tx := Transaction{
		ID:           newTransactionID(),
		Kind:         KindDeposit,
		Amount:       amount,
		FromCurrency: currency,
		ToCurrency:   currency,
		Counterparty: DepositCounterparty,
		Date:         time.Now().UTC().Format("2006-01-02"),
		Status:       StatusCompleted,
	}
	s.history = append([]Transaction{tx}, s.history...)

	return DepositResult{Transaction: tx, NewBalance: balance}, nil
}

func (l *inMemoryLedger) History(_ context.Context, walletID string) ([]Transaction, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	s, ok := l.sheets[walletID]
	if !ok {
		return nil, ErrUnknownWallet
	}
	out := make([]Transaction, len(s.history))
	copy(out, s.history)
	return out, nil
}
