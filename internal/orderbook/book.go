package orderbook

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	// SideBuy and SideSell classify orders.
	SideBuy  = "buy"
	SideSell = "sell"

	statusActive = "active"
)

// ErrInvalidOrder occurs when a submitted order misses required fields.
var ErrInvalidOrder = errors.New("invalid order")

// Order is one entry in the mock book. Orders are display data only and
// never settle against the ledger.
type Order struct {
	ID        string          `json:"id"`
	Side      string          `json:"side"`
	Currency  string          `json:"currency"`
	Amount    decimal.Decimal `json:"amount"`
	Price     decimal.Decimal `json:"price"`
	Trader    string          `json:"trader"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
}

// Stats summarizes the book for the exchange landing view.
type Stats struct {
	ActiveOrders int             `json:"active_orders"`
	Volume       decimal.Decimal `json:"volume"`
	Traders      int             `json:"traders"`
}

// Book is a thread-safe in-memory order list, newest first.
type Book struct {
	mu     sync.RWMutex
	orders []Order
}

// NewBook builds an empty book.
func NewBook() *Book {
	return &Book{}
}

// NewSeededBook builds a book preloaded with sample orders.
func NewSeededBook() *Book {
	b := NewBook()
	seed := []struct {
		side, currency, amount, price, trader string
	}{
		{SideSell, "USD", "500", "0.92", "trader_eu"},
		{SideSell, "EUR", "1200", "1.08", "fx_maker"},
		{SideBuy, "GBP", "300", "1.27", "cable_desk"},
	}
	for _, s := range seed {
		_, _ = b.Add(AddInput{
			Side:     s.side,
			Currency: s.currency,
			Amount:   s.amount,
			Price:    s.price,
			Trader:   s.trader,
		})
	}
	return b
}

// AddInput captures a submitted order. Numeric fields arrive as strings from
// the form.
type AddInput struct {
	Side     string
	Currency string
	Amount   string
	Price    string
	Trader   string
}

// Add validates and inserts an order at the front of the book.
func (b *Book) Add(input AddInput) (Order, error) {
	side := strings.ToLower(strings.TrimSpace(input.Side))
	if side != SideBuy && side != SideSell {
		return Order{}, ErrInvalidOrder
	}
	currency := strings.ToUpper(strings.TrimSpace(input.Currency))
	trader := strings.TrimSpace(input.Trader)
	if currency == "" || trader == "" {
		return Order{}, ErrInvalidOrder
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(input.Amount))
	if err != nil || !amount.IsPositive() {
		return Order{}, ErrInvalidOrder
	}
	price, err := decimal.NewFromString(strings.TrimSpace(input.Price))
	if err != nil || !price.IsPositive() {
		return Order{}, ErrInvalidOrder
	}

	order := Order{
		ID:        uuid.NewString(),
		Side:      side,
		Currency:  currency,
		Amount:    amount,
		Price:     price,
		Trader:    trader,
		Status:    statusActive,
		CreatedAt: time.Now().UTC(),
	}

	b.mu.Lock()
	b.orders = append([]Order{order}, b.orders...)
	b.mu.Unlock()
	return order, nil
}

// List returns a copy of the book, newest first.
func (b *Book) List() []Order {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]Order, len(b.orders))
	copy(out, b.orders)
	return out
}

// Stats aggregates active orders, total volume and distinct traders.
func (b *Book) Stats() Stats {
	b.mu.RLock()
	defer b.mu.RUnlock()

	stats := Stats{Volume: decimal.Zero}
	traders := make(map[string]struct{})
	for _, order := range b.orders {
		if order.Status != statusActive {
			continue
		}
		stats.ActiveOrders++
		stats.Volume = stats.Volume.Add(order.Amount.Mul(order.Price))
		traders[order.Trader] = struct{}{}
	}
	stats.Traders = len(traders)
	return stats
}
