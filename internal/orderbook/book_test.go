package orderbook

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestAddAndListNewestFirst(t *testing.T) {
	b := NewBook()

	first, err := b.Add(AddInput{Side: "sell", Currency: "usd", Amount: "100", Price: "0.9", Trader: "alice"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	second, err := b.Add(AddInput{Side: "buy", Currency: "EUR", Amount: "50", Price: "1.1", Trader: "bob"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	orders := b.List()
	if len(orders) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(orders))
	}
	if orders[0].ID != second.ID || orders[1].ID != first.ID {
		t.Fatal("expected newest-first ordering")
	}
	if orders[1].Currency != "USD" || orders[1].Side != SideSell {
		t.Fatalf("expected normalized fields, got %+v", orders[1])
	}
}

func TestAddRejectsInvalidOrders(t *testing.T) {
	b := NewBook()
	cases := []AddInput{
		{Side: "hold", Currency: "USD", Amount: "10", Price: "1", Trader: "a"},
		{Side: "sell", Currency: "", Amount: "10", Price: "1", Trader: "a"},
		{Side: "sell", Currency: "USD", Amount: "0", Price: "1", Trader: "a"},
		{Side: "sell", Currency: "USD", Amount: "10", Price: "-1", Trader: "a"},
		{Side: "sell", Currency: "USD", Amount: "10", Price: "1", Trader: ""},
	}
	for _, tc := range cases {
		if _, err := b.Add(tc); !errors.Is(err, ErrInvalidOrder) {
			t.Fatalf("input %+v: expected ErrInvalidOrder, got %v", tc, err)
		}
	}
	if len(b.List()) != 0 {
		t.Fatal("invalid orders must not enter the book")
	}
}

func TestStats(t *testing.T) {
	b := NewSeededBook()
	stats := b.Stats()

	if stats.ActiveOrders != 3 {
		t.Fatalf("expected 3 active orders, got %d", stats.ActiveOrders)
	}
	if stats.Traders != 3 {
		t.Fatalf("expected 3 traders, got %d", stats.Traders)
	}
	// 500*0.92 + 1200*1.08 + 300*1.27
	want := decimal.RequireFromString("2137")
	if !stats.Volume.Equal(want) {
		t.Fatalf("expected volume %s, got %s", want, stats.Volume)
	}
}
