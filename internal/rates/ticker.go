package rates

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// Ticker perturbs a Table's quotes on an interval, simulating market
// movement. It runs as a background task and never touches ledger state.
type Ticker struct {
	table    *Table
	interval time.Duration
	jitter   float64
	rng      *rand.Rand

	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

// NewTicker prepares a jitter ticker. jitter is the maximum relative move per
// tick, e.g. 0.02 for ±2%.
func NewTicker(table *Table, interval time.Duration, jitter float64) *Ticker {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	if jitter <= 0 || jitter >= 1 {
		jitter = 0.02
	}
	return &Ticker{
		table:    table,
		interval: interval,
		jitter:   jitter,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start launches the background loop. It returns immediately; the loop ends
// when the context is cancelled or Stop is called.
func (t *Ticker) Start(ctx context.Context) {
	go func() {
		defer close(t.done)
		ticker := time.NewTicker(t.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.stop:
				return
			case <-ticker.C:
				t.tick()
			}
		}
	}()
}

// Stop terminates the loop and waits for it to exit.
func (t *Ticker) Stop() {
	t.stopOnce.Do(func() { close(t.stop) })
	<-t.done
}

func (t *Ticker) tick() {
	factors := make(map[string]decimal.Decimal)
	for code := range t.table.Snapshot() {
		move := 1 + (t.rng.Float64()*2-1)*t.jitter
		factors[code] = decimal.NewFromFloat(move)
	}
	t.table.scale(factors)
}
