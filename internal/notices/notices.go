package notices

import (
	"log/slog"
	"sync"
	"time"
)

// Level classifies a notice.
type Level string

const (
	// LevelInfo marks transient success notices that auto-clear.
	LevelInfo Level = "info"
	// LevelError marks sticky failure banners that stay until replaced.
	LevelError Level = "error"
)

// Notice is the current user-facing message for a wallet.
type Notice struct {
	Level  Level     `json:"level"`
	Text   string    `json:"text"`
	Sticky bool      `json:"sticky"`
	At     time.Time `json:"at"`
}

// Center holds at most one notice per wallet. Info notices expire after the
// configured TTL; error notices persist until replaced or cleared.
type Center struct {
	ttl    time.Duration
	logger *slog.Logger

	mu      sync.Mutex
	current map[string]Notice
	timers  map[string]*time.Timer
	closed  bool
}

// NewCenter builds a notice center. A non-positive TTL falls back to 3s, the
// auto-clear delay the wallet UI used.
func NewCenter(ttl time.Duration, logger *slog.Logger) *Center {
	if ttl <= 0 {
		ttl = 3 * time.Second
	}
	return &Center{
		ttl:     ttl,
		logger:  logger,
		current: make(map[string]Notice),
		timers:  make(map[string]*time.Timer),
	}
}

// Publish replaces the wallet's notice with a transient info message that
// clears itself after the TTL.
func (c *Center) Publish(walletID, text string) {
	c.set(walletID, Notice{Level: LevelInfo, Text: text, At: time.Now().UTC()})
}

// Fail replaces the wallet's notice with a sticky error banner.
func (c *Center) Fail(walletID, text string) {
	c.set(walletID, Notice{Level: LevelError, Text: text, Sticky: true, At: time.Now().UTC()})
}

// Current returns the wallet's active notice, if any.
func (c *Center) Current(walletID string) (Notice, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	n, ok := c.current[walletID]
	return n, ok
}

// Clear removes the wallet's notice and cancels its expiry timer.
func (c *Center) Clear(walletID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clearLocked(walletID)
}

// Close cancels all expiry timers. Further publishes are dropped.
func (c *Center) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for id := range c.timers {
		c.clearLocked(id)
	}
	c.closed = true
}

func (c *Center) set(walletID string, n Notice) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.clearLocked(walletID)
	c.current[walletID] = n
	if !n.Sticky {
		c.timers[walletID] = time.AfterFunc(c.ttl, func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			if cur, ok := c.current[walletID]; ok && cur == n {
				delete(c.current, walletID)
				delete(c.timers, walletID)
			}
		})
	}
	if c.logger != nil {
		c.logger.Info("notice", "wallet_id", walletID, "level", string(n.Level), "text", n.Text)
	}
}

func (c *Center) clearLocked(walletID string) {
	if timer, ok := c.timers[walletID]; ok {
		timer.Stop()
		delete(c.timers, walletID)
	}
	delete(c.current, walletID)
}
