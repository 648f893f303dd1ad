package notices

import (
	"testing"
	"time"

	"github.com/p2p-exchange/p2p_exchange/internal/logging"
)

func TestPublishAutoClears(t *testing.T) {
	c := NewCenter(20*time.Millisecond, logging.Discard())
	defer c.Close()

	c.Publish("w1", "Successfully sent 100 USD")
	if n, ok := c.Current("w1"); !ok || n.Text != "Successfully sent 100 USD" {
		t.Fatalf("expected notice present, got %+v ok=%v", n, ok)
	}

	time.Sleep(80 * time.Millisecond)
	if _, ok := c.Current("w1"); ok {
		t.Fatal("transient notice should have auto-cleared")
	}
}

func TestFailIsSticky(t *testing.T) {
	c := NewCenter(10*time.Millisecond, logging.Discard())
	defer c.Close()

	c.Fail("w1", "Payment authorization failed")
	time.Sleep(50 * time.Millisecond)

	n, ok := c.Current("w1")
	if !ok {
		t.Fatal("sticky notice must not auto-clear")
	}
	if n.Level != LevelError || !n.Sticky {
		t.Fatalf("unexpected notice: %+v", n)
	}
}

func TestPublishReplacesPrevious(t *testing.T) {
	c := NewCenter(time.Minute, logging.Discard())
	defer c.Close()

	c.Fail("w1", "old banner")
	c.Publish("w1", "new notice")

	n, ok := c.Current("w1")
	if !ok || n.Text != "new notice" || n.Level != LevelInfo {
		t.Fatalf("expected replacement notice, got %+v ok=%v", n, ok)
	}
}

func TestClearAndClose(t *testing.T) {
	c := NewCenter(time.Minute, logging.Discard())

	c.Publish("w1", "something")
	c.Clear("w1")
	if _, ok := c.Current("w1"); ok {
		t.Fatal("cleared notice still present")
	}

	c.Close()
	c.Publish("w1", "after close")
	if _, ok := c.Current("w1"); ok {
		t.Fatal("publish after close must be dropped")
	}
}
