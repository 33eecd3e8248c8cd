package game

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestClockFires(t *testing.T) {
	c := NewClock()
	fired := make(chan struct{})
	c.Start(20*time.Millisecond, func() { close(fired) })

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("clock never fired")
	}
	if left := c.TimeLeft(); left != 0 {
		t.Fatalf("TimeLeft after fire = %d, want 0", left)
	}
}

func TestClockCancelSuppressesCallback(t *testing.T) {
	c := NewClock()
	var fired atomic.Bool
	c.Start(20*time.Millisecond, func() { fired.Store(true) })
	c.Cancel()

	time.Sleep(80 * time.Millisecond)
	if fired.Load() {
		t.Fatal("cancelled callback fired")
	}
	if left := c.TimeLeft(); left != 0 {
		t.Fatalf("TimeLeft after cancel = %d, want 0", left)
	}
}

func TestClockRestartCancelsPrevious(t *testing.T) {
	c := NewClock()
	var first, second atomic.Bool
	c.Start(20*time.Millisecond, func() { first.Store(true) })
	c.Start(40*time.Millisecond, func() { second.Store(true) })

	time.Sleep(150 * time.Millisecond)
	if first.Load() {
		t.Fatal("superseded callback fired")
	}
	if !second.Load() {
		t.Fatal("replacement callback never fired")
	}
}

func TestClockTimeLeftRoundsUp(t *testing.T) {
	c := NewClock()
	c.Start(10*time.Second, func() {})
	defer c.Cancel()

	if left := c.TimeLeft(); left != 10 {
		t.Fatalf("TimeLeft right after start = %d, want 10", left)
	}
}

func TestClockDoubleCancel(t *testing.T) {
	c := NewClock()
	c.Cancel()
	c.Start(10*time.Millisecond, func() {})
	c.Cancel()
	c.Cancel()
}
