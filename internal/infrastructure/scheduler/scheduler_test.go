package scheduler

import (
	"testing"
	"time"
)

func TestManualFiresInOrder(t *testing.T) {
	clock := NewManual()
	var fired []string
	clock.AfterFunc(2*time.Second, func() { fired = append(fired, "b") })
	clock.AfterFunc(time.Second, func() { fired = append(fired, "a") })
	stopped := clock.AfterFunc(1500*time.Millisecond, func() { fired = append(fired, "x") })
	if !stopped.Stop() {
		t.Fatal("Stop on pending timer should report true")
	}

	clock.Advance(1500 * time.Millisecond)
	if len(fired) != 1 || fired[0] != "a" {
		t.Fatalf("fired = %v", fired)
	}
	clock.Advance(time.Second)
	if len(fired) != 2 || fired[1] != "b" {
		t.Fatalf("fired = %v", fired)
	}
	if clock.Pending() != 0 {
		t.Fatalf("pending = %d", clock.Pending())
	}
}

func TestManualChainsTimersWithinWindow(t *testing.T) {
	clock := NewManual()
	count := 0
	var tick func()
	tick = func() {
		count++
		clock.AfterFunc(time.Second, tick)
	}
	clock.AfterFunc(time.Second, tick)
	clock.Advance(3 * time.Second)
	if count != 3 {
		t.Fatalf("count = %d, want 3", count)
	}
}

func TestRealSchedulerStops(t *testing.T) {
	timer := Real{}.AfterFunc(time.Hour, func() {})
	if !timer.Stop() {
		t.Fatal("expected Stop to cancel pending timer")
	}
}
