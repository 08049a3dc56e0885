package timeutil

import (
	"sync"
	"testing"
	"time"
)

func TestRealClock(t *testing.T) {
	clock := RealClock{}
	before := time.Now()
	now := clock.Now()
	after := time.Now()

	if now.Before(before) || now.After(after) {
		t.Errorf("Now() = %v, expected between %v and %v", now, before, after)
	}
	if d := clock.Since(time.Now().Add(-time.Second)); d < time.Second {
		t.Errorf("Since() returned %v, expected >= 1s", d)
	}
}

func TestStepClock_Now(t *testing.T) {
	start := time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC)
	clock := NewStepClock(start, time.Second)

	for i := 0; i < 3; i++ {
		want := start.Add(time.Duration(i) * time.Second)
		if got := clock.Now(); !got.Equal(want) {
			t.Errorf("reading %d: got %v, want %v", i, got, want)
		}
	}
}

func TestStepClock_Frozen(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := NewStepClock(start, 0)
	clock.Now()

	if got := clock.Now(); !got.Equal(start) {
		t.Errorf("got %v, want %v", got, start)
	}
}

func TestStepClock_SinceAndSet(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	clock := NewStepClock(start, time.Minute)

	if d := clock.Since(start.Add(-5 * time.Minute)); d != 5*time.Minute {
		t.Errorf("Since() = %v, want 5m", d)
	}
	// Since does not advance.
	if got := clock.Now(); !got.Equal(start) {
		t.Errorf("got %v, want %v", got, start)
	}

	later := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	clock.Set(later)
	if got := clock.Now(); !got.Equal(later) {
		t.Errorf("got %v, want %v", got, later)
	}
}

func TestStepClock_Concurrent(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := NewStepClock(start, time.Millisecond)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			clock.Now()
		}()
	}
	wg.Wait()

	if got := clock.Now(); !got.Equal(start.Add(50 * time.Millisecond)) {
		t.Errorf("got %v after 50 readings", got)
	}
}
