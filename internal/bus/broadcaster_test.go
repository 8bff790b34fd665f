package bus

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

func TestBroadcaster_StartupRefresh(t *testing.T) {
	b := New()

	var parentRefreshes atomic.Int32
	b.Subscribe(Parent, func(_ context.Context, pkt Packet) error {
		if pkt.Signal == SignalRefresh {
			parentRefreshes.Add(1)
		}
		return nil
	})

	var childRefreshes atomic.Int32
	b.Subscribe(Child, func(context.Context, Packet) error {
		childRefreshes.Add(1)
		return nil
	})

	// A long interval so only the startup refresh fires during the test.
	br := NewBroadcaster(b, time.Hour, nopLogger{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- br.Run(ctx) }()

	// The startup refresh is emitted before the first tick.
	deadline := time.After(2 * time.Second)
	for parentRefreshes.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("no startup refresh within 2s")
		case <-time.After(10 * time.Millisecond):
		}
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("Run() error = %v, want nil on cancellation", err)
	}

	// The timer only wakes the parent.
	if childRefreshes.Load() != 0 {
		t.Errorf("child received %d timer refreshes, want 0", childRefreshes.Load())
	}
}

func TestBroadcaster_Interval(t *testing.T) {
	br := NewBroadcaster(New(), 4*time.Minute, nopLogger{})
	if br.Interval() != 4*time.Minute {
		t.Errorf("Interval() = %v, want 4m", br.Interval())
	}
}

func TestBroadcaster_HandlerErrorDoesNotStopLoop(t *testing.T) {
	b := New()

	var calls atomic.Int32
	b.Subscribe(Parent, func(context.Context, Packet) error {
		calls.Add(1)
		return context.DeadlineExceeded // any error
	})

	br := NewBroadcaster(b, 20*time.Millisecond, nopLogger{})

	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()

	if err := br.Run(ctx); err != nil {
		t.Errorf("Run() error = %v, want nil", err)
	}

	// Startup refresh plus at least one tick despite the failing handler.
	if calls.Load() < 2 {
		t.Errorf("handler calls = %d, want >= 2", calls.Load())
	}
}
