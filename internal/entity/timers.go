package entity

import (
	"sync"
	"time"
)

// Timers tracks per-device polling suspension windows. A device that
// trips the vendor's rate limiter is suspended until a deadline; polls
// are refused strictly before the deadline and allowed again at or
// after it. Safe for concurrent use.
type Timers struct {
	mu             sync.Mutex
	suspendedUntil map[string]time.Time
}

// NewTimers creates an empty suspension table.
func NewTimers() *Timers {
	return &Timers{suspendedUntil: make(map[string]time.Time)}
}

// Suspend records that deviceID must not poll before until. A later
// call overwrites any earlier deadline.
func (t *Timers) Suspend(deviceID string, until time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.suspendedUntil[deviceID] = until
}

// SuspendedUntil returns the active deadline for deviceID, if any.
func (t *Timers) SuspendedUntil(deviceID string) (time.Time, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	until, ok := t.suspendedUntil[deviceID]
	return until, ok
}

// PollAllowed reports whether deviceID may poll at the given instant.
// The deadline itself is allowed: a device suspended until T polls
// again at exactly T.
func (t *Timers) PollAllowed(deviceID string, now time.Time) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	until, ok := t.suspendedUntil[deviceID]
	if !ok {
		return true
	}
	if now.Before(until) {
		return false
	}
	delete(t.suspendedUntil, deviceID)
	return true
}
