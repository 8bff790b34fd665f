package bus

import (
	"context"
	"time"
)

// Logger is the minimal logging interface the broadcaster needs.
// Compatible with logging.Logger and slog.Logger.
type Logger interface {
	Info(msg string, args ...any)
	Error(msg string, args ...any)
}

// Broadcaster drives the refresh cycle: one parent-addressed refresh at
// startup, then one on every tick of the effective scan interval.
//
// Children are never woken by the timer. The parent fans a child-addressed
// refresh out itself once its poll has updated the shared status tree.
type Broadcaster struct {
	bus      *Bus
	interval time.Duration
	sender   string
	logger   Logger
}

// NewBroadcaster creates a Broadcaster emitting on the given interval.
//
// The interval must already be the effective one (rounded up to whole
// minutes, floored at the configured minimum); see
// config.VendorConfig.EffectiveScanInterval.
func NewBroadcaster(b *Bus, interval time.Duration, logger Logger) *Broadcaster {
	return &Broadcaster{
		bus:      b,
		interval: interval,
		sender:   "broadcaster",
		logger:   logger,
	}
}

// Interval returns the scheduling interval in use.
func (br *Broadcaster) Interval() time.Duration {
	return br.interval
}

// Run emits the startup refresh, then one refresh per tick until the
// context is cancelled. It always returns nil on cancellation; a failed
// poll is fatal only to that cycle, never to the loop.
func (br *Broadcaster) Run(ctx context.Context) error {
	br.logger.Info("refresh broadcaster started", "interval", br.interval.String())

	// The first update must not wait a full interval.
	br.broadcast(ctx)

	ticker := time.NewTicker(br.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			br.logger.Info("refresh broadcaster stopped")
			return nil
		case <-ticker.C:
			br.broadcast(ctx)
		}
	}
}

// broadcast sends one parent-addressed refresh and logs any poll failure.
func (br *Broadcaster) broadcast(ctx context.Context) {
	pkt := Packet{Sender: br.sender, Signal: SignalRefresh, To: Parent}
	if err := br.bus.Broadcast(ctx, pkt); err != nil {
		br.logger.Error("refresh cycle failed", "error", err)
	}
}
