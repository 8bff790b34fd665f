package bus

import (
	"context"
	"errors"
	"sync"
)

// Mask selects which device class a packet is addressed to.
// The timer only ever addresses the parent; the parent addresses its
// children after a successful poll.
type Mask uint8

// Recipient classes.
const (
	// Parent is the controller (temperature control system).
	Parent Mask = 1 << 0

	// Child is any zone or the hot-water device.
	Child Mask = 1 << 1
)

// Signal names the event a packet carries.
type Signal string

// SignalRefresh asks recipients to refresh their state.
const SignalRefresh Signal = "refresh"

// Packet is one broadcast message on the refresh channel.
type Packet struct {
	// Sender identifies who sent the packet (for logging).
	Sender string

	// Signal is the event being broadcast.
	Signal Signal

	// To is the bitmask of recipient classes this packet addresses.
	To Mask
}

// Handler processes one delivered packet. Errors are collected by
// Broadcast and surfaced to the broadcasting caller.
type Handler func(ctx context.Context, pkt Packet) error

// Bus is an in-process broadcast channel with typed packets and
// class-mask filtering. Subscribers register with the mask of packet
// classes they want; Broadcast delivers synchronously, in subscription
// order, to every subscriber whose mask intersects the packet's.
//
// Synchronous delivery is load-bearing: the parent's poll handler runs to
// completion before Broadcast returns, so status writes always complete
// before any later broadcast lets the children read the shared tree.
type Bus struct {
	mu   sync.RWMutex
	subs []subscriber
}

type subscriber struct {
	mask    Mask
	handler Handler
}

// New creates an empty Bus.
func New() *Bus {
	return &Bus{}
}

// Subscribe registers a handler for every packet whose To mask intersects
// the given mask. Handlers are invoked synchronously from Broadcast.
func (b *Bus) Subscribe(mask Mask, handler Handler) {
	if handler == nil {
		return
	}
	b.mu.Lock()
	b.subs = append(b.subs, subscriber{mask: mask, handler: handler})
	b.mu.Unlock()
}

// SubscriberCount returns the number of registered handlers.
func (b *Bus) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Broadcast delivers the packet to every matching subscriber in
// registration order and returns the handlers' errors joined.
//
// Handlers may themselves call Broadcast (the parent fans out a child
// refresh after its poll); the subscriber list is snapshotted outside the
// lock so re-entrant broadcasts cannot deadlock.
func (b *Bus) Broadcast(ctx context.Context, pkt Packet) error {
	b.mu.RLock()
	subs := make([]subscriber, len(b.subs))
	copy(subs, b.subs)
	b.mu.RUnlock()

	var errs []error
	for _, sub := range subs {
		if sub.mask&pkt.To == 0 {
			continue
		}
		if err := sub.handler(ctx, pkt); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
