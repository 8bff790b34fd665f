// Package bus provides the in-process refresh broadcast channel.
//
// It is an explicit message bus with typed packets ({sender, signal,
// target mask}) rather than global dispatch state. Device facades
// subscribe with the mask of their own class: the controller under
// Parent, zones and the hot-water device under Child.
//
// # Delivery Model
//
// Broadcast is synchronous and single-threaded per call: handlers run to
// completion, in subscription order, before Broadcast returns. Combined
// with the single periodic Broadcaster this gives the bridge its
// cooperative scheduling model - the shared status tree has one writer
// (the parent's poll) and its writes always complete before children can
// observe them.
//
// # Usage
//
//	b := bus.New()
//	b.Subscribe(bus.Parent, controller.Refresh)
//	b.Subscribe(bus.Child, zone.Refresh)
//
//	br := bus.NewBroadcaster(b, cfg.Vendor.EffectiveScanInterval(), logger)
//	br.Run(ctx)
package bus
