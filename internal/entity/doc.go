// Package entity exposes the bridged heating installation as platform
// devices: one controller, up to twelve heating zones, and an optional
// stored hot water tank.
//
// The controller is the only device that polls the vendor cloud. Each
// refresh cycle it installs a fresh status snapshot in the shared
// Store, publishes its own retained state document, and fans a child
// refresh out on the internal bus; zones and the hot water device then
// re-derive their state from the snapshot without touching the network.
// One poll per cycle, regardless of how many devices the installation
// has.
//
// Vendor operating modes are translated to platform display operations
// by total lookup tables (every documented vendor mode maps somewhere);
// the reverse direction is deliberately partial, covering only the
// operations a user can request. Rate-limit responses from the vendor
// suspend polling for three scan intervals via the Timers table.
package entity
