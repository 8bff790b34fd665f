// Package evohome is a client for the vendor's hosted heating-control API.
//
// It covers exactly what the bridge consumes:
//   - OAuth2 password-grant authentication (one session per process)
//   - Installation topology (location → gateway → temperature control
//     system; the vendor caps a controller at 13 children, 12 heating
//     zones plus one hot-water device, and the bridge trusts the cloud
//     rather than re-validating that cap)
//   - Live status polls of the controller and all its children
//
// # Error Taxonomy
//
// Connection and poll failures map onto four classes: ErrBadCredentials,
// ErrServiceUnavailable, ErrRateLimited, and *APIError for everything
// else. Only the rate-limit class is recoverable (by backoff, handled by
// the caller); the rest are fatal to the triggering operation.
//
// # Privacy
//
// Sensitive installation fields (location id, owner, street address,
// city, gateway hardware info) are redacted during bootstrap and never
// retained in plaintext. The client privately keeps the one identifier
// required for status polls.
//
// # Write Operations
//
// Set-mode and set-temperature calls are declared but return
// ErrNotSupported: the write side of the vendor API is not wired up yet,
// and a loud failure beats a silent no-op.
package evohome
