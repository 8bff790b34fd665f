package evohome

import (
	"errors"
	"fmt"
)

// Sentinel errors for vendor API operations.
//
// The three connection-failure classes are deliberately distinguishable so
// startup can log a specific diagnostic for each (wrong password, vendor
// outage, rate limit) before aborting. Use errors.Is() to check them.
var (
	// ErrBadCredentials is returned when the vendor rejects the account
	// username/password (HTTP 400/401 from the auth endpoint).
	ErrBadCredentials = errors.New("evohome: bad credentials")

	// ErrServiceUnavailable is returned when the vendor's servers are not
	// contactable (HTTP 503).
	ErrServiceUnavailable = errors.New("evohome: service unavailable")

	// ErrRateLimited is returned when the vendor reports too many requests
	// (HTTP 429). During routine polling this triggers backoff; at startup
	// it aborts initialisation.
	ErrRateLimited = errors.New("evohome: api rate limit exceeded")

	// ErrLocationIndex is returned when the configured location index is
	// outside the range of installations returned for the account.
	ErrLocationIndex = errors.New("evohome: location index out of range")

	// ErrBadTopology is returned when an installation does not contain
	// exactly one gateway with exactly one temperature control system.
	ErrBadTopology = errors.New("evohome: unexpected installation topology")

	// ErrNotSupported is returned by write operations (set mode, set
	// temperature) that are not yet wired to the vendor API. Callers must
	// surface this, never swallow it.
	ErrNotSupported = errors.New("evohome: operation not supported")
)

// APIError describes an unexpected HTTP failure from the vendor API.
// It covers every status code that is not part of the known taxonomy;
// such failures are fatal to the triggering operation and are never
// retried locally.
type APIError struct {
	StatusCode int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("evohome: unexpected HTTP status %d", e.StatusCode)
}
