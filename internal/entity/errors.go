package entity

import "errors"

// Domain errors for the entity package.
// Use errors.Is() to check for these errors in calling code.
var (
	// ErrUnknownMode is returned when a vendor operating mode is missing
	// from the display lookup tables, or when a command names a display
	// operation with no vendor equivalent. The forward tables are total
	// over every documented vendor mode, so hitting this on a poll is a
	// defect to fix, not a state to mask with a guessed default.
	ErrUnknownMode = errors.New("entity: unknown operating mode")

	// ErrEmptyCommand is returned when a command document carries neither
	// an operation nor a temperature.
	ErrEmptyCommand = errors.New("entity: empty command")
)
