package booking

import (
	"errors"
	"fmt"
)

// ErrNotFound reports an unknown restaurant or reservation id, including an
// attempt to cancel an already-cancelled reservation.
var ErrNotFound = errors.New("not found")

// InvalidRequestError reports malformed or out-of-range caller input.
type InvalidRequestError struct {
	Reason string
}

func (e InvalidRequestError) Error() string {
	return fmt.Sprintf("invalid request: %s", e.Reason)
}

// InvalidConfigurationError reports a bad engine or restaurant setup. It is
// detected eagerly at startup, never per request, and is fatal there.
type InvalidConfigurationError struct {
	Reason string
}

func (e InvalidConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s", e.Reason)
}

// SlotUnavailableError reports a failed availability check, carrying the
// shortfall for caller display.
type SlotUnavailableError struct {
	Requested int
	Remaining int
}

func (e SlotUnavailableError) Error() string {
	return fmt.Sprintf("slot unavailable: requested %d seats, %d remaining", e.Requested, e.Remaining)
}

// CapacityExceededError is the ledger-level twin of SlotUnavailableError,
// raised at the storage boundary when an insert would break the capacity
// invariant. Same cause, same user-facing message.
type CapacityExceededError struct {
	Requested int
	Remaining int
}

func (e CapacityExceededError) Error() string {
	return fmt.Sprintf("capacity exceeded: requested %d seats, %d remaining", e.Requested, e.Remaining)
}

// ConflictError reports that booking contention exhausted its lock wait.
type ConflictError struct{}

func (e ConflictError) Error() string {
	return "booking conflict: could not acquire reservation lock in time"
}
