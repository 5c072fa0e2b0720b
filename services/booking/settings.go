package booking

import (
	"fmt"
	"time"
)

// Settings are the engine knobs shared by the calculator, ledger and
// coordinator. Values come from the process configuration and are validated
// once at startup; a bad value here is fatal, not a per-request error.
type Settings struct {
	// ReservationDuration is how long a reservation occupies capacity,
	// in minutes from its start time.
	ReservationDuration int
	// SlotGranularity is the spacing of the bookable time grid, in minutes.
	SlotGranularity int
	// LockWait bounds how long a booking attempt waits for the per
	// restaurant/date lock before giving up with a conflict.
	LockWait time.Duration
}

// DefaultSettings mirror a typical dinner-service setup: 90 minute seatings
// on a 30 minute grid.
func DefaultSettings() Settings {
	return Settings{
		ReservationDuration: 90,
		SlotGranularity:     30,
		LockWait:            2 * time.Second,
	}
}

// Validate rejects unusable engine settings.
func (s Settings) Validate() error {
	if s.SlotGranularity <= 0 {
		return InvalidConfigurationError{Reason: fmt.Sprintf("slot granularity must be positive, got %d", s.SlotGranularity)}
	}
	if s.ReservationDuration <= 0 {
		return InvalidConfigurationError{Reason: fmt.Sprintf("reservation duration must be positive, got %d", s.ReservationDuration)}
	}
	if s.ReservationDuration > 24*60 {
		return InvalidConfigurationError{Reason: fmt.Sprintf("reservation duration %d exceeds a day", s.ReservationDuration)}
	}
	if s.LockWait <= 0 {
		return InvalidConfigurationError{Reason: "lock wait must be positive"}
	}
	return nil
}
