package booking

import (
	"context"
	"fmt"
	"sort"

	"foodiespot/models"
	"foodiespot/utils"
)

// AvailabilityEngine answers "is a table for N available at time T on date D"
// questions from the ledger's current state. All methods are pure reads:
// recomputable from the same inputs, no side effects.
type AvailabilityEngine interface {
	Check(ctx context.Context, restaurant *models.Restaurant, date string, start, partySize int) (models.Availability, error)
	// ListSlots enumerates every granularity-aligned start time within the
	// day's operating hours that can still seat the party.
	ListSlots(ctx context.Context, restaurant *models.Restaurant, date string, partySize int) ([]models.AvailableSlot, error)
	// SuggestAlternatives orders the day's open slots by proximity to a
	// preferred start time, the preferred slot first when itself available.
	SuggestAlternatives(ctx context.Context, restaurant *models.Restaurant, date string, preferred, partySize, limit int) ([]models.AvailableSlot, error)
}

// DefaultAvailabilityEngine is the production implementation.
type DefaultAvailabilityEngine struct {
	Ledger   Ledger
	Settings Settings
}

// slotGrid resolves the day's bookable start-time grid: first start, last
// start, and the operating window. A reservation occupies capacity for the
// whole configured duration, so the last valid start is the one whose window
// ends exactly at closing time.
func (e *DefaultAvailabilityEngine) slotGrid(restaurant *models.Restaurant, date string) (models.DayHours, error) {
	day, err := utils.ParseDate(date)
	if err != nil {
		return models.DayHours{}, InvalidRequestError{Reason: err.Error()}
	}
	hours := restaurant.HoursOn(day.Weekday())
	if hours.Closed() {
		return models.DayHours{}, InvalidRequestError{Reason: fmt.Sprintf("%s is closed on %s", restaurant.Name, day.Weekday())}
	}
	return hours, nil
}

func (e *DefaultAvailabilityEngine) validateParty(restaurant *models.Restaurant, partySize int) error {
	if partySize <= 0 {
		return InvalidRequestError{Reason: fmt.Sprintf("party size must be positive, got %d", partySize)}
	}
	if partySize > restaurant.Capacity {
		return InvalidRequestError{Reason: fmt.Sprintf("party size %d exceeds restaurant capacity %d", partySize, restaurant.Capacity)}
	}
	return nil
}

func (e *DefaultAvailabilityEngine) Check(ctx context.Context, restaurant *models.Restaurant, date string, start, partySize int) (models.Availability, error) {
	if err := e.validateParty(restaurant, partySize); err != nil {
		return models.Availability{}, err
	}
	hours, err := e.slotGrid(restaurant, date)
	if err != nil {
		return models.Availability{}, err
	}
	duration := e.Settings.ReservationDuration
	if start < hours.Open || start+duration > hours.Close {
		return models.Availability{}, InvalidRequestError{
			Reason: fmt.Sprintf("time %s is outside operating hours %s-%s for a %d minute seating",
				utils.FormatClock(start), utils.FormatClock(hours.Open), utils.FormatClock(hours.Close), duration),
		}
	}
	if (start-hours.Open)%e.Settings.SlotGranularity != 0 {
		return models.Availability{}, InvalidRequestError{
			Reason: fmt.Sprintf("time %s is not on the %d minute booking grid", utils.FormatClock(start), e.Settings.SlotGranularity),
		}
	}

	reservations, err := e.Ledger.ListFor(ctx, restaurant.ID, date)
	if err != nil {
		return models.Availability{}, fmt.Errorf("loading reservations: %w", err)
	}
	remaining := restaurant.Capacity - confirmedOverlap(reservations, start, duration)
	return models.Availability{
		Available: remaining >= partySize,
		Remaining: remaining,
	}, nil
}

func (e *DefaultAvailabilityEngine) ListSlots(ctx context.Context, restaurant *models.Restaurant, date string, partySize int) ([]models.AvailableSlot, error) {
	if err := e.validateParty(restaurant, partySize); err != nil {
		return nil, err
	}
	hours, err := e.slotGrid(restaurant, date)
	if err != nil {
		return nil, err
	}

	reservations, err := e.Ledger.ListFor(ctx, restaurant.ID, date)
	if err != nil {
		return nil, fmt.Errorf("loading reservations: %w", err)
	}

	duration := e.Settings.ReservationDuration
	slots := make([]models.AvailableSlot, 0)
	// Closing time bounds the window start, not active reservations: the last
	// slot is the one ending exactly at close.
	for start := hours.Open; start+duration <= hours.Close; start += e.Settings.SlotGranularity {
		remaining := restaurant.Capacity - confirmedOverlap(reservations, start, duration)
		if remaining < partySize {
			continue
		}
		slots = append(slots, models.AvailableSlot{
			Date:      date,
			Start:     start,
			Remaining: remaining,
		})
	}
	return slots, nil
}

func (e *DefaultAvailabilityEngine) SuggestAlternatives(ctx context.Context, restaurant *models.Restaurant, date string, preferred, partySize, limit int) ([]models.AvailableSlot, error) {
	slots, err := e.ListSlots(ctx, restaurant, date, partySize)
	if err != nil {
		return nil, err
	}
	if limit <= 0 || limit > len(slots) {
		limit = len(slots)
	}
	sort.SliceStable(slots, func(i, j int) bool {
		di := absInt(slots[i].Start - preferred)
		dj := absInt(slots[j].Start - preferred)
		if di != dj {
			return di < dj
		}
		return slots[i].Start < slots[j].Start
	})
	return slots[:limit], nil
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
