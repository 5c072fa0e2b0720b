package booking

import (
	"context"
	"fmt"
	"time"

	catalogRepo "foodiespot/database/repository/catalog"
	ledgerRepo "foodiespot/database/repository/ledger"
	"foodiespot/models"

	"github.com/google/uuid"
)

// Ledger is the authoritative set of reservations. It enforces the capacity
// invariant on insert and owns the confirmed -> cancelled transition.
// Reservations are never deleted; cancelled records stay for audit history.
type Ledger interface {
	// Add validates the capacity invariant across the whole occupancy window
	// and persists the reservation, assigning its identifier.
	Add(ctx context.Context, res models.Reservation) (models.Reservation, error)
	// Cancel transitions confirmed -> cancelled. Cancelling an unknown or
	// already-cancelled reservation is an error, not a no-op.
	Cancel(ctx context.Context, id string) error
	// Get returns a reservation by id.
	Get(ctx context.Context, id string) (models.Reservation, error)
	// ListFor returns all reservations (any status) for a restaurant/date.
	// Availability callers must filter to confirmed themselves.
	ListFor(ctx context.Context, restaurantID, date string) ([]models.Reservation, error)
	// ForGuest returns every reservation made under the given guest name,
	// matched case-insensitively; a non-empty email narrows the match.
	ForGuest(ctx context.Context, name, email string) ([]models.Reservation, error)
	// Export returns the whole ledger in creation order, for audit callers.
	Export(ctx context.Context) ([]models.Reservation, error)
}

// DefaultLedger is the production implementation over an injected repository.
type DefaultLedger struct {
	Repo     ledgerRepo.Repository
	Catalog  catalogRepo.Repository
	Settings Settings
}

func (l *DefaultLedger) Add(ctx context.Context, res models.Reservation) (models.Reservation, error) {
	if res.PartySize <= 0 {
		return models.Reservation{}, InvalidRequestError{Reason: fmt.Sprintf("party size must be positive, got %d", res.PartySize)}
	}

	restaurant, err := l.Catalog.GetByID(ctx, res.RestaurantID)
	if err != nil {
		return models.Reservation{}, fmt.Errorf("resolving restaurant %s: %w", res.RestaurantID, err)
	}
	if restaurant == nil {
		return models.Reservation{}, fmt.Errorf("restaurant %s: %w", res.RestaurantID, ErrNotFound)
	}

	existing, err := l.Repo.ListByRestaurantAndDate(ctx, res.RestaurantID, res.Date)
	if err != nil {
		return models.Reservation{}, fmt.Errorf("loading reservations: %w", err)
	}

	// The new window must leave headroom at its most contended instant.
	peak := peakOverlap(existing, res.Start, l.Settings.ReservationDuration)
	remaining := restaurant.Capacity - peak
	if res.PartySize > remaining {
		return models.Reservation{}, CapacityExceededError{Requested: res.PartySize, Remaining: remaining}
	}

	res.ID = uuid.New().String()
	res.Status = models.ReservationConfirmed
	res.CreatedAt = time.Now().UTC()

	if err := l.Repo.Insert(ctx, res); err != nil {
		return models.Reservation{}, fmt.Errorf("persisting reservation: %w", err)
	}
	return res, nil
}

func (l *DefaultLedger) Cancel(ctx context.Context, id string) error {
	// Cancellation only restores headroom, so no capacity check here.
	matched, err := l.Repo.UpdateStatus(ctx, id, models.ReservationConfirmed, models.ReservationCancelled)
	if err != nil {
		return fmt.Errorf("cancelling reservation %s: %w", id, err)
	}
	if !matched {
		return fmt.Errorf("reservation %s: %w", id, ErrNotFound)
	}
	return nil
}

func (l *DefaultLedger) Get(ctx context.Context, id string) (models.Reservation, error) {
	res, err := l.Repo.GetByID(ctx, id)
	if err != nil {
		return models.Reservation{}, fmt.Errorf("loading reservation %s: %w", id, err)
	}
	if res == nil {
		return models.Reservation{}, fmt.Errorf("reservation %s: %w", id, ErrNotFound)
	}
	return *res, nil
}

func (l *DefaultLedger) ListFor(ctx context.Context, restaurantID, date string) ([]models.Reservation, error) {
	return l.Repo.ListByRestaurantAndDate(ctx, restaurantID, date)
}

func (l *DefaultLedger) ForGuest(ctx context.Context, name, email string) ([]models.Reservation, error) {
	if name == "" {
		return nil, InvalidRequestError{Reason: "guest name is required"}
	}
	return l.Repo.ListByCustomer(ctx, name, email)
}

func (l *DefaultLedger) Export(ctx context.Context) ([]models.Reservation, error) {
	return l.Repo.ListAll(ctx)
}

// confirmedOverlap sums party sizes of confirmed reservations whose occupancy
// window covers instant t.
func confirmedOverlap(reservations []models.Reservation, t, duration int) int {
	sum := 0
	for _, res := range reservations {
		if res.Status != models.ReservationConfirmed {
			continue
		}
		if res.Occupies(t, duration) {
			sum += res.PartySize
		}
	}
	return sum
}

// peakOverlap returns the largest confirmed overlap sum at any instant of the
// window [start, start+duration). The sum only changes at reservation start
// times, so it is enough to evaluate at the window start and at each
// reservation start inside the window.
func peakOverlap(reservations []models.Reservation, start, duration int) int {
	peak := confirmedOverlap(reservations, start, duration)
	for _, res := range reservations {
		if res.Status != models.ReservationConfirmed {
			continue
		}
		if res.Start > start && res.Start < start+duration {
			if sum := confirmedOverlap(reservations, res.Start, duration); sum > peak {
				peak = sum
			}
		}
	}
	return peak
}
