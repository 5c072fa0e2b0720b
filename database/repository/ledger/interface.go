// File: database/repository/ledger/interface.go
package ledgerRepo

import (
	"context"

	"foodiespot/models"
)

// Repository is the injected storage collaborator for reservation records.
// It is dumb persistence: the capacity invariant is enforced above it by the
// reservation ledger service, which serializes writes per restaurant/date.
type Repository interface {
	// Insert persists a new reservation record.
	Insert(ctx context.Context, res models.Reservation) error
	// GetByID returns nil (and no error) when the reservation does not exist.
	GetByID(ctx context.Context, id string) (*models.Reservation, error)
	// UpdateStatus transitions a reservation from one status to another,
	// conditionally: it reports false when no record matched (unknown id or
	// status already changed).
	UpdateStatus(ctx context.Context, id string, from, to models.ReservationStatus) (bool, error)
	// ListByRestaurantAndDate returns every reservation (any status) for a
	// restaurant on a date, ordered by start time then id.
	ListByRestaurantAndDate(ctx context.Context, restaurantID, date string) ([]models.Reservation, error)
	// ListByCustomer returns every reservation whose guest name matches,
	// case-insensitively. A non-empty email narrows the match further.
	// Ordered by creation time.
	ListByCustomer(ctx context.Context, name, email string) ([]models.Reservation, error)
	// ListAll returns the complete ledger, for audit and export callers.
	ListAll(ctx context.Context) ([]models.Reservation, error)
}
