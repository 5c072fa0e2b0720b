package booking

import (
	"context"
	"fmt"

	catalogRepo "foodiespot/database/repository/catalog"
	"foodiespot/models"

	"go.uber.org/zap"
)

// ReminderScheduler enqueues a guest reminder for a confirmed reservation.
// Scheduling is best effort: a failed enqueue never fails the booking.
type ReminderScheduler interface {
	ScheduleReminder(ctx context.Context, res models.Reservation) error
}

// Coordinator orchestrates a single booking attempt: re-check availability
// against the ledger's current state and write, as one logically atomic step.
type Coordinator interface {
	Book(ctx context.Context, req models.BookingRequest) (models.Reservation, error)
}

// DefaultCoordinator serializes check-then-write per (restaurant, date).
// Two concurrent bookings for the last seats of the same service can never
// both succeed; one of them re-checks after the other committed.
type DefaultCoordinator struct {
	Catalog   catalogRepo.Repository
	Engine    AvailabilityEngine
	Ledger    Ledger
	Reminders ReminderScheduler // optional
	Settings  Settings
	Logger    *zap.Logger

	locks *lockTable
}

// NewCoordinator wires a DefaultCoordinator.
func NewCoordinator(catalog catalogRepo.Repository, engine AvailabilityEngine, ledger Ledger, reminders ReminderScheduler, settings Settings, logger *zap.Logger) *DefaultCoordinator {
	return &DefaultCoordinator{
		Catalog:   catalog,
		Engine:    engine,
		Ledger:    ledger,
		Reminders: reminders,
		Settings:  settings,
		Logger:    logger,
		locks:     newLockTable(),
	}
}

func (c *DefaultCoordinator) Book(ctx context.Context, req models.BookingRequest) (models.Reservation, error) {
	if req.Contact.Name == "" {
		return models.Reservation{}, InvalidRequestError{Reason: "contact name is required"}
	}

	restaurant, err := c.Catalog.GetByID(ctx, req.RestaurantID)
	if err != nil {
		return models.Reservation{}, fmt.Errorf("resolving restaurant %s: %w", req.RestaurantID, err)
	}
	if restaurant == nil {
		return models.Reservation{}, fmt.Errorf("restaurant %s: %w", req.RestaurantID, ErrNotFound)
	}

	// Critical section: no other booking for this restaurant/date may land
	// between the availability check and the ledger write.
	release, err := c.locks.acquire(ctx, req.RestaurantID+"|"+req.Date, c.Settings.LockWait)
	if err != nil {
		return models.Reservation{}, err
	}
	defer release()

	avail, err := c.Engine.Check(ctx, restaurant, req.Date, req.Start, req.PartySize)
	if err != nil {
		return models.Reservation{}, err
	}
	if !avail.Available {
		return models.Reservation{}, SlotUnavailableError{Requested: req.PartySize, Remaining: avail.Remaining}
	}

	res, err := c.Ledger.Add(ctx, models.Reservation{
		RestaurantID: req.RestaurantID,
		Contact:      req.Contact,
		Date:         req.Date,
		Start:        req.Start,
		PartySize:    req.PartySize,
	})
	if err != nil {
		return models.Reservation{}, err
	}

	if c.Reminders != nil {
		if err := c.Reminders.ScheduleReminder(ctx, res); err != nil && c.Logger != nil {
			c.Logger.Warn("failed to schedule reservation reminder",
				zap.String("reservation_id", res.ID), zap.Error(err))
		}
	}

	if c.Logger != nil {
		c.Logger.Info("reservation confirmed",
			zap.String("reservation_id", res.ID),
			zap.String("restaurant_id", res.RestaurantID),
			zap.String("date", res.Date),
			zap.Int("start", res.Start),
			zap.Int("party_size", res.PartySize))
	}
	return res, nil
}
