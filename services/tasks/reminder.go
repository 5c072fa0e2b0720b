package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"foodiespot/models"
	"foodiespot/utils"

	"github.com/hibiken/asynq"
)

const TypeReservationReminder = "reservation:reminder"

// ReminderPayload is the queued reminder for an upcoming reservation.
type ReminderPayload struct {
	ReservationID string `json:"reservationId"`
	RestaurantID  string `json:"restaurantId"`
	GuestName     string `json:"guestName"`
	Date          string `json:"date"`
	Start         int    `json:"start"`
}

// NewReminderTask builds the asynq task scheduled to fire at the given time.
func NewReminderTask(payload ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeReservationReminder, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}

	return task, opts, nil
}

// AsynqReminderScheduler enqueues reservation reminders on redis via asynq.
// It satisfies the booking coordinator's ReminderScheduler.
type AsynqReminderScheduler struct {
	Client *asynq.Client
	// Lead is how long before the reservation start the reminder fires.
	Lead time.Duration
}

func (s *AsynqReminderScheduler) ScheduleReminder(ctx context.Context, res models.Reservation) error {
	day, err := utils.ParseDate(res.Date)
	if err != nil {
		return fmt.Errorf("reminder for %s: %w", res.ID, err)
	}
	startsAt := day.Add(time.Duration(res.Start) * time.Minute)
	fireAt := startsAt.Add(-s.Lead)
	if !fireAt.After(time.Now()) {
		// Reservation starts inside the lead window; no reminder.
		return nil
	}

	task, opts, err := NewReminderTask(ReminderPayload{
		ReservationID: res.ID,
		RestaurantID:  res.RestaurantID,
		GuestName:     res.Contact.Name,
		Date:          res.Date,
		Start:         res.Start,
	}, fireAt)
	if err != nil {
		return err
	}
	if _, err := s.Client.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("enqueue reminder for %s: %w", res.ID, err)
	}
	return nil
}
