package notification

import (
	"context"

	"foodiespot/utils"

	"go.uber.org/zap"
)

// Notifier delivers guest-facing reminders. The conversational layer owns the
// actual wording and channel; this core only emits the structured event.
type Notifier interface {
	SendReservationReminder(ctx context.Context, guestName, restaurantID, date string, start int) error
}

// LogNotifier is the default delivery: a structured log line. Deployments
// with a real push/email channel swap in their own implementation.
type LogNotifier struct {
	Logger *zap.Logger
}

func (n *LogNotifier) SendReservationReminder(ctx context.Context, guestName, restaurantID, date string, start int) error {
	n.Logger.Info("reservation reminder",
		zap.String("guest", guestName),
		zap.String("restaurant_id", restaurantID),
		zap.String("date", date),
		zap.String("time", utils.FormatClock(start)),
	)
	return nil
}
