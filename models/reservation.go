package models

import "time"

// ReservationStatus is the lifecycle state of a reservation.
type ReservationStatus string

const (
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationCancelled ReservationStatus = "cancelled"
)

// ContactInfo identifies the guest who made a reservation.
type ContactInfo struct {
	Name  string `bson:"name" json:"name"`
	Email string `bson:"email,omitempty" json:"email,omitempty"`
	Phone string `bson:"phone,omitempty" json:"phone,omitempty"`
}

// Reservation is a ledger record. Created by the booking coordinator; the only
// permitted mutation is the confirmed -> cancelled status transition. Records
// are never deleted, they remain for audit history.
type Reservation struct {
	ID           string            `bson:"id" json:"id"`
	RestaurantID string            `bson:"restaurant_id" json:"restaurant_id"`
	Contact      ContactInfo       `bson:"contact" json:"contact"`
	Date         string            `bson:"date" json:"date"`   // "2006-01-02"
	Start        int               `bson:"start" json:"start"` // minutes from midnight
	PartySize    int               `bson:"party_size" json:"party_size"`
	Status       ReservationStatus `bson:"status" json:"status"`
	CreatedAt    time.Time         `bson:"created_at" json:"created_at"`
}

// Window returns the occupancy window [start, end) in minutes from midnight
// for the given reservation duration.
func (r *Reservation) Window(duration int) (int, int) {
	return r.Start, r.Start + duration
}

// Occupies reports whether this reservation consumes capacity at instant t
// (minutes from midnight) given the reservation duration.
func (r *Reservation) Occupies(t, duration int) bool {
	start, end := r.Window(duration)
	return start <= t && t < end
}
