package models

import (
	"fmt"
	"strings"
	"time"
)

// PriceTier is an ordered price classification for a restaurant.
type PriceTier int

const (
	PriceLow    PriceTier = 1
	PriceMedium PriceTier = 2
	PriceHigh   PriceTier = 3
)

// ParsePriceTier maps the wire representation ("low", "medium", "high" or "1".."3")
// to a PriceTier. Returns false for anything else.
func ParsePriceTier(s string) (PriceTier, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low", "1":
		return PriceLow, true
	case "medium", "2":
		return PriceMedium, true
	case "high", "3":
		return PriceHigh, true
	}
	return 0, false
}

func (p PriceTier) String() string {
	switch p {
	case PriceLow:
		return "low"
	case PriceMedium:
		return "medium"
	case PriceHigh:
		return "high"
	}
	return fmt.Sprintf("unknown(%d)", int(p))
}

// DayHours is an operating window for a single day of week, in wall-clock
// minutes from midnight. A zero-value DayHours means closed that day.
type DayHours struct {
	Open  int `bson:"open" json:"open"`
	Close int `bson:"close" json:"close"`
}

// Closed reports whether no service is offered that day.
func (d DayHours) Closed() bool {
	return d.Open == 0 && d.Close == 0
}

// Restaurant is an immutable catalog record. Created at catalog load time;
// never edited in place.
type Restaurant struct {
	ID          string      `bson:"id" json:"id"`
	Name        string      `bson:"name" json:"name"`
	Cuisine     string      `bson:"cuisine" json:"cuisine"`
	Location    string      `bson:"location" json:"location"`
	PriceTier   PriceTier   `bson:"price_tier" json:"price_tier"`
	Capacity    int         `bson:"capacity" json:"capacity"` // guests seated simultaneously
	Rating      float64     `bson:"rating" json:"rating"`
	Description string      `bson:"description,omitempty" json:"description,omitempty"`
	Timezone    string      `bson:"timezone,omitempty" json:"timezone,omitempty"` // opaque, supplied by the storage collaborator
	Hours       [7]DayHours `bson:"hours" json:"hours"`                           // indexed by time.Weekday (Sunday = 0)
}

// HoursOn returns the operating window for the given weekday.
func (r *Restaurant) HoursOn(day time.Weekday) DayHours {
	return r.Hours[int(day)]
}

// Validate checks the invariants a catalog record must satisfy before it is
// served. Violations are configuration errors, not request errors.
func (r *Restaurant) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("restaurant has empty id")
	}
	if r.Capacity <= 0 {
		return fmt.Errorf("restaurant %s: capacity must be positive, got %d", r.ID, r.Capacity)
	}
	if r.PriceTier < PriceLow || r.PriceTier > PriceHigh {
		return fmt.Errorf("restaurant %s: invalid price tier %d", r.ID, r.PriceTier)
	}
	openDays := 0
	for day, h := range r.Hours {
		if h.Closed() {
			continue
		}
		openDays++
		if h.Open < 0 || h.Close > 24*60 || h.Open >= h.Close {
			return fmt.Errorf("restaurant %s: invalid hours [%d, %d] on %s", r.ID, h.Open, h.Close, time.Weekday(day))
		}
	}
	if openDays == 0 {
		return fmt.Errorf("restaurant %s: no operating hours configured", r.ID)
	}
	return nil
}
