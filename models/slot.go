package models

// AvailableSlot is a derived view of a bookable time: how many more guests can
// be seated at that restaurant/date/time without exceeding capacity. Computed
// on demand, never stored.
type AvailableSlot struct {
	Date      string `json:"date"`
	Start     int    `json:"start"`     // minutes from midnight
	Remaining int    `json:"remaining"` // capacity left at this instant
}

// Availability is the answer to a single "table for N at time T" question.
type Availability struct {
	Available bool `json:"available"`
	Remaining int  `json:"remaining"`
}

// SearchFilters narrows a catalog search. Unset fields impose no constraint;
// provided fields must all match.
type SearchFilters struct {
	Cuisine      string    `json:"cuisine,omitempty"`
	Location     string    `json:"location,omitempty"`
	MaxPriceTier PriceTier `json:"max_price_tier,omitempty"`
	MinCapacity  int       `json:"min_capacity,omitempty"`
}

// BookingRequest is the structured input to the booking coordinator.
type BookingRequest struct {
	RestaurantID string      `json:"restaurant_id"`
	Date         string      `json:"date"` // "2006-01-02"
	Start        int         `json:"start"`
	PartySize    int         `json:"party_size"`
	Contact      ContactInfo `json:"contact"`
}
