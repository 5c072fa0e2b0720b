package booking

import (
	"context"
	"errors"
	"testing"

	catalogRepo "foodiespot/database/repository/catalog"
	ledgerRepo "foodiespot/database/repository/ledger"
	"foodiespot/models"
)

// 2025-06-16 is a Monday, 2025-06-15 a Sunday.
const (
	testDate   = "2025-06-16"
	testSunday = "2025-06-15"
)

func testSettings() Settings {
	s := DefaultSettings()
	return s
}

// dinnerRestaurant is open 18:00-22:00 every day except Sunday.
func dinnerRestaurant(id string, capacity int) models.Restaurant {
	var hours [7]models.DayHours
	for day := 1; day < 7; day++ {
		hours[day] = models.DayHours{Open: 18 * 60, Close: 22 * 60}
	}
	return models.Restaurant{
		ID:        id,
		Name:      "Test Trattoria",
		Cuisine:   "Italian",
		Location:  "Downtown",
		PriceTier: models.PriceMedium,
		Capacity:  capacity,
		Rating:    4.2,
		Hours:     hours,
	}
}

func newTestEngine(t *testing.T, restaurants ...models.Restaurant) (*DefaultAvailabilityEngine, *DefaultLedger) {
	t.Helper()
	catRepo := catalogRepo.NewMemoryCatalogRepo()
	if err := catRepo.ReplaceAll(context.Background(), restaurants); err != nil {
		t.Fatalf("seeding catalog: %v", err)
	}
	ledger := &DefaultLedger{
		Repo:     ledgerRepo.NewMemoryLedgerRepo(),
		Catalog:  catRepo,
		Settings: testSettings(),
	}
	engine := &DefaultAvailabilityEngine{Ledger: ledger, Settings: testSettings()}
	return engine, ledger
}

func TestListSlotsCompleteness(t *testing.T) {
	restaurant := dinnerRestaurant("rest_1", 40)
	engine, _ := newTestEngine(t, restaurant)

	slots, err := engine.ListSlots(context.Background(), &restaurant, testDate, 1)
	if err != nil {
		t.Fatalf("ListSlots: %v", err)
	}

	// 90 minute seatings on a 30 minute grid: 20:30 is the last start whose
	// window ends exactly at the 22:00 close; 21:00 must not appear.
	want := []int{1080, 1110, 1140, 1170, 1200, 1230} // 18:00 .. 20:30
	if len(slots) != len(want) {
		t.Fatalf("expected %d slots, got %d", len(want), len(slots))
	}
	for i, slot := range slots {
		if slot.Start != want[i] {
			t.Errorf("slot %d: expected start %d, got %d", i, want[i], slot.Start)
		}
		if slot.Remaining != restaurant.Capacity {
			t.Errorf("slot %d: expected remaining %d, got %d", i, restaurant.Capacity, slot.Remaining)
		}
		if slot.Date != testDate {
			t.Errorf("slot %d: unexpected date %s", i, slot.Date)
		}
	}
}

func TestListSlotsSkipsFullSlots(t *testing.T) {
	restaurant := dinnerRestaurant("rest_1", 4)
	engine, ledger := newTestEngine(t, restaurant)

	// Fill 19:00 completely; its window covers 19:00-20:30.
	if _, err := ledger.Add(context.Background(), models.Reservation{
		RestaurantID: restaurant.ID,
		Contact:      models.ContactInfo{Name: "Ada"},
		Date:         testDate,
		Start:        19 * 60,
		PartySize:    4,
	}); err != nil {
		t.Fatalf("Add: %v", err)
	}

	slots, err := engine.ListSlots(context.Background(), &restaurant, testDate, 1)
	if err != nil {
		t.Fatalf("ListSlots: %v", err)
	}
	for _, slot := range slots {
		if slot.Start >= 19*60 && slot.Start < 19*60+90 {
			t.Errorf("slot at %d should be full and omitted", slot.Start)
		}
	}
	// A 90 minute seating starting at 18:00 overlaps the 19:00 party too.
	for _, slot := range slots {
		if slot.Start == 18*60 {
			t.Errorf("slot at 18:00 overlaps the full 19:00 window and should be omitted")
		}
	}
}

func TestCheckCountsOverlappingWindows(t *testing.T) {
	restaurant := dinnerRestaurant("rest_1", 10)
	engine, ledger := newTestEngine(t, restaurant)
	ctx := context.Background()

	if _, err := ledger.Add(ctx, models.Reservation{
		RestaurantID: restaurant.ID,
		Contact:      models.ContactInfo{Name: "Grace"},
		Date:         testDate,
		Start:        18 * 60, // occupies 18:00-19:30
		PartySize:    6,
	}); err != nil {
		t.Fatalf("Add: %v", err)
	}

	cases := []struct {
		name          string
		start         int
		wantRemaining int
	}{
		{"at reservation start", 18 * 60, 4},
		{"inside window", 19 * 60, 4},
		{"window end is exclusive", 19*60 + 30, 10},
		{"later in the evening", 20 * 60, 10},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			avail, err := engine.Check(ctx, &restaurant, testDate, tc.start, 2)
			if err != nil {
				t.Fatalf("Check: %v", err)
			}
			if avail.Remaining != tc.wantRemaining {
				t.Fatalf("expected remaining %d, got %d", tc.wantRemaining, avail.Remaining)
			}
		})
	}
}

func TestCheckRejectsInvalidRequests(t *testing.T) {
	restaurant := dinnerRestaurant("rest_1", 10)
	engine, _ := newTestEngine(t, restaurant)
	ctx := context.Background()

	cases := []struct {
		name      string
		date      string
		start     int
		partySize int
	}{
		{"zero party", testDate, 18 * 60, 0},
		{"negative party", testDate, 18 * 60, -1},
		{"party beyond capacity", testDate, 18 * 60, 11},
		{"before opening", testDate, 17 * 60, 2},
		{"window past closing", testDate, 21 * 60, 2},
		{"off the booking grid", testDate, 18*60 + 15, 2},
		{"closed day", testSunday, 18 * 60, 2},
		{"garbage date", "june 16th", 18 * 60, 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := engine.Check(ctx, &restaurant, tc.date, tc.start, tc.partySize)
			if err == nil {
				t.Fatal("expected error")
			}
			var invalid InvalidRequestError
			if !errors.As(err, &invalid) {
				t.Fatalf("expected InvalidRequestError, got %T: %v", err, err)
			}
		})
	}
}

func TestLastSlotBoundary(t *testing.T) {
	restaurant := dinnerRestaurant("rest_1", 10)
	engine, _ := newTestEngine(t, restaurant)
	ctx := context.Background()

	// 20:30 + 90min = 22:00 exactly: last valid start.
	if _, err := engine.Check(ctx, &restaurant, testDate, 20*60+30, 2); err != nil {
		t.Fatalf("20:30 should be bookable: %v", err)
	}
	if _, err := engine.Check(ctx, &restaurant, testDate, 21*60, 2); err == nil {
		t.Fatal("21:00 runs past closing and should be rejected")
	}
}

func TestSuggestAlternativesOrdering(t *testing.T) {
	restaurant := dinnerRestaurant("rest_1", 10)
	engine, _ := newTestEngine(t, restaurant)

	slots, err := engine.SuggestAlternatives(context.Background(), &restaurant, testDate, 19*60+30, 2, 3)
	if err != nil {
		t.Fatalf("SuggestAlternatives: %v", err)
	}
	if len(slots) != 3 {
		t.Fatalf("expected 3 suggestions, got %d", len(slots))
	}
	if slots[0].Start != 19*60+30 {
		t.Fatalf("preferred time should come first, got %d", slots[0].Start)
	}
	// Ties break toward the earlier slot.
	if slots[1].Start != 19*60 {
		t.Fatalf("expected 19:00 second, got %d", slots[1].Start)
	}
}
