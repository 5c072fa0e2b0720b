package catalog

import (
	"context"
	"errors"
	"testing"

	catalogRepo "foodiespot/database/repository/catalog"
	"foodiespot/models"
)

func openAllWeek(open, close int) [7]models.DayHours {
	var hours [7]models.DayHours
	for day := range hours {
		hours[day] = models.DayHours{Open: open, Close: close}
	}
	return hours
}

func fixtureRestaurants() []models.Restaurant {
	return []models.Restaurant{
		{ID: "rest_1", Name: "Spice Garden", Cuisine: "Indian", Location: "Downtown", PriceTier: models.PriceMedium, Capacity: 60, Rating: 4.4, Hours: openAllWeek(11*60, 22*60)},
		{ID: "rest_2", Name: "Golden Dragon", Cuisine: "Chinese", Location: "Midtown", PriceTier: models.PriceLow, Capacity: 40, Rating: 4.0, Hours: openAllWeek(11*60, 22*60)},
		{ID: "rest_3", Name: "Casa Blanca", Cuisine: "Mexican", Location: "Downtown", PriceTier: models.PriceHigh, Capacity: 30, Rating: 4.8, Hours: openAllWeek(17*60, 23*60)},
		{ID: "rest_4", Name: "Tandoori House", Cuisine: "Indian", Location: "Riverside", PriceTier: models.PriceLow, Capacity: 80, Rating: 3.9, Hours: openAllWeek(11*60, 22*60)},
	}
}

func newTestService(t *testing.T) *DefaultCatalogService {
	t.Helper()
	repo := catalogRepo.NewMemoryCatalogRepo()
	if err := repo.ReplaceAll(context.Background(), fixtureRestaurants()); err != nil {
		t.Fatalf("seeding catalog: %v", err)
	}
	return &DefaultCatalogService{Repo: repo}
}

func ids(restaurants []models.Restaurant) []string {
	out := make([]string, len(restaurants))
	for i, r := range restaurants {
		out[i] = r.ID
	}
	return out
}

func TestSearchFilters(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	cases := []struct {
		name    string
		filters models.SearchFilters
		want    []string
	}{
		{"no filters returns all", models.SearchFilters{}, []string{"rest_1", "rest_2", "rest_3", "rest_4"}},
		{"by cuisine", models.SearchFilters{Cuisine: "Indian"}, []string{"rest_1", "rest_4"}},
		{"cuisine is case-insensitive", models.SearchFilters{Cuisine: "inDiAn"}, []string{"rest_1", "rest_4"}},
		{"cuisine substring", models.SearchFilters{Cuisine: "ind"}, []string{"rest_1", "rest_4"}},
		{"by location", models.SearchFilters{Location: "downtown"}, []string{"rest_1", "rest_3"}},
		{"filters are conjunctive", models.SearchFilters{Cuisine: "Indian", Location: "Downtown"}, []string{"rest_1"}},
		{"max price tier", models.SearchFilters{MaxPriceTier: models.PriceLow}, []string{"rest_2", "rest_4"}},
		{"min capacity", models.SearchFilters{MinCapacity: 50}, []string{"rest_1", "rest_4"}},
		{"all filters together", models.SearchFilters{Cuisine: "Indian", Location: "Riverside", MaxPriceTier: models.PriceLow, MinCapacity: 50}, []string{"rest_4"}},
		{"no match is empty, not an error", models.SearchFilters{Cuisine: "Ethiopian"}, []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := svc.Search(ctx, tc.filters)
			if err != nil {
				t.Fatalf("Search: %v", err)
			}
			gotIDs := ids(got)
			if len(gotIDs) != len(tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, gotIDs)
			}
			for i := range tc.want {
				if gotIDs[i] != tc.want[i] {
					t.Fatalf("expected %v, got %v", tc.want, gotIDs)
				}
			}
		})
	}
}

func TestSearchIsDeterministic(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	first, err := svc.Search(ctx, models.SearchFilters{Location: "Downtown"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := svc.Search(ctx, models.SearchFilters{Location: "Downtown"})
		if err != nil {
			t.Fatalf("Search: %v", err)
		}
		if len(again) != len(first) {
			t.Fatalf("run %d: result size changed", i)
		}
		for j := range first {
			if again[j].ID != first[j].ID {
				t.Fatalf("run %d: order changed at %d", i, j)
			}
		}
	}
}

func TestGetRestaurant(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	got, err := svc.GetRestaurant(ctx, "rest_3")
	if err != nil {
		t.Fatalf("GetRestaurant: %v", err)
	}
	if got.Name != "Casa Blanca" {
		t.Fatalf("unexpected record: %+v", got)
	}

	if _, err := svc.GetRestaurant(ctx, "rest_999"); !errors.Is(err, ErrRestaurantNotFound) {
		t.Fatalf("expected ErrRestaurantNotFound, got %v", err)
	}
}

func TestValidateRestaurants(t *testing.T) {
	good := fixtureRestaurants()
	if err := ValidateRestaurants(good); err != nil {
		t.Fatalf("fixture should validate: %v", err)
	}

	t.Run("duplicate id", func(t *testing.T) {
		dup := append(fixtureRestaurants(), fixtureRestaurants()[0])
		if err := ValidateRestaurants(dup); err == nil {
			t.Fatal("expected duplicate id error")
		}
	})

	t.Run("inverted hours", func(t *testing.T) {
		bad := fixtureRestaurants()
		bad[0].Hours[1] = models.DayHours{Open: 22 * 60, Close: 11 * 60}
		if err := ValidateRestaurants(bad); err == nil {
			t.Fatal("expected hours error")
		}
	})

	t.Run("zero capacity", func(t *testing.T) {
		bad := fixtureRestaurants()
		bad[0].Capacity = 0
		if err := ValidateRestaurants(bad); err == nil {
			t.Fatal("expected capacity error")
		}
	})
}
