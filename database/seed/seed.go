// File: database/seed/seed.go
package seed

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	catalogRepo "foodiespot/database/repository/catalog"
	"foodiespot/models"
)

var (
	cuisines   = []string{"Italian", "Japanese", "Indian", "Mexican", "Chinese", "Thai", "American", "French"}
	locations  = []string{"Downtown", "Uptown", "Midtown", "West Side", "East Side", "Waterfront"}
	adjectives = []string{"Tasty", "Delicious", "Amazing"}
	suffixes   = []string{"Bistro", "Restaurant", "Kitchen", "Table"}
)

// GenerateSampleRestaurants produces count plausible catalog records for
// demos and local development.
func GenerateSampleRestaurants(count int, rng *rand.Rand) []models.Restaurant {
	restaurants := make([]models.Restaurant, 0, count)
	for i := 0; i < count; i++ {
		cuisine := cuisines[rng.Intn(len(cuisines))]
		location := locations[rng.Intn(len(locations))]
		capacity := 20 + rng.Intn(81) // 20..100
		tier := models.PriceTier(1 + rng.Intn(3))
		rating := float64(30+rng.Intn(21)) / 10 // 3.0..5.0

		var name string
		if rng.Intn(2) == 0 {
			name = fmt.Sprintf("The %s %s", adjectives[rng.Intn(len(adjectives))], cuisine)
		} else {
			name = fmt.Sprintf("%s %s %s", location, cuisine, suffixes[rng.Intn(len(suffixes))])
		}

		weekday := models.DayHours{
			Open:  (10 + rng.Intn(3)) * 60, // 10:00..12:00
			Close: (20 + rng.Intn(3)) * 60, // 20:00..22:00
		}
		weekend := models.DayHours{
			Open:  (9 + rng.Intn(3)) * 60,  // 09:00..11:00
			Close: (21 + rng.Intn(3)) * 60, // 21:00..23:00
		}
		var hours [7]models.DayHours
		for day := time.Sunday; day <= time.Saturday; day++ {
			if day == time.Saturday || day == time.Sunday {
				hours[day] = weekend
			} else {
				hours[day] = weekday
			}
		}

		restaurants = append(restaurants, models.Restaurant{
			ID:          fmt.Sprintf("rest_%d", i+1),
			Name:        name,
			Cuisine:     cuisine,
			Location:    location,
			PriceTier:   tier,
			Capacity:    capacity,
			Rating:      rating,
			Description: fmt.Sprintf("%s offers authentic %s cuisine in %s. Seats %d guests.", name, cuisine, location, capacity),
			Hours:       hours,
		})
	}
	return restaurants
}

// EnsureSeeded fills an empty catalog with sample data. A non-empty catalog
// is left untouched.
func EnsureSeeded(ctx context.Context, repo catalogRepo.Repository, count int) (bool, error) {
	n, err := repo.Count(ctx)
	if err != nil {
		return false, fmt.Errorf("checking catalog size: %w", err)
	}
	if n > 0 {
		return false, nil
	}
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	if err := repo.ReplaceAll(ctx, GenerateSampleRestaurants(count, rng)); err != nil {
		return false, fmt.Errorf("seeding catalog: %w", err)
	}
	return true, nil
}
