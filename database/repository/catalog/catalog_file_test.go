// File: database/repository/catalog/catalog_file_test.go
package catalogRepo

import (
	"context"
	"testing"

	"foodiespot/models"
)

func sampleCatalog() []models.Restaurant {
	var hours [7]models.DayHours
	for day := range hours {
		hours[day] = models.DayHours{Open: 11 * 60, Close: 22 * 60}
	}
	return []models.Restaurant{
		{ID: "rest_2", Name: "Golden Dragon", Cuisine: "Chinese", Location: "Midtown", PriceTier: models.PriceLow, Capacity: 40, Hours: hours},
		{ID: "rest_1", Name: "Spice Garden", Cuisine: "Indian", Location: "Downtown", PriceTier: models.PriceMedium, Capacity: 60, Hours: hours},
	}
}

func TestFileCatalogPersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	repo, err := NewFileCatalogRepo(dir)
	if err != nil {
		t.Fatalf("NewFileCatalogRepo: %v", err)
	}
	if n, err := repo.Count(ctx); err != nil || n != 0 {
		t.Fatalf("fresh repo should be empty, got %d (%v)", n, err)
	}
	if err := repo.ReplaceAll(ctx, sampleCatalog()); err != nil {
		t.Fatalf("ReplaceAll: %v", err)
	}

	reopened, err := NewFileCatalogRepo(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	all, err := reopened.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 restaurants, got %d", len(all))
	}
	// GetAll is sorted by id regardless of input order.
	if all[0].ID != "rest_1" || all[1].ID != "rest_2" {
		t.Fatalf("unexpected order: %s, %s", all[0].ID, all[1].ID)
	}
	if all[0].Hours[3].Open != 11*60 {
		t.Fatalf("operating hours did not round trip: %+v", all[0].Hours)
	}
}

func TestFileCatalogGetByID(t *testing.T) {
	repo := NewMemoryCatalogRepo()
	ctx := context.Background()
	if err := repo.ReplaceAll(ctx, sampleCatalog()); err != nil {
		t.Fatalf("ReplaceAll: %v", err)
	}

	restaurant, err := repo.GetByID(ctx, "rest_2")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if restaurant == nil || restaurant.Name != "Golden Dragon" {
		t.Fatalf("unexpected record: %+v", restaurant)
	}

	missing, err := repo.GetByID(ctx, "rest_999")
	if err != nil {
		t.Fatalf("GetByID missing: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for missing id, got %+v", missing)
	}
}
