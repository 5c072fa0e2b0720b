// File: database/repository/catalog/catalog_file.go
package catalogRepo

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"foodiespot/models"
)

// fileCatalogRepo keeps the catalog in memory, optionally mirrored to a JSON
// file (restaurants.json). With an empty path it is a pure in-memory store.
type fileCatalogRepo struct {
	mu          sync.RWMutex
	path        string
	restaurants map[string]models.Restaurant
}

// NewFileCatalogRepo constructs a Repository backed by a JSON file under
// dataDir. The file is created on first write if missing.
func NewFileCatalogRepo(dataDir string) (Repository, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	repo := &fileCatalogRepo{
		path:        filepath.Join(dataDir, "restaurants.json"),
		restaurants: make(map[string]models.Restaurant),
	}
	if err := repo.load(); err != nil {
		return nil, err
	}
	return repo, nil
}

// NewMemoryCatalogRepo constructs a Repository with no file persistence.
func NewMemoryCatalogRepo() Repository {
	return &fileCatalogRepo{restaurants: make(map[string]models.Restaurant)}
}

func (r *fileCatalogRepo) load() error {
	raw, err := os.ReadFile(r.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", r.path, err)
	}
	var restaurants []models.Restaurant
	if err := json.Unmarshal(raw, &restaurants); err != nil {
		return fmt.Errorf("parse %s: %w", r.path, err)
	}
	for _, restaurant := range restaurants {
		r.restaurants[restaurant.ID] = restaurant
	}
	return nil
}

func (r *fileCatalogRepo) save() error {
	if r.path == "" {
		return nil
	}
	restaurants := r.sorted()
	raw, err := json.MarshalIndent(restaurants, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(r.path, raw, 0o644)
}

func (r *fileCatalogRepo) sorted() []models.Restaurant {
	restaurants := make([]models.Restaurant, 0, len(r.restaurants))
	for _, restaurant := range r.restaurants {
		restaurants = append(restaurants, restaurant)
	}
	sort.Slice(restaurants, func(i, j int) bool { return restaurants[i].ID < restaurants[j].ID })
	return restaurants
}

func (r *fileCatalogRepo) GetAll(ctx context.Context) ([]models.Restaurant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sorted(), nil
}

func (r *fileCatalogRepo) GetByID(ctx context.Context, id string) (*models.Restaurant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	restaurant, ok := r.restaurants[id]
	if !ok {
		return nil, nil
	}
	return &restaurant, nil
}

func (r *fileCatalogRepo) ReplaceAll(ctx context.Context, restaurants []models.Restaurant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.restaurants = make(map[string]models.Restaurant, len(restaurants))
	for _, restaurant := range restaurants {
		r.restaurants[restaurant.ID] = restaurant
	}
	return r.save()
}

func (r *fileCatalogRepo) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.restaurants)), nil
}
