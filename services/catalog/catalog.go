package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	catalogRepo "foodiespot/database/repository/catalog"
	"foodiespot/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// ErrRestaurantNotFound reports an unknown restaurant id.
var ErrRestaurantNotFound = errors.New("restaurant not found")

// Service answers read-only catalog queries. The catalog is immutable at
// request time, so results may be cached freely.
type Service interface {
	// Search returns restaurants matching every provided filter, ordered by
	// id. An empty result is not an error.
	Search(ctx context.Context, filters models.SearchFilters) ([]models.Restaurant, error)
	// GetRestaurant returns a single record by id.
	GetRestaurant(ctx context.Context, id string) (models.Restaurant, error)
}

// DefaultCatalogService is the production implementation. CacheClient may be
// nil, which disables caching entirely (tests run without redis).
type DefaultCatalogService struct {
	Repo        catalogRepo.Repository
	CacheClient *redis.Client
	CacheTTL    time.Duration
	Logger      *zap.Logger
}

func (s *DefaultCatalogService) Search(ctx context.Context, filters models.SearchFilters) ([]models.Restaurant, error) {
	cacheKey := searchCacheKey(filters)
	if cached, ok := s.fromCache(ctx, cacheKey); ok {
		return cached, nil
	}

	restaurants, err := s.Repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}

	matched := make([]models.Restaurant, 0)
	for _, restaurant := range restaurants {
		if matchesFilters(&restaurant, filters) {
			matched = append(matched, restaurant)
		}
	}
	// Deterministic order regardless of backend: sorted by id.
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	s.toCache(ctx, cacheKey, matched)
	return matched, nil
}

func (s *DefaultCatalogService) GetRestaurant(ctx context.Context, id string) (models.Restaurant, error) {
	restaurant, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return models.Restaurant{}, fmt.Errorf("loading restaurant %s: %w", id, err)
	}
	if restaurant == nil {
		return models.Restaurant{}, fmt.Errorf("restaurant %s: %w", id, ErrRestaurantNotFound)
	}
	return *restaurant, nil
}

// matchesFilters applies conjunctive matching: every provided filter must
// hold. Text filters are case-insensitive substring matches.
func matchesFilters(r *models.Restaurant, f models.SearchFilters) bool {
	if f.Cuisine != "" && !containsFold(r.Cuisine, f.Cuisine) {
		return false
	}
	if f.Location != "" && !containsFold(r.Location, f.Location) {
		return false
	}
	if f.MaxPriceTier != 0 && r.PriceTier > f.MaxPriceTier {
		return false
	}
	if f.MinCapacity != 0 && r.Capacity < f.MinCapacity {
		return false
	}
	return true
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(strings.TrimSpace(needle)))
}

func searchCacheKey(f models.SearchFilters) string {
	return fmt.Sprintf("catalog:search:%s|%s|%d|%d",
		strings.ToLower(f.Cuisine), strings.ToLower(f.Location), f.MaxPriceTier, f.MinCapacity)
}

func (s *DefaultCatalogService) fromCache(ctx context.Context, key string) ([]models.Restaurant, bool) {
	if s.CacheClient == nil {
		return nil, false
	}
	raw, err := s.CacheClient.Get(ctx, key).Result()
	if err != nil {
		return nil, false
	}
	var restaurants []models.Restaurant
	if err := json.Unmarshal([]byte(raw), &restaurants); err != nil {
		return nil, false
	}
	return restaurants, true
}

func (s *DefaultCatalogService) toCache(ctx context.Context, key string, restaurants []models.Restaurant) {
	if s.CacheClient == nil {
		return
	}
	raw, err := json.Marshal(restaurants)
	if err != nil {
		return
	}
	ttl := s.CacheTTL
	if ttl <= 0 {
		ttl = time.Minute
	}
	if err := s.CacheClient.Set(ctx, key, raw, ttl).Err(); err != nil && s.Logger != nil {
		s.Logger.Warn("failed to cache catalog search", zap.String("key", key), zap.Error(err))
	}
}

// ValidateRestaurants checks every catalog record at startup so a broken
// schedule fails fast instead of serving bad availability.
func ValidateRestaurants(restaurants []models.Restaurant) error {
	seen := make(map[string]bool, len(restaurants))
	for i := range restaurants {
		if err := restaurants[i].Validate(); err != nil {
			return err
		}
		if seen[restaurants[i].ID] {
			return fmt.Errorf("duplicate restaurant id %s", restaurants[i].ID)
		}
		seen[restaurants[i].ID] = true
	}
	return nil
}
