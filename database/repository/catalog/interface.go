// File: database/repository/catalog/interface.go
package catalogRepo

import (
	"context"

	"foodiespot/models"
)

// Repository is the injected storage collaborator for restaurant records.
// The catalog service is agnostic to whether it is backed by MongoDB, a JSON
// file, or memory.
type Repository interface {
	// GetAll returns every restaurant, ordered by id.
	GetAll(ctx context.Context) ([]models.Restaurant, error)
	// GetByID returns nil (and no error) when the restaurant does not exist.
	GetByID(ctx context.Context, id string) (*models.Restaurant, error)
	// ReplaceAll overwrites the whole catalog. Used by seeding only; the
	// catalog is read-only at request time.
	ReplaceAll(ctx context.Context, restaurants []models.Restaurant) error
	// Count reports the catalog size.
	Count(ctx context.Context) (int64, error)
}
