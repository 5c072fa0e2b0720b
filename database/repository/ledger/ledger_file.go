// File: database/repository/ledger/ledger_file.go
package ledgerRepo

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"foodiespot/models"
)

// fileLedgerRepo keeps reservations in memory, optionally mirrored to a JSON
// file (reservations.json) on every mutation. With an empty path it is a pure
// in-memory store, which is what the tests use.
type fileLedgerRepo struct {
	mu           sync.RWMutex
	path         string
	reservations map[string]models.Reservation
}

// NewFileLedgerRepo constructs a Repository backed by a JSON file under
// dataDir. Existing records are loaded at construction.
func NewFileLedgerRepo(dataDir string) (Repository, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	repo := &fileLedgerRepo{
		path:         filepath.Join(dataDir, "reservations.json"),
		reservations: make(map[string]models.Reservation),
	}
	if err := repo.load(); err != nil {
		return nil, err
	}
	return repo, nil
}

// NewMemoryLedgerRepo constructs a Repository with no file persistence.
func NewMemoryLedgerRepo() Repository {
	return &fileLedgerRepo{reservations: make(map[string]models.Reservation)}
}

func (r *fileLedgerRepo) load() error {
	raw, err := os.ReadFile(r.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", r.path, err)
	}
	var reservations []models.Reservation
	if err := json.Unmarshal(raw, &reservations); err != nil {
		return fmt.Errorf("parse %s: %w", r.path, err)
	}
	for _, res := range reservations {
		r.reservations[res.ID] = res
	}
	return nil
}

func (r *fileLedgerRepo) save() error {
	if r.path == "" {
		return nil
	}
	reservations := make([]models.Reservation, 0, len(r.reservations))
	for _, res := range r.reservations {
		reservations = append(reservations, res)
	}
	sort.Slice(reservations, func(i, j int) bool {
		return reservations[i].CreatedAt.Before(reservations[j].CreatedAt)
	})
	raw, err := json.MarshalIndent(reservations, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(r.path, raw, 0o644)
}

func (r *fileLedgerRepo) Insert(ctx context.Context, res models.Reservation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.reservations[res.ID]; exists {
		return fmt.Errorf("reservation %s already exists", res.ID)
	}
	r.reservations[res.ID] = res
	return r.save()
}

func (r *fileLedgerRepo) GetByID(ctx context.Context, id string) (*models.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	res, ok := r.reservations[id]
	if !ok {
		return nil, nil
	}
	return &res, nil
}

func (r *fileLedgerRepo) UpdateStatus(ctx context.Context, id string, from, to models.ReservationStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res, ok := r.reservations[id]
	if !ok || res.Status != from {
		return false, nil
	}
	res.Status = to
	r.reservations[id] = res
	return true, r.save()
}

func (r *fileLedgerRepo) ListByRestaurantAndDate(ctx context.Context, restaurantID, date string) ([]models.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	reservations := make([]models.Reservation, 0)
	for _, res := range r.reservations {
		if res.RestaurantID == restaurantID && res.Date == date {
			reservations = append(reservations, res)
		}
	}
	sort.Slice(reservations, func(i, j int) bool {
		if reservations[i].Start != reservations[j].Start {
			return reservations[i].Start < reservations[j].Start
		}
		return reservations[i].ID < reservations[j].ID
	})
	return reservations, nil
}

func (r *fileLedgerRepo) ListByCustomer(ctx context.Context, name, email string) ([]models.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	reservations := make([]models.Reservation, 0)
	for _, res := range r.reservations {
		if !strings.EqualFold(res.Contact.Name, name) {
			continue
		}
		if email != "" && res.Contact.Email != email {
			continue
		}
		reservations = append(reservations, res)
	}
	sort.Slice(reservations, func(i, j int) bool {
		return reservations[i].CreatedAt.Before(reservations[j].CreatedAt)
	})
	return reservations, nil
}

func (r *fileLedgerRepo) ListAll(ctx context.Context) ([]models.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	reservations := make([]models.Reservation, 0, len(r.reservations))
	for _, res := range r.reservations {
		reservations = append(reservations, res)
	}
	sort.Slice(reservations, func(i, j int) bool {
		return reservations[i].CreatedAt.Before(reservations[j].CreatedAt)
	})
	return reservations, nil
}
