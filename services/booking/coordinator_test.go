package booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogRepo "foodiespot/database/repository/catalog"
	ledgerRepo "foodiespot/database/repository/ledger"
	"foodiespot/models"
)

type recordingScheduler struct {
	mu        sync.Mutex
	scheduled []models.Reservation
	fail      error
}

func (s *recordingScheduler) ScheduleReminder(_ context.Context, res models.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		return s.fail
	}
	s.scheduled = append(s.scheduled, res)
	return nil
}

func newTestCoordinator(t *testing.T, restaurants ...models.Restaurant) (*DefaultCoordinator, *recordingScheduler) {
	t.Helper()
	catRepo := catalogRepo.NewMemoryCatalogRepo()
	require.NoError(t, catRepo.ReplaceAll(context.Background(), restaurants))

	settings := testSettings()
	ledger := &DefaultLedger{
		Repo:     ledgerRepo.NewMemoryLedgerRepo(),
		Catalog:  catRepo,
		Settings: settings,
	}
	engine := &DefaultAvailabilityEngine{Ledger: ledger, Settings: settings}
	scheduler := &recordingScheduler{}
	return NewCoordinator(catRepo, engine, ledger, scheduler, settings, nil), scheduler
}

func TestBookConfirmsAndSchedulesReminder(t *testing.T) {
	coordinator, scheduler := newTestCoordinator(t, dinnerRestaurant("rest_1", 10))

	res, err := coordinator.Book(context.Background(), models.BookingRequest{
		RestaurantID: "rest_1",
		Date:         testDate,
		Start:        19 * 60,
		PartySize:    4,
		Contact:      models.ContactInfo{Name: "Ada", Phone: "555-0100"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, res.ID)
	assert.Equal(t, models.ReservationConfirmed, res.Status)

	require.Len(t, scheduler.scheduled, 1)
	assert.Equal(t, res.ID, scheduler.scheduled[0].ID)
}

func TestBookSurvivesReminderFailure(t *testing.T) {
	coordinator, scheduler := newTestCoordinator(t, dinnerRestaurant("rest_1", 10))
	scheduler.fail = errors.New("redis down")

	res, err := coordinator.Book(context.Background(), models.BookingRequest{
		RestaurantID: "rest_1",
		Date:         testDate,
		Start:        19 * 60,
		PartySize:    2,
		Contact:      models.ContactInfo{Name: "Ada"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, res.ID)
}

func TestBookValidation(t *testing.T) {
	coordinator, _ := newTestCoordinator(t, dinnerRestaurant("rest_1", 10))
	ctx := context.Background()

	_, err := coordinator.Book(ctx, models.BookingRequest{
		RestaurantID: "rest_1",
		Date:         testDate,
		Start:        19 * 60,
		PartySize:    2,
	})
	var invalid InvalidRequestError
	assert.ErrorAs(t, err, &invalid, "missing contact name")

	_, err = coordinator.Book(ctx, models.BookingRequest{
		RestaurantID: "nowhere",
		Date:         testDate,
		Start:        19 * 60,
		PartySize:    2,
		Contact:      models.ContactInfo{Name: "Ada"},
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBookRejectsWhenSlotFull(t *testing.T) {
	coordinator, _ := newTestCoordinator(t, dinnerRestaurant("rest_1", 4))
	ctx := context.Background()

	req := models.BookingRequest{
		RestaurantID: "rest_1",
		Date:         testDate,
		Start:        19 * 60,
		PartySize:    3,
		Contact:      models.ContactInfo{Name: "Ada"},
	}
	_, err := coordinator.Book(ctx, req)
	require.NoError(t, err)

	req.Contact.Name = "Grace"
	_, err = coordinator.Book(ctx, req)
	var unavailable SlotUnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, 3, unavailable.Requested)
	assert.Equal(t, 1, unavailable.Remaining)
}

// Two parties race for the last seats of the same service. Exactly one wins.
func TestBookNeverOversells(t *testing.T) {
	coordinator, _ := newTestCoordinator(t, dinnerRestaurant("rest_1", 4))

	const attempts = 2
	results := make(chan error, attempts)
	var start sync.WaitGroup
	start.Add(1)
	for i := 0; i < attempts; i++ {
		name := []string{"Ada", "Grace"}[i]
		go func(name string) {
			start.Wait()
			_, err := coordinator.Book(context.Background(), models.BookingRequest{
				RestaurantID: "rest_1",
				Date:         testDate,
				Start:        19 * 60,
				PartySize:    3,
				Contact:      models.ContactInfo{Name: name},
			})
			results <- err
		}(name)
	}
	start.Done()

	var ok, unavailable int
	for i := 0; i < attempts; i++ {
		err := <-results
		switch {
		case err == nil:
			ok++
		default:
			var slotErr SlotUnavailableError
			require.ErrorAs(t, err, &slotErr)
			unavailable++
		}
	}
	assert.Equal(t, 1, ok, "exactly one booking must win")
	assert.Equal(t, 1, unavailable)
}

func TestBookTimesOutWhenLockHeld(t *testing.T) {
	coordinator, _ := newTestCoordinator(t, dinnerRestaurant("rest_1", 10))
	coordinator.Settings.LockWait = 20 * time.Millisecond

	// Hold the (restaurant, date) lock so the booking cannot enter its
	// critical section.
	release, err := coordinator.locks.acquire(context.Background(), "rest_1|"+testDate, time.Second)
	require.NoError(t, err)
	defer release()

	_, err = coordinator.Book(context.Background(), models.BookingRequest{
		RestaurantID: "rest_1",
		Date:         testDate,
		Start:        19 * 60,
		PartySize:    2,
		Contact:      models.ContactInfo{Name: "Ada"},
	})
	var conflict ConflictError
	require.ErrorAs(t, err, &conflict)
}

func TestBookDifferentDatesDoNotContend(t *testing.T) {
	coordinator, _ := newTestCoordinator(t, dinnerRestaurant("rest_1", 10))
	coordinator.Settings.LockWait = 20 * time.Millisecond

	release, err := coordinator.locks.acquire(context.Background(), "rest_1|"+testDate, time.Second)
	require.NoError(t, err)
	defer release()

	_, err = coordinator.Book(context.Background(), models.BookingRequest{
		RestaurantID: "rest_1",
		Date:         "2025-06-17",
		Start:        19 * 60,
		PartySize:    2,
		Contact:      models.ContactInfo{Name: "Ada"},
	})
	require.NoError(t, err)
}
