package booking

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestSettingsValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Settings)
		wantErr bool
	}{
		{"defaults pass", func(s *Settings) {}, false},
		{"zero granularity", func(s *Settings) { s.SlotGranularity = 0 }, true},
		{"negative duration", func(s *Settings) { s.ReservationDuration = -30 }, true},
		{"duration past a day", func(s *Settings) { s.ReservationDuration = 25 * 60 }, true},
		{"zero lock wait", func(s *Settings) { s.LockWait = 0 }, true},
		{"lunch service", func(s *Settings) { s.ReservationDuration = 60; s.SlotGranularity = 15 }, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := DefaultSettings()
			tc.mutate(&s)
			err := s.Validate()
			if tc.wantErr {
				var cfgErr InvalidConfigurationError
				if !errors.As(err, &cfgErr) {
					t.Fatalf("expected InvalidConfigurationError, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestLockTableSerializesPerKey(t *testing.T) {
	lt := newLockTable()
	ctx := context.Background()

	release, err := lt.acquire(ctx, "a", time.Second)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}

	if _, err := lt.acquire(ctx, "a", 10*time.Millisecond); err == nil {
		t.Fatal("second acquire on held key should time out")
	}
	if rel, err := lt.acquire(ctx, "b", 10*time.Millisecond); err != nil {
		t.Fatalf("different key should not contend: %v", err)
	} else {
		rel()
	}

	release()
	rel, err := lt.acquire(ctx, "a", 10*time.Millisecond)
	if err != nil {
		t.Fatalf("acquire after release: %v", err)
	}
	rel()
}
