package booking

import (
	"context"
	"sync"
	"time"
)

// lockTable hands out one mutex per key. book() scopes its critical section
// to a (restaurant, date) key: finer granularity is unsafe because
// overlapping occupancy windows at different start times share capacity.
type lockTable struct {
	mu    sync.Mutex
	locks map[string]chan struct{}
}

func newLockTable() *lockTable {
	return &lockTable{locks: make(map[string]chan struct{})}
}

func (lt *lockTable) get(key string) chan struct{} {
	lt.mu.Lock()
	defer lt.mu.Unlock()
	ch, ok := lt.locks[key]
	if !ok {
		ch = make(chan struct{}, 1)
		lt.locks[key] = ch
	}
	return ch
}

// acquire takes the lock for key, waiting at most wait. It returns a release
// func on success and ConflictError when the wait is exhausted, so no booking
// attempt blocks indefinitely.
func (lt *lockTable) acquire(ctx context.Context, key string, wait time.Duration) (func(), error) {
	ch := lt.get(key)
	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case ch <- struct{}{}:
		return func() { <-ch }, nil
	case <-timer.C:
		return nil, ConflictError{}
	case <-ctx.Done():
		return nil, ConflictError{}
	}
}
