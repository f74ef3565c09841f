package cache

import (
	"context"
	"sync"
	"time"
)

const runLockKey = "crawl:run_lock"

// locker is the slice of out.Cache the run lock needs.
type locker interface {
	Lock(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Unlock(ctx context.Context, key string) error
}

// RunLock serializes crawl runs across the scheduler and the manual trigger.
// The TTL is a safety net against a crashed holder; a normal run releases it
// on completion.
type RunLock struct {
	cache locker
	ttl   time.Duration
}

// NewRunLock creates a RunLock with the given holder TTL.
func NewRunLock(cache locker, ttl time.Duration) *RunLock {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &RunLock{cache: cache, ttl: ttl}
}

// NewLocalRunLock creates a RunLock backed by process memory, for running
// without Redis. It serializes the scheduler and the manual trigger within
// one process only.
func NewLocalRunLock(ttl time.Duration) *RunLock {
	return NewRunLock(&localLocker{}, ttl)
}

// Acquire takes the lock. false means another run is in progress.
func (l *RunLock) Acquire(ctx context.Context) (bool, error) {
	return l.cache.Lock(ctx, runLockKey, l.ttl)
}

// Release frees the lock.
func (l *RunLock) Release(ctx context.Context) error {
	return l.cache.Unlock(ctx, runLockKey)
}

type localLocker struct {
	mu   sync.Mutex
	held bool
}

func (l *localLocker) Lock(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.held {
		return false, nil
	}
	l.held = true
	return true, nil
}

func (l *localLocker) Unlock(ctx context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.held = false
	return nil
}
