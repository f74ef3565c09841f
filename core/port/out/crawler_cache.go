package out

import (
	"context"
	"time"
)

// Cache defines the outbound port for caching.
type Cache interface {
	// Basic operations
	GetString(ctx context.Context, key string) (string, error)
	SetString(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)

	// Set operations
	SAdd(ctx context.Context, key string, members ...string) error
	SMembers(ctx context.Context, key string) ([]string, error)
	Expire(ctx context.Context, key string, ttl time.Duration) error

	// Lock
	Lock(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Unlock(ctx context.Context, key string) error
}

// SnapshotWriter persists a point-in-time copy of the standardized dataset
// before it is written to the store.
type SnapshotWriter interface {
	Write(ctx context.Context, runID string, data any) (string, error)
}
