package kv

import (
	"context"
	"time"
)

// Store defines the key/value contract the application relies on.
// Single-key reads and writes are atomic; no multi-key transactions are
// required anywhere, which keeps implementations swappable (Redis, in-memory).
type Store interface {
	// Get reads a key and unmarshals it into dest.
	// Returns (false, nil) on a miss; dest is left untouched.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set marshals value and writes it under key. ttl == 0 means no expiry.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes keys. Missing keys are not an error.
	Delete(ctx context.Context, keys ...string) error

	// Exists reports whether key is present.
	Exists(ctx context.Context, key string) (bool, error)

	// Increment atomically increments the integer at key and returns the result.
	Increment(ctx context.Context, key string) (int64, error)

	// Expire sets a ttl on an existing key.
	Expire(ctx context.Context, key string, ttl time.Duration) error

	// Hash operations back the follower registry (field = member identity).
	HashSet(ctx context.Context, key, field string, value interface{}) error
	HashDelete(ctx context.Context, key string, fields ...string) error
	HashGet(ctx context.Context, key, field string, dest interface{}) (bool, error)
	HashGetAll(ctx context.Context, key string) (map[string]string, error)
	HashLen(ctx context.Context, key string) (int64, error)
	HashIncrement(ctx context.Context, key, field string) (int64, error)

	// Ping verifies the backing store is reachable.
	Ping(ctx context.Context) error
}
