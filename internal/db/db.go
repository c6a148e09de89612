// Package db defines the storage contract the repositories are written
// against. The only implementation is the rueidis-backed store in db/redis.
package db

import (
	"context"
	"time"
)

// Store is the main database facade.
type Store interface {
	Pinger
	KVStore
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// KVStore provides key-value operations over JSON-encoded records.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	// GetMulti fetches multiple keys in one round-trip. Missing keys yield a
	// nil entry at the matching position.
	GetMulti(ctx context.Context, keys []string) ([][]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}
