// Package cache stores rendered drawings so identical requests are served
// without drawing again.
//
// A [Cache] maps string keys to bytes with a time-to-live. [FileCache]
// backs the CLI, [RedisCache] the HTTP server, and [NullCache] disables
// caching. Keys come from a [Keyer], which hashes the input document
// together with every option that affects the output.
package cache

import (
	"context"
	"time"
)

// Default lifetimes of cached entries.
const (
	TTLRender = 7 * 24 * time.Hour
	TTLGraph  = 7 * 24 * time.Hour
)

// Cache is a byte store with expiry. Get reports a miss with hit=false and
// a nil error; errors are reserved for storage failures.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Clearer is implemented by caches that can drop every entry at once.
type Clearer interface {
	Clear(ctx context.Context) (int, error)
}
