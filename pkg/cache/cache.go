// Package cache provides the byte-level caches tilestack stores themes in.
//
// Three implementations share the [Cache] interface:
//
//   - [FileCache]: one JSON file per entry under a directory (CLI default)
//   - [RedisCache]: a shared Redis instance (server deployments)
//   - [NullCache]: caching disabled
//
// Values are opaque bytes; callers own the encoding. Keys are built with
// [ThemeKey] so every backend hashes the same way.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache stores opaque values under string keys with an optional TTL.
//
// Get reports a miss as (nil, false, nil); an error means the backend itself
// failed. A ttl of zero stores the value without expiry.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Clearer is implemented by caches that can drop all of their entries.
type Clearer interface {
	Clear(ctx context.Context) (int, error)
}

// ThemeKey returns the cache key for a stored theme id: "theme:" followed by
// the hex SHA-256 of the id.
func ThemeKey(id string) string {
	return "theme:" + Hash([]byte(id))
}

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
