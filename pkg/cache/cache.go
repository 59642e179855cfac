// Package cache stores computed layouts so repeated requests skip placement.
//
// Three backends implement [Cache]:
//   - [FileCache]: JSON entries under a local directory, used by the CLI
//   - [RedisCache]: a shared Redis instance, used when a redis_url is configured
//   - [NullCache]: stores nothing, used with --no-cache and in tests
//
// Keys are produced by a [Keyer] so that callers never hand-build them.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the stored value and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A zero ttl means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
