// Package cache provides the metadata cache used between runs.
//
// Resolving a workspace with cargo metadata is the slowest step of a run, so
// the resolved node list is cached on disk keyed by the manifest, the lock
// file, the feature selection and the cargo version. Any change to one of
// them produces a new key.
//
// # Implementations
//
//   - [FileCache]: JSON entries with expiry under a hashed directory layout
//   - [NullCache]: never stores anything (--no-cache)
//
// # Keys
//
// A [Keyer] derives cache keys; [DefaultKeyer] hashes its inputs with SHA-256.
package cache

import (
	"context"
	"time"
)

// DefaultTTL is how long resolved metadata stays valid.
const DefaultTTL = 24 * time.Hour

// Cache stores opaque byte payloads by key.
type Cache interface {
	// Get returns the value for key and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases resources held by the cache.
	Close() error
}
