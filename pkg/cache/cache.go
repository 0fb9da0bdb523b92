// Package cache provides storage backends for cached API responses.
//
// A [Store] persists raw response bodies by key together with the time they
// were written. It knows nothing about freshness: the TTL policy lives in
// package httputil, which decides whether an entry is fresh, expired, or
// still good enough as a fallback when the live call fails. Stores never
// delete entries on their own.
//
// # Backends
//
//   - [FileStore]: one file per key under a directory; the file modification
//     time is the write time. Survives process restarts. This is the default.
//   - [RedisStore]: a Redis hash per key, shared between processes and hosts.
//   - [MongoStore]: a MongoDB document per key.
//   - [NullStore]: stores nothing; every lookup is a miss.
//
// Use [Scoped] to give a component its own key space on a shared store.
package cache

import (
	"context"
	"time"
)

// Entry is a stored response body.
type Entry struct {
	Data     []byte
	StoredAt time.Time
}

// Age returns how long ago the entry was written, relative to now.
func (e *Entry) Age(now time.Time) time.Duration {
	return now.Sub(e.StoredAt)
}

// Store is the interface implemented by cache backends.
type Store interface {
	// Get returns the entry stored under key.
	// Returns nil, nil if no entry exists.
	Get(ctx context.Context, key string) (*Entry, error)

	// Set stores data under key, replacing any previous entry and
	// resetting its write time.
	Set(ctx context.Context, key string, data []byte) error

	// Delete removes the entry under key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the store.
	Close() error
}
