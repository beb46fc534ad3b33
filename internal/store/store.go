// Package store provides a key-value cache abstraction with in-memory and
// Redis backends. Single-node deployments use the memory store; setting
// REDIS_DSN switches to Redis so multiple instances share one cache.
package store

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a key is not found in the store.
var ErrNotFound = errors.New("store: key not found")

// Store is the interface for the key-value cache.
type Store interface {
	// Set stores a key-value pair, with an optional TTL. ttl <= 0 means no expiry.
	Set(key string, value []byte, ttl time.Duration) error

	// Get retrieves a value by key. Returns ErrNotFound if the key is missing or expired.
	Get(key string) ([]byte, error)

	// Delete removes keys. Deleting a missing key is not an error.
	Delete(keys ...string) error

	// Exists reports whether a key exists.
	Exists(key string) (bool, error)

	// Close releases any resources held by the store.
	Close() error
}
