// Package store defines the key-value surface items are persisted to.
// Backends live in subpackages and satisfy these interfaces structurally.
package store

import "context"

// KV is the persistence surface: one string value per key.
type KV interface {
	// Get returns the value stored at key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	// Set overwrites the value at key.
	Set(ctx context.Context, key, value string) error
}

// Backend is a KV that holds resources until closed.
type Backend interface {
	KV
	Close() error
}
