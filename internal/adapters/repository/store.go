// Package repository defines the response cache interface and errors.
package repository

import "context"

// Entry is one cached upstream response.
type Entry struct {
	Key        string
	StatusCode int
	Body       []byte
}

// Store provides read/write access to cached upstream responses.
// Keys are canonical request URLs; there is no eviction.
type Store interface {
	// Get returns the cached entry for key.
	// Returns ErrNotFound if nothing is cached under key.
	Get(ctx context.Context, key string) (Entry, error)

	// Put stores or replaces the entry under e.Key.
	Put(ctx context.Context, e Entry) error

	// Count returns the number of cached responses.
	Count(ctx context.Context) (int, error)

	Close() error
}
