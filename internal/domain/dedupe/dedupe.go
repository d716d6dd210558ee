// Package dedupe tracks keys already seen within one run.
//
// The schedule uses it to keep session keys unique and the career fold uses it
// to count each championship season once.
package dedupe

import (
	"context"
)

// Deduper records seen keys.
type Deduper interface {
	// SeenAndRecord checks if key was seen and records it if not.
	// Returns true if key was already seen, false if it was newly recorded.
	SeenAndRecord(ctx context.Context, key string) bool

	Size() int64
}

// inMemoryDeduper implements Deduper with a plain map. Runs are single-threaded
// and short-lived, so there is no locking and no eviction.
type inMemoryDeduper struct {
	seen map[string]struct{}
	hint int
}

// NewInMemoryDeduper creates a new in-memory deduper with configuration options.
func NewInMemoryDeduper(opts ...Option) Deduper {
	d := &inMemoryDeduper{}

	for _, opt := range opts {
		opt(d)
	}

	d.seen = make(map[string]struct{}, d.hint)
	return d
}

// SeenAndRecord reports whether key was already recorded, recording it if not.
func (d *inMemoryDeduper) SeenAndRecord(_ context.Context, key string) bool {
	if _, exists := d.seen[key]; exists {
		return true
	}
	d.seen[key] = struct{}{}
	return false
}

// Size returns the current number of entries in the deduper.
func (d *inMemoryDeduper) Size() int64 {
	return int64(len(d.seen))
}
