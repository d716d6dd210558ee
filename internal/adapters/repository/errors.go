package repository

import "errors"

// Sentinel kinds for cache errors.
var (
	ErrNotFound = errors.New("cache entry not found")
	ErrOpen     = errors.New("open response cache")
	ErrQuery    = errors.New("response cache query failed")
)
