package service

import "errors"

// ErrInvalidInput is returned before any network call when a required
// parameter is missing or malformed.
var ErrInvalidInput = errors.New("invalid input")
