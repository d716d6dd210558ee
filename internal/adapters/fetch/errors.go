package fetch

import "errors"

// Sentinel kinds for upstream failures.
var (
	ErrTransport = errors.New("upstream request failed")
	ErrStatus    = errors.New("upstream returned non-2xx status")
	ErrDecode    = errors.New("upstream response could not be decoded")
)
