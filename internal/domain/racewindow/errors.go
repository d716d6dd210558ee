package racewindow

import "errors"

// Sentinel kinds for resolution failures; each failed precondition has its own.
var (
	ErrStartNotFound    = errors.New("could not determine race start time from race control messages")
	ErrEndNotFound      = errors.New("could not determine race end time from race control messages")
	ErrInvalidTimestamp = errors.New("invalid race control timestamp")
	ErrEndNotAfterStart = errors.New("race control end time is not after start time")
)
