package config

import (
	"errors"
)

// Config failures. ErrLoadConfig wraps an unreadable file or env layer;
// ErrInvalidConfig reports a setting that fails Validate.
var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrLoadConfig    = errors.New("load config failed")
)
