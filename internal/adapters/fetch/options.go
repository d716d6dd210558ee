package fetch

import (
	"net/http"
	"time"

	"github.com/okian/paddock/internal/adapters/repository"
	"github.com/okian/paddock/pkg/logger"
)

// Option applies a configuration option to the Client.
type Option func(*Client)

// WithTimeout bounds each request. It sets the timeout on a copy, so an
// http.Client passed through WithHTTPClient is never modified.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			hc := *c.http
			hc.Timeout = timeout
			c.http = &hc
		}
	}
}

// WithHTTPClient replaces the underlying http.Client; primarily used for testing.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithCache serves and stores successful responses through store.
func WithCache(store repository.Store) Option {
	return func(c *Client) {
		c.cache = store
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}
