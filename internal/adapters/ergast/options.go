package ergast

import "github.com/okian/paddock/pkg/logger"

// Option applies a configuration option to the Client.
type Option func(*Client)

// WithPageLimit sets the page size requested from the server. The server may
// cap it lower; paging follows whatever limit the server reports.
func WithPageLimit(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.pageLimit = n
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
