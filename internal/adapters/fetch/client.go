// Package fetch issues GET requests against the upstream JSON APIs.
//
// One Client is built per invocation and shared by the API adapters. Requests
// are sequential, never retried, and optionally served from a response cache.
package fetch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/okian/paddock/internal/adapters/repository"
	"github.com/okian/paddock/pkg/logger"
	"github.com/okian/paddock/pkg/metrics"
)

const defaultTimeout = 25 * time.Second

// Request describes one upstream GET.
type Request struct {
	API      string     // metric label, e.g. "openf1"
	Endpoint string     // metric label, e.g. "race_control"
	BaseURL  string     // API root
	Path     string     // appended to BaseURL
	Query    url.Values // encoded in sorted key order
}

// URL returns the canonical request URL; it doubles as the cache key.
func (r Request) URL() string {
	u := strings.TrimRight(r.BaseURL, "/") + "/" + strings.TrimLeft(r.Path, "/")
	if q := r.Query.Encode(); q != "" {
		u += "?" + q
	}
	return u
}

// Getter decodes the JSON body of a GET into dst.
type Getter interface {
	GetJSON(ctx context.Context, req Request, dst any) error
}

// Client implements Getter over net/http.
type Client struct {
	http      *http.Client
	cache     repository.Store
	userAgent string
	logger    logger.Logger
}

// New returns a Client with a 25s timeout and no cache.
func New(opts ...Option) *Client {
	c := &Client{
		http:      &http.Client{Timeout: defaultTimeout},
		userAgent: "paddock",
		logger:    logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetJSON performs req and decodes the body into dst. Numbers are decoded as
// json.Number when dst holds interface values so upstream fields pass through
// without float rounding.
func (c *Client) GetJSON(ctx context.Context, req Request, dst any) error {
	body, err := c.get(ctx, req)
	if err != nil {
		return err
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(dst); err != nil {
		metrics.RecordUpstreamError(req.API, req.Endpoint, "decode")
		return fmt.Errorf("%w: %s: %w", ErrDecode, req.URL(), err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, req Request) ([]byte, error) {
	key := req.URL()

	if c.cache != nil {
		e, err := c.cache.Get(ctx, key)
		switch {
		case err == nil:
			metrics.RecordCacheHit(req.API)
			c.logger.Debug(ctx, "cache hit", logger.String("url", key))
			return e.Body, nil
		case errors.Is(err, repository.ErrNotFound):
			metrics.RecordCacheMiss(req.API)
		default:
			// A broken cache degrades to the network.
			metrics.RecordCacheMiss(req.API)
			c.logger.Warn(ctx, "cache lookup failed", logger.String("url", key), logger.Error(err))
		}
	}

	body, status, err := c.do(ctx, req, key)
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		if err := c.cache.Put(ctx, repository.Entry{Key: key, StatusCode: status, Body: body}); err != nil {
			c.logger.Warn(ctx, "cache store failed", logger.String("url", key), logger.Error(err))
		}
	}
	return body, nil
}

func (c *Client) do(ctx context.Context, req Request, key string) ([]byte, int, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, key, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: build request: %w", ErrTransport, err)
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)

	started := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		metrics.RecordUpstreamError(req.API, req.Endpoint, "transport")
		return nil, 0, fmt.Errorf("%w: %s: %w", ErrTransport, key, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	elapsed := time.Since(started)
	metrics.RecordUpstreamRequest(req.API, req.Endpoint, strconv.Itoa(resp.StatusCode))
	metrics.RecordUpstreamLatency(req.API, req.Endpoint, float64(elapsed.Milliseconds()))
	if err != nil {
		metrics.RecordUpstreamError(req.API, req.Endpoint, "transport")
		return nil, 0, fmt.Errorf("%w: read %s: %w", ErrTransport, key, err)
	}

	c.logger.Debug(ctx, "upstream response",
		logger.String("url", key),
		logger.Int("status", resp.StatusCode),
		logger.Int("bytes", len(body)),
		logger.Any("elapsed", elapsed),
	)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		metrics.RecordUpstreamError(req.API, req.Endpoint, "status")
		return nil, resp.StatusCode, fmt.Errorf("%w: %s: %s", ErrStatus, key, resp.Status)
	}
	return body, resp.StatusCode, nil
}
