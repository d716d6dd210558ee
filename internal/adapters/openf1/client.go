// Package openf1 reads sessions, race-control messages and telemetry samples
// from the OpenF1 API.
package openf1

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/okian/paddock/internal/adapters/fetch"
	"github.com/okian/paddock/internal/domain/model"
)

const (
	apiName = "openf1"

	// DefaultBaseURL is the public OpenF1 endpoint.
	DefaultBaseURL = "https://api.openf1.org/v1"
)

// Client is a thin typed wrapper over the OpenF1 endpoints.
type Client struct {
	getter  fetch.Getter
	baseURL string
}

// New returns a Client that issues requests through getter.
func New(getter fetch.Getter, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{getter: getter, baseURL: baseURL}
}

// Sessions returns the raw session records of the given kind in year.
func (c *Client) Sessions(ctx context.Context, year int, sessionName string) ([]map[string]any, error) {
	q := url.Values{}
	q.Set("year", strconv.Itoa(year))
	q.Set("session_name", sessionName)

	var out []map[string]any
	if err := c.get(ctx, "sessions", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// RaceControl returns every race-control message of a session, unordered.
// sessionKey is passed through as given, so "latest" works too.
func (c *Client) RaceControl(ctx context.Context, sessionKey string) ([]model.RaceControlMessage, error) {
	q := url.Values{}
	q.Set("session_key", sessionKey)

	var out []model.RaceControlMessage
	if err := c.get(ctx, "race_control", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Locations returns car location samples strictly between start and end.
func (c *Client) Locations(ctx context.Context, sessionKey, start, end string) ([]json.RawMessage, error) {
	return c.window(ctx, "location", sessionKey, start, end)
}

// Positions returns timing position samples strictly between start and end.
func (c *Client) Positions(ctx context.Context, sessionKey, start, end string) ([]json.RawMessage, error) {
	return c.window(ctx, "position", sessionKey, start, end)
}

// window filters on the server side; the samples are passed through verbatim.
func (c *Client) window(ctx context.Context, endpoint, sessionKey, start, end string) ([]json.RawMessage, error) {
	q := url.Values{}
	q.Set("session_key", sessionKey)
	q.Set("date>", start)
	q.Set("date<", end)

	var out []json.RawMessage
	if err := c.get(ctx, endpoint, q, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []json.RawMessage{}
	}
	return out, nil
}

func (c *Client) get(ctx context.Context, endpoint string, q url.Values, dst any) error {
	req := fetch.Request{
		API:      apiName,
		Endpoint: endpoint,
		BaseURL:  c.baseURL,
		Path:     endpoint,
		Query:    q,
	}
	if err := c.getter.GetJSON(ctx, req, dst); err != nil {
		return fmt.Errorf("openf1 %s: %w", endpoint, err)
	}
	return nil
}
