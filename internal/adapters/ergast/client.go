// Package ergast reads standings and results from the Ergast-compatible
// Jolpica API, following its limit/offset paging to the last row.
package ergast

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/okian/paddock/internal/adapters/fetch"
	"github.com/okian/paddock/internal/domain/model"
	"github.com/okian/paddock/internal/domain/types"
	"github.com/okian/paddock/pkg/logger"
)

const (
	apiName = "ergast"

	// DefaultBaseURL is the Jolpica mirror of the Ergast API.
	DefaultBaseURL = "https://api.jolpi.ca/ergast/f1"

	defaultPageLimit = 2000
	maxPages         = 500
)

// Client is a typed, paging wrapper over the Ergast endpoints.
type Client struct {
	getter    fetch.Getter
	baseURL   string
	pageLimit int
	logger    logger.Logger
}

// New returns a Client that issues requests through getter.
func New(getter fetch.Getter, baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		getter:    getter,
		baseURL:   baseURL,
		pageLimit: defaultPageLimit,
		logger:    logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// DriverStandings returns the standings rows of the season, each carrying the
// driver's current team.
func (c *Client) DriverStandings(ctx context.Context, year int) ([]model.DriverEntry, error) {
	lists, err := c.standings(ctx, "driver_standings", fmt.Sprintf("%d/driverStandings.json", year))
	if err != nil {
		return nil, err
	}
	out := []model.DriverEntry{}
	if len(lists) == 0 {
		return out, nil
	}
	for _, row := range lists[0].DriverStandings {
		out = append(out, row.entry())
	}
	return out, nil
}

// SeasonResults returns one driver's results for every race of year.
func (c *Client) SeasonResults(ctx context.Context, year int, driverID string) ([]model.RaceResult, error) {
	return c.results(ctx, "season_results", fmt.Sprintf("%d/drivers/%s/results.json", year, url.PathEscape(driverID)))
}

// CareerResults returns one driver's results for every race they entered.
func (c *Client) CareerResults(ctx context.Context, driverID string) ([]model.RaceResult, error) {
	return c.results(ctx, "career_results", fmt.Sprintf("drivers/%s/results.json", url.PathEscape(driverID)))
}

// StandingsHistory returns the driver's standing position at the end of every
// season they raced in.
func (c *Client) StandingsHistory(ctx context.Context, driverID string) ([]model.SeasonStanding, error) {
	lists, err := c.standings(ctx, "career_standings", fmt.Sprintf("drivers/%s/driverStandings.json", url.PathEscape(driverID)))
	if err != nil {
		return nil, err
	}
	out := make([]model.SeasonStanding, 0, len(lists))
	for _, l := range lists {
		if s, ok := l.standing(); ok {
			out = append(out, s)
		}
	}
	return out, nil
}

// standings merges StandingsLists across pages. A list split over a page
// boundary is stitched back together.
func (c *Client) standings(ctx context.Context, endpoint, path string) ([]standingsList, error) {
	var lists []standingsList
	err := c.paginate(ctx, endpoint, path, func(md mrData) int {
		rows := 0
		for _, l := range md.StandingsTable.StandingsLists {
			rows += len(l.DriverStandings)
			n := len(lists)
			if n > 0 && sameKey(lists[n-1].Season, lists[n-1].Round, l.Season, l.Round) {
				lists[n-1].DriverStandings = append(lists[n-1].DriverStandings, l.DriverStandings...)
				continue
			}
			lists = append(lists, l)
		}
		return rows
	})
	return lists, err
}

func (c *Client) results(ctx context.Context, endpoint, path string) ([]model.RaceResult, error) {
	var races []race
	err := c.paginate(ctx, endpoint, path, func(md mrData) int {
		rows := 0
		for _, r := range md.RaceTable.Races {
			rows += len(r.Results)
			n := len(races)
			if n > 0 && sameKey(races[n-1].Season, races[n-1].Round, r.Season, r.Round) {
				races[n-1].Results = append(races[n-1].Results, r.Results...)
				continue
			}
			races = append(races, r)
		}
		return rows
	})
	if err != nil {
		return nil, err
	}

	out := make([]model.RaceResult, 0, len(races))
	for _, r := range races {
		out = append(out, r.result())
	}
	return out, nil
}

// paginate requests path page by page until the reported total is covered.
// merge consumes one page and returns how many rows it held.
func (c *Client) paginate(ctx context.Context, endpoint, path string, merge func(mrData) int) error {
	offset := 0
	for page := 0; page < maxPages; page++ {
		q := url.Values{}
		q.Set("limit", strconv.Itoa(c.pageLimit))
		if offset > 0 {
			q.Set("offset", strconv.Itoa(offset))
		}

		var env envelope
		req := fetch.Request{API: apiName, Endpoint: endpoint, BaseURL: c.baseURL, Path: path, Query: q}
		if err := c.getter.GetJSON(ctx, req, &env); err != nil {
			return fmt.Errorf("ergast %s: %w", endpoint, err)
		}

		rows := merge(env.MRData)
		limit := types.Int(env.MRData.Limit, c.pageLimit)
		total := types.Int(env.MRData.Total, 0)
		next := types.Int(env.MRData.Offset, offset) + limit

		if rows == 0 || limit <= 0 || next >= total || next <= offset {
			return nil
		}
		c.logger.Debug(ctx, "fetching next page",
			logger.String("endpoint", endpoint),
			logger.Int("offset", next),
			logger.Int("total", total),
		)
		offset = next
	}
	c.logger.Warn(ctx, "page limit reached", logger.String("endpoint", endpoint), logger.Int("pages", maxPages))
	return nil
}

func sameKey(season, round, otherSeason, otherRound any) bool {
	return types.Text(season) == types.Text(otherSeason) && types.Text(round) == types.Text(otherRound)
}
