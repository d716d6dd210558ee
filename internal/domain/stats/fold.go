// Package stats folds standings and race results into per-driver season and
// career summaries.
package stats

import (
	"context"

	"github.com/okian/paddock/internal/domain/dedupe"
	"github.com/okian/paddock/internal/domain/model"
)

// Thresholds used by the folds.
const (
	podiumCutoff = 3
	pointsCutoff = 10
)

// FoldSeason aggregates one driver's race results for a year. Championship
// position and points come from the standings row, which is authoritative.
func FoldSeason(year int, standing model.DriverEntry, races []model.RaceResult) model.SeasonStats {
	s := model.SeasonStats{
		SeasonYear:     year,
		SeasonPosition: model.Placement(standing.Position),
		SeasonPoints:   standing.Points,
	}

	for _, r := range races {
		s.GPRaces++
		s.GPPoints += r.Points
		if r.Position > 0 && r.Position <= podiumCutoff {
			s.GPPodiums++
		}
		if r.Position > 0 && r.Position <= pointsCutoff {
			s.GPTop10s++
		}
		if r.Position == 1 {
			s.Wins++
		}
		if !Finished(r.Status) {
			s.DNFs++
		}
		s.BestGrid = better(s.BestGrid, r.Grid)
		if r.Grid == 1 {
			s.Poles++
		}
	}
	return s
}

// FoldCareer aggregates a driver's whole results history plus the season
// standings used to count championships.
func FoldCareer(ctx context.Context, races []model.RaceResult, seasons []model.SeasonStanding) model.CareerStats {
	var c model.CareerStats

	for _, r := range races {
		c.GPEntered++
		c.Points += r.Points
		if r.Position > 0 && r.Position <= podiumCutoff {
			c.Podiums++
		}
		if r.Position > 0 {
			switch {
			case c.BestFinish == 0 || model.Placement(r.Position) < c.BestFinish:
				c.BestFinish = model.Placement(r.Position)
				c.BestFinishCount = 1
			case model.Placement(r.Position) == c.BestFinish:
				c.BestFinishCount++
			}
		}
		c.BestGrid = better(c.BestGrid, r.Grid)
		if r.Grid == 1 {
			c.Poles++
		}
		if !Finished(r.Status) {
			c.DNFs++
		}
	}

	c.WorldChampionships = CountChampionships(ctx, seasons)
	return c
}

// CountChampionships counts distinct seasons where the driver finished first.
func CountChampionships(ctx context.Context, seasons []model.SeasonStanding) int {
	titles := dedupe.NewInMemoryDeduper()
	for _, s := range seasons {
		if s.Position == 1 {
			titles.SeenAndRecord(ctx, s.Season)
		}
	}
	return int(titles.Size())
}

// better keeps the lowest positive position; 0 means "no value".
func better(current model.Placement, candidate int) model.Placement {
	if candidate <= 0 {
		return current
	}
	if current == 0 || model.Placement(candidate) < current {
		return model.Placement(candidate)
	}
	return current
}
