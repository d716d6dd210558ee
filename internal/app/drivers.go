package service

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/okian/paddock/internal/domain/model"
	"github.com/okian/paddock/internal/domain/stats"
	"github.com/okian/paddock/pkg/logger"
	"github.com/okian/paddock/pkg/metrics"
)

// BuildDriverDataset writes drivers.json and one stats/<slug>.json per driver
// in the year's standings under outDir.
//
// Empty standings write an empty drivers.json and leave stats/ untouched, so
// a roster is never published out of step with the stats files.
func (s *Service) BuildDriverDataset(ctx context.Context, year int, outDir string) (DatasetSummary, error) {
	if year <= 0 {
		return DatasetSummary{}, fmt.Errorf("%w: year must be positive, got %d", ErrInvalidInput, year)
	}
	if s.results == nil {
		return DatasetSummary{}, errNoSource
	}
	if outDir == "" {
		outDir = s.outDir
	}

	standings, err := s.results.DriverStandings(ctx, year)
	if err != nil {
		return DatasetSummary{}, fmt.Errorf("fetch standings %d: %w", year, err)
	}

	driversPath := filepath.Join(outDir, DriversFile)
	if len(standings) == 0 {
		warning := fmt.Sprintf("standings for %d are empty; wrote an empty driver list and left stats untouched", year)
		s.logger.Warn(ctx, "empty standings", logger.Int("year", year), logger.String("path", driversPath))
		if err := s.writer.WriteJSON(ctx, "drivers", driversPath, []model.DriverRecord{}); err != nil {
			return DatasetSummary{}, err
		}
		return DatasetSummary{Year: year, Warning: warning}, nil
	}

	statsDir := filepath.Join(outDir, StatsDir)
	records := make([]model.DriverRecord, 0, len(standings))
	for _, entry := range standings {
		if entry.DriverID == "" {
			s.logger.Warn(ctx, "skipping standings row without driver id",
				logger.String("name", entry.GivenName+" "+entry.FamilyName))
			continue
		}

		rec := stats.NewDriverRecord(entry)
		driverStats, err := s.driverStats(ctx, year, entry)
		if err != nil {
			return DatasetSummary{}, err
		}
		if err := s.writer.WriteJSON(ctx, "stats", filepath.Join(statsDir, rec.Slug+".json"), driverStats); err != nil {
			return DatasetSummary{}, err
		}

		records = append(records, rec)
		metrics.RecordDriverProcessed()
		s.logger.Debug(ctx, "driver processed",
			logger.String("slug", rec.Slug),
			logger.String("team", rec.TeamName),
		)
	}

	stats.SortDrivers(records)
	if err := s.writer.WriteJSON(ctx, "drivers", driversPath, records); err != nil {
		return DatasetSummary{}, err
	}

	s.logger.Info(ctx, "driver dataset written",
		logger.Int("year", year),
		logger.Int("drivers", len(records)),
		logger.String("stats_dir", statsDir),
	)
	return DatasetSummary{Year: year, Drivers: len(records), StatsDir: statsDir}, nil
}

// driverStats issues the per-driver requests one after another.
func (s *Service) driverStats(ctx context.Context, year int, entry model.DriverEntry) (model.DriverStats, error) {
	season, err := s.results.SeasonResults(ctx, year, entry.DriverID)
	if err != nil {
		return model.DriverStats{}, fmt.Errorf("fetch %s results %d: %w", entry.DriverID, year, err)
	}
	career, err := s.results.CareerResults(ctx, entry.DriverID)
	if err != nil {
		return model.DriverStats{}, fmt.Errorf("fetch %s career results: %w", entry.DriverID, err)
	}
	history, err := s.results.StandingsHistory(ctx, entry.DriverID)
	if err != nil {
		return model.DriverStats{}, fmt.Errorf("fetch %s standings history: %w", entry.DriverID, err)
	}

	return model.DriverStats{
		Season: stats.FoldSeason(year, entry, season),
		Career: stats.FoldCareer(ctx, career, history),
	}, nil
}
