// Package service composes the upstream clients, the domain folds and the
// artifact writer into the four batch operations. It returns structured
// results and never writes to standard output.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/okian/paddock/internal/adapters/artifact"
	"github.com/okian/paddock/internal/domain/model"
	"github.com/okian/paddock/internal/domain/racewindow"
	"github.com/okian/paddock/internal/domain/schedule"
	"github.com/okian/paddock/pkg/logger"
	"github.com/okian/paddock/pkg/metrics"
)

// Artifact file names.
const (
	DefaultOutDir = "public/data"
	ScheduleFile  = "schedule.json"
	DriversFile   = "drivers.json"
	StatsDir      = "stats"
)

// SessionSource reads sessions, race control and telemetry samples.
type SessionSource interface {
	Sessions(ctx context.Context, year int, sessionName string) ([]map[string]any, error)
	RaceControl(ctx context.Context, sessionKey string) ([]model.RaceControlMessage, error)
	Locations(ctx context.Context, sessionKey, start, end string) ([]json.RawMessage, error)
	Positions(ctx context.Context, sessionKey, start, end string) ([]json.RawMessage, error)
}

// ResultsSource reads standings and race results.
type ResultsSource interface {
	DriverStandings(ctx context.Context, year int) ([]model.DriverEntry, error)
	SeasonResults(ctx context.Context, year int, driverID string) ([]model.RaceResult, error)
	CareerResults(ctx context.Context, driverID string) ([]model.RaceResult, error)
	StandingsHistory(ctx context.Context, driverID string) ([]model.SeasonStanding, error)
}

// ArtifactWriter persists one JSON artifact, replacing any previous file.
type ArtifactWriter interface {
	WriteJSON(ctx context.Context, kind, path string, v any) error
}

// DatasetSummary describes what BuildDriverDataset produced.
type DatasetSummary struct {
	Year     int    `json:"year"`
	Drivers  int    `json:"drivers"`
	StatsDir string `json:"stats_dir,omitempty"`
	Warning  string `json:"warning,omitempty"`
}

// Service runs the batch operations.
type Service struct {
	sessions SessionSource
	results  ResultsSource
	writer   ArtifactWriter
	outDir   string
	logger   logger.Logger
}

// New constructs a Service. Sources left unset make the operations that need
// them fail with an error rather than panic.
func New(opts ...Option) *Service {
	s := &Service{
		writer: artifact.NewWriter(),
		outDir: DefaultOutDir,
		logger: logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var errNoSource = errors.New("upstream source not configured")

// FetchSchedule returns the year's race sessions, unique by session key and
// ordered by start date, and writes them to schedule.json.
func (s *Service) FetchSchedule(ctx context.Context, year int) ([]model.SessionSummary, error) {
	if s.sessions == nil {
		return nil, errNoSource
	}

	records, err := s.sessions.Sessions(ctx, year, schedule.SessionNameRace)
	if err != nil {
		return nil, fmt.Errorf("fetch schedule %d: %w", year, err)
	}

	sessions := schedule.Normalize(ctx, records)
	metrics.UpdateScheduleSessions(len(sessions))

	path := filepath.Join(s.outDir, ScheduleFile)
	if err := s.writer.WriteJSON(ctx, "schedule", path, sessions); err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "schedule written",
		logger.Int("year", year),
		logger.Int("sessions", len(sessions)),
		logger.String("path", path),
	)
	return sessions, nil
}

// ResolveRaceWindow infers the race start and end from the session's
// race-control log. The session key is opaque; only an empty one is rejected.
func (s *Service) ResolveRaceWindow(ctx context.Context, sessionKey string) (model.RaceWindow, error) {
	sessionKey = strings.TrimSpace(sessionKey)
	if sessionKey == "" {
		metrics.RecordRaceWindowOutcome("invalid_input")
		return model.RaceWindow{}, fmt.Errorf("%w: session key is required", ErrInvalidInput)
	}
	if s.sessions == nil {
		return model.RaceWindow{}, errNoSource
	}

	messages, err := s.sessions.RaceControl(ctx, sessionKey)
	if err != nil {
		metrics.RecordRaceWindowOutcome("fetch_error")
		return model.RaceWindow{}, fmt.Errorf("fetch race control %s: %w", sessionKey, err)
	}

	if _, undated := racewindow.Sort(messages); len(undated) > 0 {
		s.logger.Warn(ctx, "race control messages without a usable date",
			logger.String("session_key", sessionKey),
			logger.Int("count", len(undated)),
		)
	}

	window, err := racewindow.Resolve(messages)
	metrics.RecordRaceWindowOutcome(outcome(err))
	if err != nil {
		s.logger.Warn(ctx, "race window unresolved",
			logger.String("session_key", sessionKey),
			logger.Int("messages", len(messages)),
			logger.Error(err),
		)
		return model.RaceWindow{}, err
	}

	s.logger.Info(ctx, "race window resolved",
		logger.String("session_key", sessionKey),
		logger.String("start", window.RaceStartDate),
		logger.String("end", window.RaceEndDate),
	)
	return window, nil
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "resolved"
	case errors.Is(err, racewindow.ErrStartNotFound):
		return "start_not_found"
	case errors.Is(err, racewindow.ErrEndNotFound):
		return "end_not_found"
	case errors.Is(err, racewindow.ErrInvalidTimestamp):
		return "invalid_timestamp"
	case errors.Is(err, racewindow.ErrEndNotAfterStart):
		return "end_not_after_start"
	default:
		return "error"
	}
}

// FetchTelemetryChunk returns the location and position samples between start
// and end, verbatim. Both bounds are required.
func (s *Service) FetchTelemetryChunk(ctx context.Context, sessionKey, start, end string) (model.TelemetryChunk, error) {
	sessionKey = strings.TrimSpace(sessionKey)
	start, end = strings.TrimSpace(start), strings.TrimSpace(end)
	switch {
	case sessionKey == "":
		return model.TelemetryChunk{}, fmt.Errorf("%w: session key is required", ErrInvalidInput)
	case start == "" || end == "":
		return model.TelemetryChunk{}, fmt.Errorf("%w: start and end are required", ErrInvalidInput)
	}
	if s.sessions == nil {
		return model.TelemetryChunk{}, errNoSource
	}

	locations, err := s.sessions.Locations(ctx, sessionKey, start, end)
	if err != nil {
		return model.TelemetryChunk{}, fmt.Errorf("fetch locations %s: %w", sessionKey, err)
	}
	positions, err := s.sessions.Positions(ctx, sessionKey, start, end)
	if err != nil {
		return model.TelemetryChunk{}, fmt.Errorf("fetch positions %s: %w", sessionKey, err)
	}

	s.logger.Debug(ctx, "telemetry chunk fetched",
		logger.String("session_key", sessionKey),
		logger.Int("locations", len(locations)),
		logger.Int("positions", len(positions)),
	)
	return model.TelemetryChunk{Locations: locations, Positions: positions}, nil
}
