package main

import (
	"context"
	"errors"
	"io"

	"github.com/google/uuid"

	"github.com/okian/paddock/internal/adapters/artifact"
	"github.com/okian/paddock/internal/adapters/ergast"
	"github.com/okian/paddock/internal/adapters/fetch"
	"github.com/okian/paddock/internal/adapters/openf1"
	"github.com/okian/paddock/internal/adapters/repository"
	app "github.com/okian/paddock/internal/app"
	"github.com/okian/paddock/internal/config"
	"github.com/okian/paddock/pkg/logger"
	"github.com/okian/paddock/pkg/metrics"
)

// invocation holds the wiring of one command run.
type invocation struct {
	cfg    *config.Config
	svc    *app.Service
	log    logger.Logger
	cache  repository.Store
	closed bool
}

// bootstrap loads configuration, sets up logging on stderr and wires the
// upstream clients into the service.
func bootstrap(ctx context.Context, stderr io.Writer, flags *globalFlags) (*invocation, error) {
	if err := logger.InitWithWriter(stderr); err != nil {
		return nil, err
	}

	cfg, err := config.Load(ctx, flags.configPath)
	if err != nil {
		return nil, err
	}
	if flags.logLevel != "" {
		cfg.LogLevel = flags.logLevel
	}
	if flags.cachePath != "" {
		cfg.CachePath = flags.cachePath
	}
	if flags.metricsFile != "" {
		cfg.MetricsFile = flags.metricsFile
	}

	runID := uuid.NewString()
	log := logger.Get().With(logger.String("run_id", runID))

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	rt := &invocation{cfg: cfg, log: log}

	openf1Opts := []fetch.Option{
		fetch.WithTimeout(cfg.HTTPTimeout()),
		fetch.WithUserAgent(cfg.UserAgent),
		fetch.WithLogger(log.Named("openf1")),
	}
	if cfg.CachePath != "" {
		store, err := repository.NewSQLiteStore(ctx, cfg.CachePath, repository.WithLogger(log.Named("cache")))
		if err != nil {
			return nil, err
		}
		rt.cache = store
		openf1Opts = append(openf1Opts, fetch.WithCache(store))
		log.Debug(ctx, "response cache enabled", logger.String("path", cfg.CachePath))
	}

	ergastFetcher := fetch.New(
		fetch.WithTimeout(cfg.HTTPTimeout()),
		fetch.WithUserAgent(cfg.UserAgent),
		fetch.WithLogger(log.Named("ergast")),
	)

	rt.svc = app.New(
		app.WithLogger(log.Named("service")),
		app.WithSessions(openf1.New(fetch.New(openf1Opts...), cfg.OpenF1BaseURL)),
		app.WithResults(ergast.New(ergastFetcher, cfg.ErgastBaseURL,
			ergast.WithPageLimit(cfg.PageLimit),
			ergast.WithLogger(log.Named("ergast")),
		)),
		app.WithWriter(artifact.NewWriter(artifact.WithLogger(log.Named("artifact")))),
		app.WithOutDir(cfg.OutDir),
	)
	return rt, nil
}

// close releases the cache and dumps metrics when configured.
func (rt *invocation) close(ctx context.Context) error {
	if rt.closed {
		return nil
	}
	rt.closed = true

	var errs []error
	if rt.cache != nil {
		if n, err := rt.cache.Count(ctx); err == nil {
			rt.log.Debug(ctx, "response cache size", logger.Int("entries", n))
		}
		errs = append(errs, rt.cache.Close())
	}
	if rt.cfg.MetricsFile != "" {
		if err := metrics.WriteTextfile(rt.cfg.MetricsFile); err != nil {
			rt.log.Error(ctx, "metrics textfile not written", logger.String("path", rt.cfg.MetricsFile), logger.Error(err))
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
