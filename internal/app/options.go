package service

import "github.com/okian/paddock/pkg/logger"

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithSessions sets the session and telemetry source.
func WithSessions(src SessionSource) Option {
	return func(s *Service) {
		s.sessions = src
	}
}

// WithResults sets the standings and results source.
func WithResults(src ResultsSource) Option {
	return func(s *Service) {
		s.results = src
	}
}

// WithWriter sets the artifact writer.
func WithWriter(w ArtifactWriter) Option {
	return func(s *Service) {
		if w != nil {
			s.writer = w
		}
	}
}

// WithOutDir sets the directory schedule.json is written to.
func WithOutDir(dir string) Option {
	return func(s *Service) {
		if dir != "" {
			s.outDir = dir
		}
	}
}
