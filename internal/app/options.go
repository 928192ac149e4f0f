package service

import (
	"time"

	"github.com/okian/inputtrail/internal/adapters/sink"
	"github.com/okian/inputtrail/internal/adapters/source"
	"github.com/okian/inputtrail/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithSource sets the platform event source.
func WithSource(src source.EventSource) Option {
	return func(s *Service) {
		if src != nil {
			s.source = src
		}
	}
}

// WithOutputPath sets the durable log location.
func WithOutputPath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.outputPath = path
		}
	}
}

// WithRelayCapacity bounds the observer relay. Zero keeps it unbounded.
func WithRelayCapacity(capacity int) Option {
	return func(s *Service) {
		if capacity >= 0 {
			s.relayCapacity = capacity
		}
	}
}

// WithSyncWrites controls the fsync after every row.
func WithSyncWrites(enabled bool) Option {
	return func(s *Service) {
		s.syncWrites = enabled
	}
}

// WithSink uses an already opened sink instead of opening the output path.
// The service still closes it on Stop.
func WithSink(snk sink.Sink) Option {
	return func(s *Service) {
		s.injectedSink = snk
	}
}

// WithClock sets the clock used for events without a delivery time.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithStopTimeout bounds how long Stop waits for the capture goroutine.
func WithStopTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.stopTimeout = d
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}
