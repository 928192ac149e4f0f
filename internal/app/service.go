// Package service owns one capture session: the durable log, the relay to
// the observer and the capture loop running on its own OS thread.
package service

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/inputtrail/internal/adapters/mq/capture"
	"github.com/okian/inputtrail/internal/adapters/mq/relay"
	"github.com/okian/inputtrail/internal/adapters/sink"
	"github.com/okian/inputtrail/internal/adapters/source"
	"github.com/okian/inputtrail/pkg/logger"
)

// Default service configuration constants.
const (
	defaultOutputPath  = "events.csv"
	defaultStopTimeout = 5 * time.Second
)

// Service runs the capture pipeline.
type Service struct {
	mu sync.RWMutex

	// Configuration
	source        source.EventSource
	outputPath    string
	relayCapacity int
	syncWrites    bool
	clock         func() time.Time
	stopTimeout   time.Duration
	injectedSink  sink.Sink

	// Core components
	sink  sink.Sink
	relay *relay.Relay
	loop  *capture.Loop

	// State
	runID     string
	started   bool
	startedAt time.Time
	cancel    context.CancelFunc
	done      chan error
	finished  chan struct{}
	err       error

	logger logger.Logger
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		outputPath:  defaultOutputPath,
		syncWrites:  true,
		clock:       time.Now,
		stopTimeout: defaultStopTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start opens the log and launches capture. A log that cannot be opened is
// reported here and nothing is started.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}
	if s.source == nil {
		return ErrNoSource
	}

	s.runID = uuid.NewString()
	s.logger.Info(ctx, "starting capture service",
		logger.String("run_id", s.runID),
		logger.String("output", s.outputPath),
	)

	snk := s.injectedSink
	if snk == nil {
		csvSink, err := sink.Open(ctx, s.outputPath, sink.WithSync(s.syncWrites))
		if err != nil {
			s.logger.Error(ctx, "cannot open event log", logger.String("run_id", s.runID), logger.Error(err))
			return err
		}
		snk = csvSink
	}
	s.sink = snk
	s.relay = relay.New(relay.WithCapacity(s.relayCapacity))
	s.loop = capture.New(s.source, s.sink, s.relay, capture.WithClock(s.clock))

	// Capture lives until Stop, not until the caller's context ends.
	loopCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s.cancel = cancel
	s.done = make(chan error, 1)
	s.finished = make(chan struct{})
	s.err = nil
	s.started = true
	s.startedAt = s.clock()

	go s.run(loopCtx, s.loop, s.done, s.finished)

	s.logger.Info(ctx, "capture service started",
		logger.String("run_id", s.runID),
		logger.Int("relay_capacity", s.relayCapacity),
		logger.Any("sync_writes", s.syncWrites),
	)
	return nil
}

func (s *Service) run(ctx context.Context, loop *capture.Loop, done chan<- error, finished chan<- struct{}) {
	// Platform hooks expect to be driven from one thread.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	err := loop.Run(ctx)
	if errors.Is(err, context.Canceled) && ctx.Err() != nil {
		err = nil
	}

	s.mu.Lock()
	s.err = err
	s.mu.Unlock()

	done <- err
	close(done)
	close(finished)
}

// Done delivers the terminal capture error once: nil when capture was
// stopped or its source finished, otherwise an error wrapping
// sink.ErrSinkFatal or source.ErrSourceFatal.
func (s *Service) Done() <-chan error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.done
}

// Err returns the terminal capture error once capture has ended.
func (s *Service) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// Relay returns the consumer side of the observer relay.
func (s *Service) Relay() *relay.Relay {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.relay
}

// RunID identifies the current session.
func (s *Service) RunID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.runID
}

// Stop cancels capture, waits for the capture goroutine, then closes the
// relay and the log.
func (s *Service) Stop() error {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return nil
	}
	s.started = false
	cancel, finished, snk, rl, runID := s.cancel, s.finished, s.sink, s.relay, s.runID
	s.mu.Unlock()

	ctx := context.Background()
	s.logger.Info(ctx, "stopping capture service", logger.String("run_id", runID))

	cancel()
	select {
	case <-finished:
	case <-time.After(s.stopTimeout):
		// The source ignored cancellation; leave the log open rather than
		// race its writer.
		s.logger.Warn(ctx, "capture did not stop in time", logger.String("run_id", runID))
		rl.Close()
		return fmt.Errorf("capture did not stop within %s", s.stopTimeout)
	}

	rl.Close()
	if err := snk.Close(); err != nil {
		s.logger.Error(ctx, "closing event log failed", logger.String("run_id", runID), logger.Error(err))
		return err
	}

	s.logger.Info(ctx, "capture service stopped",
		logger.String("run_id", runID),
		logger.Uint64("captured", s.loop.Stats().Captured),
	)
	return nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":    s.started,
		"runId":      s.runID,
		"outputPath": s.outputPath,
	}
	if s.loop == nil {
		return stats
	}

	st := s.loop.Stats()
	stats["startedAt"] = s.startedAt.UTC().Format(time.RFC3339)
	stats["captured"] = st.Captured
	stats["ignored"] = st.Ignored
	stats["relayed"] = st.Relayed
	stats["relayFull"] = st.RelayFull
	stats["relayDisconnected"] = st.RelayDisconnected
	stats["relayDepth"] = s.relay.Len()
	if w, ok := s.sink.(interface{ Written() int64 }); ok {
		stats["written"] = w.Written()
	}
	if s.err != nil {
		stats["error"] = s.err.Error()
	}
	return stats
}
