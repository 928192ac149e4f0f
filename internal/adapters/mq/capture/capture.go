// Package capture runs the pipeline from a platform source to the durable
// log and the observer relay.
package capture

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/okian/inputtrail/internal/adapters/mq/relay"
	"github.com/okian/inputtrail/internal/adapters/sink"
	"github.com/okian/inputtrail/internal/adapters/source"
	"github.com/okian/inputtrail/internal/domain/model"
	"github.com/okian/inputtrail/internal/domain/normalize"
	"github.com/okian/inputtrail/internal/domain/tracker"
	"github.com/okian/inputtrail/pkg/logger"
	"github.com/okian/inputtrail/pkg/metrics"
)

// Stats is a snapshot of the loop counters.
type Stats struct {
	Captured          uint64 `json:"captured"`
	Ignored           uint64 `json:"ignored"`
	Relayed           uint64 `json:"relayed"`
	RelayFull         uint64 `json:"relay_full"`
	RelayDisconnected uint64 `json:"relay_disconnected"`
}

// Loop consumes one source. Every record is written to the sink before its
// display string is offered to the relay.
type Loop struct {
	source source.EventSource
	sink   sink.Sink
	relay  relay.Sender
	name   string
	clock  func() time.Time
	logger logger.Logger

	tracker    *tracker.Tracker
	normalizer *normalize.Normalizer

	captured     atomic.Uint64
	ignored      atomic.Uint64
	relayed      atomic.Uint64
	full         atomic.Uint64
	disconnected atomic.Uint64
}

// New wires a loop. The loop owns its position tracker.
func New(src source.EventSource, snk sink.Sink, rl relay.Sender, opts ...Option) *Loop {
	l := &Loop{
		source: src,
		sink:   snk,
		relay:  rl,
		name:   "capture",
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.logger == nil {
		l.logger = logger.Get().Named(l.name)
	}

	l.tracker = tracker.New()
	l.normalizer = normalize.New(l.tracker, normalize.WithClock(l.clock))
	return l
}

// Run streams the source until it ends or fails. It returns an error
// wrapping sink.ErrSinkFatal or source.ErrSourceFatal on failure, ctx.Err()
// on cancellation, and nil when the source finishes on its own.
func (l *Loop) Run(ctx context.Context) error {
	l.logger.Info(ctx, "capture started")

	var sinkErr error
	err := l.source.Stream(ctx, func(raw model.RawEvent) error {
		if err := l.handle(ctx, raw); err != nil {
			sinkErr = err
			return err
		}
		return nil
	})

	switch {
	case sinkErr != nil:
		metrics.RecordErrorByComponent("capture", "sink")
		l.logger.Error(ctx, "capture stopped: durable log failed", logger.Error(sinkErr))
		return sinkErr
	case err == nil:
		l.logger.Info(ctx, "capture source finished", logger.Uint64("captured", l.captured.Load()))
		return nil
	case ctx.Err() != nil && errors.Is(err, ctx.Err()):
		l.logger.Info(ctx, "capture cancelled", logger.Uint64("captured", l.captured.Load()))
		return ctx.Err()
	case errors.Is(err, source.ErrSourceFatal):
		metrics.RecordErrorByComponent("capture", "source")
		l.logger.Error(ctx, "capture stopped: input source failed", logger.Error(err))
		return err
	default:
		metrics.RecordErrorByComponent("capture", "source")
		l.logger.Error(ctx, "capture stopped: input source failed", logger.Error(err))
		return fmt.Errorf("%w: %w", source.ErrSourceFatal, err)
	}
}

// handle runs normalize, then sink, then relay for one raw event.
func (l *Loop) handle(ctx context.Context, raw model.RawEvent) error { //nolint:gocritic // hugeParam: events are values
	rec, display, ok := l.normalizer.Normalize(raw)
	if !ok {
		l.ignored.Add(1)
		metrics.RecordEventIgnored()
		return nil
	}

	if err := l.sink.Write(ctx, rec); err != nil {
		if !errors.Is(err, sink.ErrSinkFatal) {
			err = fmt.Errorf("%w: %w", sink.ErrSinkFatal, err)
		}
		return err
	}
	l.captured.Add(1)
	metrics.RecordEventCaptured(rec.Kind.String())

	// The observer may be gone or behind; capture carries on either way.
	switch err := l.relay.Send(display); {
	case err == nil:
		l.relayed.Add(1)
	case errors.Is(err, relay.ErrFull):
		l.full.Add(1)
	case errors.Is(err, relay.ErrDisconnected):
		l.disconnected.Add(1)
	default:
		l.logger.Debug(ctx, "relay send failed", logger.Error(err))
	}
	return nil
}

// Stats returns the current counters. It may be called from any goroutine.
func (l *Loop) Stats() Stats {
	return Stats{
		Captured:          l.captured.Load(),
		Ignored:           l.ignored.Load(),
		Relayed:           l.relayed.Load(),
		RelayFull:         l.full.Load(),
		RelayDisconnected: l.disconnected.Load(),
	}
}
