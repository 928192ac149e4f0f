// Package normalize maps raw platform events onto records and display strings.
package normalize

import (
	"time"

	"github.com/okian/inputtrail/internal/domain/model"
	"github.com/okian/inputtrail/internal/domain/tracker"
)

// Option applies a configuration option to the Normalizer.
type Option func(*Normalizer)

// WithClock sets the clock used for raw events that carry no timestamp.
func WithClock(clock func() time.Time) Option {
	return func(n *Normalizer) {
		if clock != nil {
			n.clock = clock
		}
	}
}

// Normalizer turns one raw event into at most one record and display string.
// It shares the capture loop's single-goroutine ownership of the tracker.
type Normalizer struct {
	tracker *tracker.Tracker
	clock   func() time.Time
}

// New creates a normalizer bound to t. A nil tracker gets a fresh one.
func New(t *tracker.Tracker, opts ...Option) *Normalizer {
	if t == nil {
		t = tracker.New()
	}
	n := &Normalizer{
		tracker: t,
		clock:   time.Now,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalize applies the per-kind policy. ok is false for raw kinds that
// produce nothing (wheel, typed characters, anything unrecognized).
func (n *Normalizer) Normalize(raw model.RawEvent) (rec model.Record, display string, ok bool) { //nolint:gocritic // hugeParam: raw events are passed by value from the source callback
	ts := raw.Time
	if ts.IsZero() {
		ts = n.clock()
	}
	rec.Timestamp = ts.UnixMilli()

	switch raw.Kind {
	case model.RawKeyPress:
		rec.Kind, rec.Key = model.KeyPress, raw.Key
	case model.RawKeyRelease:
		rec.Kind, rec.Key = model.KeyRelease, raw.Key
	case model.RawMouseMove:
		// Update before building the record so later button events see it.
		n.tracker.Update(raw.X, raw.Y)
		rec.Kind, rec.X, rec.Y = model.MouseMove, raw.X, raw.Y
	case model.RawButtonPress, model.RawButtonRelease:
		rec.Kind = model.ButtonPress
		if raw.Kind == model.RawButtonRelease {
			rec.Kind = model.ButtonRelease
		}
		pos := n.tracker.Current()
		rec.Button, rec.X, rec.Y = raw.Button, pos.X, pos.Y
	default:
		return model.Record{}, "", false
	}
	return rec, rec.Display(), true
}
