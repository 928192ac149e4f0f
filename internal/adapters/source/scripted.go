package source

import (
	"context"
	"time"

	"github.com/okian/inputtrail/internal/domain/model"
)

// ScriptedOption configures a Scripted source.
type ScriptedOption func(*Scripted)

// WithInterval pauses between events.
func WithInterval(d time.Duration) ScriptedOption {
	return func(s *Scripted) {
		if d > 0 {
			s.interval = d
		}
	}
}

// WithRepeat replays the script until ctx is done.
func WithRepeat() ScriptedOption {
	return func(s *Scripted) {
		s.repeat = true
	}
}

// WithHold keeps Stream blocked after the script ends, like a real device
// that has gone quiet.
func WithHold() ScriptedOption {
	return func(s *Scripted) {
		s.hold = true
	}
}

// WithRestamp replaces every event time with the clock's reading at emit time.
func WithRestamp(clock func() time.Time) ScriptedOption {
	return func(s *Scripted) {
		s.clock = clock
	}
}

// Scripted replays a fixed list of raw events. Without options it emits them
// back to back and returns nil.
type Scripted struct {
	events   []model.RawEvent
	interval time.Duration
	repeat   bool
	hold     bool
	clock    func() time.Time
}

// NewScripted builds a source over a copy of events.
func NewScripted(events []model.RawEvent, opts ...ScriptedOption) *Scripted {
	s := &Scripted{events: append([]model.RawEvent(nil), events...)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Stream implements EventSource.
func (s *Scripted) Stream(ctx context.Context, emit Emit) error {
	var ticker *time.Ticker
	if s.interval > 0 {
		ticker = time.NewTicker(s.interval)
		defer ticker.Stop()
	}

	for {
		for _, ev := range s.events {
			if ticker != nil {
				select {
				case <-ctx.Done():
				case <-ticker.C:
				}
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			if s.clock != nil {
				ev.Time = s.clock()
			}
			if err := emit(ev); err != nil {
				return err
			}
		}
		if !s.repeat || len(s.events) == 0 {
			break
		}
	}

	if s.hold {
		<-ctx.Done()
		return ctx.Err()
	}
	return nil
}

// DemoScript is a short session: the pointer wanders, clicks and a word is
// typed. Times are left zero so the normalizer stamps them.
func DemoScript() []model.RawEvent {
	var out []model.RawEvent
	for i := 0; i < 8; i++ {
		out = append(out, model.RawEvent{
			Kind: model.RawMouseMove,
			X:    float64(100 + 25*i),
			Y:    float64(200 + 10*i),
		})
	}
	out = append(out,
		model.RawEvent{Kind: model.RawButtonPress, Button: "Left"},
		model.RawEvent{Kind: model.RawButtonRelease, Button: "Left"},
		model.RawEvent{Kind: model.RawWheel},
	)
	for _, key := range []string{"H", "e", "l", "l", "o"} {
		out = append(out,
			model.RawEvent{Kind: model.RawKeyPress, Key: key},
			model.RawEvent{Kind: model.RawKeyTyped, Key: key},
			model.RawEvent{Kind: model.RawKeyRelease, Key: key},
		)
	}
	out = append(out,
		model.RawEvent{Kind: model.RawMouseMove, X: 40, Y: 40},
		model.RawEvent{Kind: model.RawButtonPress, Button: "Right"},
		model.RawEvent{Kind: model.RawButtonRelease, Button: "Right"},
	)
	return out
}
