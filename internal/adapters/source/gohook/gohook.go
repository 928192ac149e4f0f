// Package gohook captures global keyboard and mouse input through
// github.com/robotn/gohook (libuiohook). It needs cgo and a desktop session
// (X11, macOS or Windows); Wayland sessions should use the evdev source.
package gohook

import (
	"context"
	"fmt"

	hook "github.com/robotn/gohook"

	"github.com/okian/inputtrail/internal/adapters/source"
	"github.com/okian/inputtrail/internal/adapters/source/uiohook"
	"github.com/okian/inputtrail/internal/domain/model"
	"github.com/okian/inputtrail/pkg/logger"
)

// Source is the process-wide global hook. Only one may stream at a time.
type Source struct {
	logger logger.Logger
}

// Option configures the hook source.
type Option func(*Source)

// WithLogger sets a custom logger for the source.
func WithLogger(l logger.Logger) Option {
	return func(s *Source) {
		if l != nil {
			s.logger = l
		}
	}
}

// New returns a hook source.
func New(opts ...Option) *Source {
	s := &Source{}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("gohook")
	}
	return s
}

// Stream installs the hook and forwards events until ctx is done.
func (s *Source) Stream(ctx context.Context, emit source.Emit) error {
	events := hook.Start()
	defer hook.End()
	s.logger.Info(ctx, "global hook installed")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return fmt.Errorf("%w: hook channel closed", source.ErrSourceFatal)
			}
			if err := emit(convert(ev)); err != nil {
				return err
			}
		}
	}
}

func convert(ev hook.Event) model.RawEvent { //nolint:gocritic // hugeParam: hook delivers values
	raw := model.RawEvent{
		Kind: uiohook.Kind(ev.Kind),
		Time: ev.When,
	}
	switch raw.Kind {
	case model.RawKeyPress, model.RawKeyRelease, model.RawKeyTyped:
		raw.Key = uiohook.Key(hook.RawcodetoKeychar(ev.Rawcode), ev.Rawcode)
	case model.RawButtonPress, model.RawButtonRelease:
		raw.Button = uiohook.Button(ev.Button)
	case model.RawMouseMove:
		raw.X = float64(ev.X)
		raw.Y = float64(ev.Y)
	}
	return raw
}
