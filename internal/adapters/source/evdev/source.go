// Package evdev reads keyboards and mice straight from /dev/input on Linux.
// It works without a display server, so it also covers Wayland sessions.
// The process needs read access to the device nodes (usually the input group).
package evdev

import (
	"github.com/okian/inputtrail/pkg/logger"
)

// DefaultDevices matches every event device node.
const DefaultDevices = "/dev/input/event*"

// Source streams events from every device matching a glob.
type Source struct {
	pattern   string
	startX    float64
	startY    float64
	maxX      float64
	maxY      float64
	eventSize int
	logger    logger.Logger
}

// Option configures the evdev source.
type Option func(*Source)

// WithDevices sets the device glob.
func WithDevices(pattern string) Option {
	return func(s *Source) {
		if pattern != "" {
			s.pattern = pattern
		}
	}
}

// WithStart sets the pointer position before the first movement.
func WithStart(x, y float64) Option {
	return func(s *Source) {
		s.startX, s.startY = x, y
	}
}

// WithBounds clamps the accumulated pointer to a width by height screen.
func WithBounds(width, height float64) Option {
	return func(s *Source) {
		s.maxX, s.maxY = width, height
	}
}

// WithLogger sets a custom logger for the source.
func WithLogger(l logger.Logger) Option {
	return func(s *Source) {
		if l != nil {
			s.logger = l
		}
	}
}

// New returns an evdev source.
func New(opts ...Option) *Source {
	s := &Source{
		pattern:   DefaultDevices,
		eventSize: NativeEventSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("evdev")
	}
	return s
}
