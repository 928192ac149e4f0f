// Package source defines how platform input reaches the capture loop.
package source

import (
	"context"

	"github.com/okian/inputtrail/internal/domain/model"
)

// Emit receives one raw event. A non-nil error stops the stream and is
// returned from Stream unchanged.
type Emit func(model.RawEvent) error

// EventSource delivers raw platform events, one at a time, in delivery order.
// Stream blocks until ctx is done, emit fails, or the platform source fails.
// emit is always called from the goroutine that called Stream.
type EventSource interface {
	Stream(ctx context.Context, emit Emit) error
}

// EventSourceFunc adapts a function literal to the EventSource interface.
type EventSourceFunc func(ctx context.Context, emit Emit) error

// Stream calls the underlying function.
func (f EventSourceFunc) Stream(ctx context.Context, emit Emit) error {
	return f(ctx, emit)
}
