// Package relay hands display strings from the capture goroutine to the
// observer without ever blocking the producer.
package relay

import (
	"sync"

	"github.com/okian/inputtrail/pkg/metrics"
)

// Sender is the producer side used by the capture loop.
type Sender interface {
	Send(msg string) error
}

// Receiver is the consumer side used by the observer.
type Receiver interface {
	TryRecv() (string, bool)
	Drain() []string
	Close()
}

// Relay is a FIFO with one producer and one consumer. It is unbounded
// unless WithCapacity is given.
type Relay struct {
	mu       sync.Mutex
	queue    []string
	capacity int
	closed   bool
}

// New creates an open relay.
func New(opts ...Option) *Relay {
	r := &Relay{}
	for _, opt := range opts {
		opt(r)
	}
	metrics.UpdateRelayDepth(0)
	return r
}

// Send queues msg for the consumer. It returns ErrDisconnected after Close
// and ErrFull when a capacity is set and reached; msg is dropped in both cases.
func (r *Relay) Send(msg string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		metrics.RecordRelayDrop("disconnected")
		return ErrDisconnected
	}
	if r.capacity > 0 && len(r.queue) >= r.capacity {
		metrics.RecordRelayDrop("full")
		return ErrFull
	}

	r.queue = append(r.queue, msg)
	metrics.RecordRelaySend()
	metrics.UpdateRelayDepth(len(r.queue))
	return nil
}

// TryRecv returns the oldest queued message, if any.
func (r *Relay) TryRecv() (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.queue) == 0 {
		return "", false
	}
	msg := r.queue[0]
	r.queue[0] = ""
	r.queue = r.queue[1:]
	if len(r.queue) == 0 {
		r.queue = nil
	}
	metrics.UpdateRelayDepth(len(r.queue))
	return msg, true
}

// Drain returns everything currently queued, oldest first. The result is
// never nil.
func (r *Relay) Drain() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := r.queue
	r.queue = nil
	metrics.UpdateRelayDepth(0)
	if out == nil {
		return []string{}
	}
	return out
}

// Close hangs up the consumer side. Queued messages are discarded and every
// later Send fails with ErrDisconnected.
func (r *Relay) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.closed = true
	r.queue = nil
	metrics.UpdateRelayDepth(0)
}

// IsClosed reports whether the consumer has hung up.
func (r *Relay) IsClosed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}

// Len returns the current number of queued messages.
func (r *Relay) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.queue)
}
