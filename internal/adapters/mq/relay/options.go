package relay

// Option applies a configuration option to the Relay.
type Option func(*Relay)

// WithCapacity bounds the number of queued messages. Zero or a negative
// value keeps the relay unbounded.
func WithCapacity(capacity int) Option {
	return func(r *Relay) {
		if capacity > 0 {
			r.capacity = capacity
		}
	}
}
