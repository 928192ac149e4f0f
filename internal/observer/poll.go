package observer

import "github.com/okian/inputtrail/pkg/metrics"

// Drainer is the consumer side of the relay.
type Drainer interface {
	Drain() []string
}

// Poll moves everything currently queued into the view and returns how many
// entries arrived. It never waits for new messages.
func Poll(src Drainer, view *RollingView) int {
	msgs := src.Drain()
	if len(msgs) == 0 {
		return 0
	}
	view.Append(msgs...)
	metrics.RecordObserverDrain(len(msgs))
	metrics.UpdateViewEntries(view.Len())
	return len(msgs)
}
