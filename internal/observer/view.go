// Package observer shows captured events to the user. It only ever reads
// display strings from the relay; it never touches the durable log.
package observer

// RollingView keeps every display string received this session, oldest
// first. It grows without bound; only the tail is rendered.
type RollingView struct {
	entries []string
}

// NewRollingView returns an empty view.
func NewRollingView() *RollingView {
	return &RollingView{}
}

// Append adds entries in order.
func (v *RollingView) Append(entries ...string) {
	v.entries = append(v.entries, entries...)
}

// Window returns a copy of the last n entries, or all of them when fewer
// than n exist.
func (v *RollingView) Window(n int) []string {
	if n <= 0 {
		return []string{}
	}
	start := len(v.entries) - n
	if start < 0 {
		start = 0
	}
	return append([]string(nil), v.entries[start:]...)
}

// Len returns the number of entries held.
func (v *RollingView) Len() int {
	return len(v.entries)
}
