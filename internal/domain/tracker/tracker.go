// Package tracker keeps the last known pointer position for button events
// that arrive without their own coordinates.
package tracker

// Position is a screen coordinate pair.
type Position struct {
	X float64
	Y float64
}

// Tracker is a single-cell position cache starting at (0, 0).
//
// It is not safe for concurrent use: the capture loop owns it and is the only
// goroutine that ever reads or writes it.
type Tracker struct {
	last Position
}

// New returns a tracker at the origin.
func New() *Tracker {
	return &Tracker{}
}

// Update records the most recent pointer position.
func (t *Tracker) Update(x, y float64) {
	t.last = Position{X: x, Y: y}
}

// Current returns the last recorded position.
func (t *Tracker) Current() Position {
	return t.last
}
