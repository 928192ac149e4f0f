package model

import "time"

// RawKind classifies events as delivered by a platform source adapter.
type RawKind uint8

// Raw kinds. Only the first five produce records.
const (
	RawOther RawKind = iota
	RawKeyPress
	RawKeyRelease
	RawMouseMove
	RawButtonPress
	RawButtonRelease
	RawWheel
	RawKeyTyped
)

func (k RawKind) String() string {
	switch k {
	case RawKeyPress:
		return "key_press"
	case RawKeyRelease:
		return "key_release"
	case RawMouseMove:
		return "mouse_move"
	case RawButtonPress:
		return "button_press"
	case RawButtonRelease:
		return "button_release"
	case RawWheel:
		return "wheel"
	case RawKeyTyped:
		return "key_typed"
	default:
		return "other"
	}
}

// RawEvent is a platform-neutral rendering of one native input event.
// Adapters fill Key for key kinds, Button for button kinds and X/Y for
// pointer motion; button events from most hooks also carry a position,
// which the normalizer deliberately ignores in favour of the tracker.
type RawEvent struct {
	Kind   RawKind
	Time   time.Time
	Key    string
	Button string
	X      float64
	Y      float64
}
