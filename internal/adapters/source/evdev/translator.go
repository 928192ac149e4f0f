package evdev

import (
	"github.com/okian/inputtrail/internal/domain/model"
)

// Translator turns evdev frames into raw capture events. Relative motion is
// summed into an absolute pointer position and reported once per
// SYN_REPORT. It is used from one goroutine only.
type Translator struct {
	x, y     float64
	maxX     float64
	maxY     float64
	moved    bool
	dropping bool
}

// NewTranslator starts the pointer at (x, y). Positive maxX and maxY clamp
// the pointer to a screen; zero leaves that axis unbounded above.
func NewTranslator(x, y, maxX, maxY float64) *Translator {
	return &Translator{x: x, y: y, maxX: maxX, maxY: maxY}
}

// Translate consumes one input event and returns the raw events it completes.
func (t *Translator) Translate(ev InputEvent) []model.RawEvent {
	if t.dropping {
		// After SYN_DROPPED everything up to the next report is stale.
		if ev.Type == evSyn && ev.Code == synReport {
			t.dropping = false
			t.moved = false
		}
		return nil
	}

	switch ev.Type {
	case evSyn:
		switch ev.Code {
		case synDropped:
			t.dropping = true
		case synReport:
			if t.moved {
				t.moved = false
				return []model.RawEvent{{Kind: model.RawMouseMove, Time: ev.Time, X: t.x, Y: t.y}}
			}
		}
	case evRel:
		switch ev.Code {
		case relX:
			t.x = clamp(t.x+float64(ev.Value), t.maxX)
			t.moved = true
		case relY:
			t.y = clamp(t.y+float64(ev.Value), t.maxY)
			t.moved = true
		}
	case evKey:
		return t.key(ev)
	}
	return nil
}

func (t *Translator) key(ev InputEvent) []model.RawEvent {
	raw := model.RawEvent{Time: ev.Time}
	button := isButton(ev.Code)

	switch ev.Value {
	case keyPressed, keyRepeated:
		if button {
			if ev.Value == keyRepeated {
				return nil
			}
			raw.Kind = model.RawButtonPress
		} else {
			raw.Kind = model.RawKeyPress
		}
	case keyReleased:
		if button {
			raw.Kind = model.RawButtonRelease
		} else {
			raw.Kind = model.RawKeyRelease
		}
	default:
		return nil
	}

	if button {
		raw.Button = ButtonName(ev.Code)
	} else {
		raw.Key = KeyName(ev.Code)
	}
	return []model.RawEvent{raw}
}

// Position returns the accumulated pointer position.
func (t *Translator) Position() (x, y float64) {
	return t.x, t.y
}

func clamp(v, maxV float64) float64 {
	if v < 0 {
		return 0
	}
	if maxV > 0 && v > maxV {
		return maxV
	}
	return v
}
