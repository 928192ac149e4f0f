// Package uiohook maps libuiohook event codes, as delivered by
// github.com/robotn/gohook, onto raw capture events. It has no cgo
// dependency so the mapping can be tested anywhere.
package uiohook

import (
	"strconv"

	"github.com/okian/inputtrail/internal/domain/model"
)

// Event kinds in libuiohook order.
const (
	HookEnabled  uint8 = 1
	HookDisabled uint8 = 2
	KeyDown      uint8 = 3 // character typed; follows KeyHold
	KeyHold      uint8 = 4 // physical press
	KeyUp        uint8 = 5
	MouseUp      uint8 = 6 // click synthesized after release
	MouseHold    uint8 = 7 // physical press
	MouseDown    uint8 = 8 // physical release
	MouseMove    uint8 = 9
	MouseDrag    uint8 = 10
	MouseWheel   uint8 = 11
)

// Kind translates a libuiohook kind. Typed characters, synthesized clicks and
// wheel turns have no record of their own.
func Kind(kind uint8) model.RawKind {
	switch kind {
	case KeyHold:
		return model.RawKeyPress
	case KeyUp:
		return model.RawKeyRelease
	case KeyDown:
		return model.RawKeyTyped
	case MouseHold:
		return model.RawButtonPress
	case MouseDown:
		return model.RawButtonRelease
	case MouseMove, MouseDrag:
		return model.RawMouseMove
	case MouseWheel:
		return model.RawWheel
	default:
		return model.RawOther
	}
}

// Button names a libuiohook button number.
func Button(n uint16) string {
	switch n {
	case 1:
		return "Left"
	case 2:
		return "Right"
	case 3:
		return "Middle"
	default:
		return "Unknown(" + strconv.Itoa(int(n)) + ")"
	}
}

// Key names a key. keychar is the hook's rawcode lookup; an empty lookup
// falls back to the numeric code.
func Key(keychar string, rawcode uint16) string {
	if keychar == "" || keychar == "error" {
		return "Unknown(" + strconv.Itoa(int(rawcode)) + ")"
	}
	return keychar
}
