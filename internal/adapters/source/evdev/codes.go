package evdev

import "strconv"

// Event types and codes from linux/input-event-codes.h.
const (
	evSyn = 0x00
	evKey = 0x01
	evRel = 0x02

	synReport  = 0x00
	synDropped = 0x03

	relX = 0x00
	relY = 0x01

	btnMisc   = 0x100
	btnLeft   = 0x110
	btnRight  = 0x111
	btnMiddle = 0x112
	btnSide   = 0x113
	btnExtra  = 0x114
	keyOK     = 0x160

	keyReleased = 0
	keyPressed  = 1
	keyRepeated = 2
)

var keyNames = map[uint16]string{
	1: "Escape", 2: "1", 3: "2", 4: "3", 5: "4", 6: "5", 7: "6", 8: "7", 9: "8", 10: "9", 11: "0",
	12: "Minus", 13: "Equal", 14: "Backspace", 15: "Tab",
	16: "Q", 17: "W", 18: "E", 19: "R", 20: "T", 21: "Y", 22: "U", 23: "I", 24: "O", 25: "P",
	26: "LeftBrace", 27: "RightBrace", 28: "Enter", 29: "LeftCtrl",
	30: "A", 31: "S", 32: "D", 33: "F", 34: "G", 35: "H", 36: "J", 37: "K", 38: "L",
	39: "Semicolon", 40: "Apostrophe", 41: "Grave", 42: "LeftShift", 43: "Backslash",
	44: "Z", 45: "X", 46: "C", 47: "V", 48: "B", 49: "N", 50: "M",
	51: "Comma", 52: "Dot", 53: "Slash", 54: "RightShift", 55: "KPAsterisk",
	56: "LeftAlt", 57: "Space", 58: "CapsLock",
	59: "F1", 60: "F2", 61: "F3", 62: "F4", 63: "F5", 64: "F6", 65: "F7", 66: "F8", 67: "F9", 68: "F10",
	69: "NumLock", 70: "ScrollLock", 87: "F11", 88: "F12",
	96: "KPEnter", 97: "RightCtrl", 99: "SysRq", 100: "RightAlt",
	102: "Home", 103: "Up", 104: "PageUp", 105: "Left", 106: "Right", 107: "End",
	108: "Down", 109: "PageDown", 110: "Insert", 111: "Delete",
	113: "Mute", 114: "VolumeDown", 115: "VolumeUp", 119: "Pause",
	125: "LeftMeta", 126: "RightMeta", 127: "Compose",
}

var buttonNames = map[uint16]string{
	btnLeft:   "Left",
	btnRight:  "Right",
	btnMiddle: "Middle",
	btnSide:   "Side",
	btnExtra:  "Extra",
}

func isButton(code uint16) bool {
	return code >= btnMisc && code < keyOK
}

// KeyName names a KEY_* code, falling back to Unknown(code).
func KeyName(code uint16) string {
	if name, ok := keyNames[code]; ok {
		return name
	}
	return "Unknown(" + strconv.Itoa(int(code)) + ")"
}

// ButtonName names a BTN_* code, falling back to Unknown(code).
func ButtonName(code uint16) string {
	if name, ok := buttonNames[code]; ok {
		return name
	}
	return "Unknown(" + strconv.Itoa(int(code)) + ")"
}
