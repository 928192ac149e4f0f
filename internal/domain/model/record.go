// Package model contains the captured event record and its CSV encoding.
package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind is the closed set of captured event types.
type Kind uint8

// Record kinds. The zero value is not a valid kind.
const (
	KeyPress Kind = iota + 1
	KeyRelease
	MouseMove
	ButtonPress
	ButtonRelease
)

// Column count of every encoded row.
const Columns = 6

// Header is the first row of a freshly created log.
var Header = []string{"timestamp", "event_type", "key", "button", "x", "y"} //nolint:gochecknoglobals // fixed wire header

var kindNames = map[Kind]string{ //nolint:gochecknoglobals // fixed wire enumeration
	KeyPress:      "key_press",
	KeyRelease:    "key_release",
	MouseMove:     "mouse_move",
	ButtonPress:   "button_press",
	ButtonRelease: "button_release",
}

var kindLabels = map[Kind]string{ //nolint:gochecknoglobals // display labels
	KeyPress:      "Key Press",
	KeyRelease:    "Key Release",
	MouseMove:     "Mouse Move",
	ButtonPress:   "Button Press",
	ButtonRelease: "Button Release",
}

// Kinds lists every valid kind in wire order.
func Kinds() []Kind {
	return []Kind{KeyPress, KeyRelease, MouseMove, ButtonPress, ButtonRelease}
}

// String returns the event_type column value.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown(" + strconv.Itoa(int(k)) + ")"
}

// Valid reports whether k is one of the five record kinds.
func (k Kind) Valid() bool {
	_, ok := kindNames[k]
	return ok
}

// ParseKind maps an event_type column value back to its Kind.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// HasKey reports whether records of this kind carry a key.
func (k Kind) HasKey() bool { return k == KeyPress || k == KeyRelease }

// HasButton reports whether records of this kind carry a button.
func (k Kind) HasButton() bool { return k == ButtonPress || k == ButtonRelease }

// HasPosition reports whether records of this kind carry coordinates.
func (k Kind) HasPosition() bool { return k == MouseMove || k.HasButton() }

// Record is one captured input event.
// Only the fields relevant to Kind are meaningful; the rest stay zero.
type Record struct {
	Timestamp int64 // milliseconds since the Unix epoch
	Kind      Kind
	Key       string
	Button    string
	X         float64
	Y         float64
}

// FormatFloat renders coordinates the way the log and the display do:
// shortest decimal form, never an exponent.
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Row encodes r as six positional fields; unused columns are empty.
func (r Record) Row() []string {
	row := make([]string, Columns)
	row[0] = strconv.FormatInt(r.Timestamp, 10)
	row[1] = r.Kind.String()
	if r.Kind.HasKey() {
		row[2] = r.Key
	}
	if r.Kind.HasButton() {
		row[3] = r.Button
	}
	if r.Kind.HasPosition() {
		row[4] = FormatFloat(r.X)
		row[5] = FormatFloat(r.Y)
	}
	return row
}

// ParseRow decodes one row written by Row.
func ParseRow(row []string) (Record, error) {
	if len(row) != Columns {
		return Record{}, fmt.Errorf("%w: got %d fields", ErrArity, len(row))
	}

	ts, err := strconv.ParseInt(row[0], 10, 64)
	if err != nil {
		return Record{}, fmt.Errorf("%w: timestamp %q", ErrMalformedField, row[0])
	}
	kind, err := ParseKind(row[1])
	if err != nil {
		return Record{}, err
	}

	rec := Record{Timestamp: ts, Kind: kind}

	if err := expectField(row[2], kind.HasKey(), "key"); err != nil {
		return Record{}, err
	}
	rec.Key = row[2]

	if err := expectField(row[3], kind.HasButton(), "button"); err != nil {
		return Record{}, err
	}
	rec.Button = row[3]

	if !kind.HasPosition() {
		if row[4] != "" || row[5] != "" {
			return Record{}, fmt.Errorf("%w: coordinates on %s", ErrUnexpectedField, kind)
		}
		return rec, nil
	}
	if rec.X, err = strconv.ParseFloat(row[4], 64); err != nil {
		return Record{}, fmt.Errorf("%w: x %q", ErrMalformedField, row[4])
	}
	if rec.Y, err = strconv.ParseFloat(row[5], 64); err != nil {
		return Record{}, fmt.Errorf("%w: y %q", ErrMalformedField, row[5])
	}
	return rec, nil
}

// expectField checks that a text column is populated exactly when required.
// Platform identifiers are never empty, so an empty required field is malformed.
func expectField(v string, required bool, name string) error {
	switch {
	case required && v == "":
		return fmt.Errorf("%w: missing %s", ErrMalformedField, name)
	case !required && v != "":
		return fmt.Errorf("%w: %s", ErrUnexpectedField, name)
	}
	return nil
}

// Display renders the one-line human summary relayed to the observer.
func (r Record) Display() string {
	var b strings.Builder
	b.WriteString(strconv.FormatInt(r.Timestamp, 10))
	b.WriteString(": ")
	b.WriteString(kindLabels[r.Kind])
	b.WriteString(": ")

	switch r.Kind {
	case KeyPress, KeyRelease:
		b.WriteString(r.Key)
	case MouseMove:
		fmt.Fprintf(&b, "x=%s, y=%s", FormatFloat(r.X), FormatFloat(r.Y))
	case ButtonPress, ButtonRelease:
		fmt.Fprintf(&b, "%s at x=%s, y=%s", r.Button, FormatFloat(r.X), FormatFloat(r.Y))
	}
	return b.String()
}
