package evdev

import (
	"encoding/binary"
	"strconv"
	"time"
)

// Sizes of struct input_event with a 64-bit and a 32-bit timeval.
const (
	EventSize64 = 24
	EventSize32 = 16
)

// NativeEventSize is the input_event size for this architecture.
const NativeEventSize = EventSize32 + (strconv.IntSize/64)*(EventSize64-EventSize32)

// InputEvent is one decoded struct input_event.
type InputEvent struct {
	Time  time.Time
	Type  uint16
	Code  uint16
	Value int32
}

// Parser splits a byte stream into input events. Partial events are kept
// until the rest arrives.
type Parser struct {
	size int
	buf  []byte
}

// NewParser returns a parser for events of the given size. Any size other
// than EventSize32 is treated as EventSize64.
func NewParser(size int) *Parser {
	if size != EventSize32 {
		size = EventSize64
	}
	return &Parser{size: size}
}

// Feed appends chunk and returns every complete event it now holds.
func (p *Parser) Feed(chunk []byte) []InputEvent {
	p.buf = append(p.buf, chunk...)

	var out []InputEvent
	for len(p.buf) >= p.size {
		raw := p.buf[:p.size]
		p.buf = p.buf[p.size:]
		out = append(out, p.decode(raw))
	}
	if len(p.buf) == 0 {
		p.buf = nil
	}
	return out
}

func (p *Parser) decode(raw []byte) InputEvent {
	var sec, usec int64
	var rest []byte
	if p.size == EventSize64 {
		sec = int64(binary.NativeEndian.Uint64(raw[0:8]))
		usec = int64(binary.NativeEndian.Uint64(raw[8:16]))
		rest = raw[16:]
	} else {
		sec = int64(int32(binary.NativeEndian.Uint32(raw[0:4])))
		usec = int64(int32(binary.NativeEndian.Uint32(raw[4:8])))
		rest = raw[8:]
	}
	return InputEvent{
		Time:  time.Unix(sec, usec*int64(time.Microsecond)),
		Type:  binary.NativeEndian.Uint16(rest[0:2]),
		Code:  binary.NativeEndian.Uint16(rest[2:4]),
		Value: int32(binary.NativeEndian.Uint32(rest[4:8])),
	}
}
