package evdev_test

import (
	"encoding/binary"

	"github.com/okian/inputtrail/internal/adapters/source/evdev"
)

func encode(size int, sec, usec int64, typ, code uint16, value int32) []byte {
	b := make([]byte, size)
	rest := b[8:]
	if size == evdev.EventSize64 {
		binary.NativeEndian.PutUint64(b[0:8], uint64(sec))
		binary.NativeEndian.PutUint64(b[8:16], uint64(usec))
		rest = b[16:]
	} else {
		binary.NativeEndian.PutUint32(b[0:4], uint32(sec))
		binary.NativeEndian.PutUint32(b[4:8], uint32(usec))
	}
	binary.NativeEndian.PutUint16(rest[0:2], typ)
	binary.NativeEndian.PutUint16(rest[2:4], code)
	binary.NativeEndian.PutUint32(rest[4:8], uint32(value))
	return b
}

func frames(size int, events ...[4]int64) []byte {
	var out []byte
	for i, ev := range events {
		out = append(out, encode(size, 1700000000, int64(i)*1000, uint16(ev[0]), uint16(ev[1]), int32(ev[2]))...)
	}
	return out
}
