package relay

import "errors"

// Sentinel errors returned by Send.
var (
	ErrDisconnected = errors.New("relay consumer disconnected")
	ErrFull         = errors.New("relay full")
)
