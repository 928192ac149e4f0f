package model

import "errors"

// Sentinel kinds for row decoding. These allow errors.Is from callers.
var (
	ErrArity           = errors.New("row must have six fields")
	ErrUnknownKind     = errors.New("unknown event_type")
	ErrMalformedField  = errors.New("malformed field")
	ErrUnexpectedField = errors.New("field not used by event_type")
)
