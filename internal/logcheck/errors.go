package logcheck

import "errors"

// Sentinel kinds for log problems.
var (
	ErrMissingHeader = errors.New("missing or wrong header")
	ErrOutOfOrder    = errors.New("timestamp goes backwards")
	ErrUnreadable    = errors.New("unreadable CSV")
	ErrProblems      = errors.New("event log has problems")
)
