package api

import "errors"

// Sentinel kinds for API errors.
var (
	ErrServe            = errors.New("ops server failed")
	ErrMethodNotAllowed = errors.New("method not allowed")
)
