package service

import "errors"

// ErrNoSource is returned by Start when no event source was configured.
var ErrNoSource = errors.New("no event source configured")
