package sink

import "errors"

// ErrSinkFatal marks any failure to open, write, flush or sync the log.
// Capture cannot continue once it is returned.
var ErrSinkFatal = errors.New("durable log failure")

// ErrClosed is returned by Write after Close.
var ErrClosed = errors.New("sink closed")
