package source

import "errors"

// ErrSourceFatal marks a platform source that could not start or stopped
// delivering events. Capture cannot continue once it is returned.
var ErrSourceFatal = errors.New("input source failure")

// ErrUnsupported is wrapped by sources that cannot run on this platform.
var ErrUnsupported = errors.New("source not supported on this platform")
