package sink

import (
	"io/fs"

	"github.com/okian/inputtrail/pkg/logger"
)

// Option applies a configuration option to the CSVSink.
type Option func(*CSVSink)

// WithSync controls the fsync after every row. It defaults to true; tests
// and throughput benchmarks turn it off.
func WithSync(enabled bool) Option {
	return func(s *CSVSink) {
		s.sync = enabled
	}
}

// WithFileMode sets the permission bits used when the log is created.
func WithFileMode(mode fs.FileMode) Option {
	return func(s *CSVSink) {
		if mode != 0 {
			s.mode = mode
		}
	}
}

// WithLogger sets a custom logger for the sink.
func WithLogger(l logger.Logger) Option {
	return func(s *CSVSink) {
		if l != nil {
			s.logger = l
		}
	}
}
