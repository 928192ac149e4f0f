// Package sink implements the append-only CSV event log.
package sink

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/okian/inputtrail/internal/domain/model"
	"github.com/okian/inputtrail/pkg/logger"
	"github.com/okian/inputtrail/pkg/metrics"
)

const (
	defaultFileMode fs.FileMode = 0o644
	dirMode         fs.FileMode = 0o755
)

// Sink is the durable destination for records.
type Sink interface {
	// Write appends one record and makes it durable before returning.
	Write(ctx context.Context, rec model.Record) error
	Close() error
}

// CSVSink appends one CSV row per record to a single file.
// It has exactly one writer: the capture loop.
type CSVSink struct {
	path   string
	file   *os.File
	count  *countingWriter
	csv    *csv.Writer
	sync   bool
	mode   fs.FileMode
	logger logger.Logger

	written atomic.Int64
	closed  bool
}

// countingWriter tracks bytes that reach the file.
type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// Open prepares the log at path. A missing file is created and receives the
// header row; an existing file is opened for appending untouched.
func Open(ctx context.Context, path string, opts ...Option) (*CSVSink, error) {
	s := &CSVSink{
		path: path,
		sync: true,
		mode: defaultFileMode,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("sink")
	}

	if path == "" {
		return nil, fmt.Errorf("%w: empty path", ErrSinkFatal)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, dirMode); err != nil {
			metrics.RecordSinkError("open")
			return nil, fmt.Errorf("%w: ensure directory: %w", ErrSinkFatal, err)
		}
	}

	_, statErr := os.Stat(path)
	created := errors.Is(statErr, fs.ErrNotExist)
	if statErr != nil && !created {
		metrics.RecordSinkError("open")
		return nil, fmt.Errorf("%w: stat %s: %w", ErrSinkFatal, path, statErr)
	}

	flags := os.O_WRONLY | os.O_APPEND
	if created {
		flags |= os.O_CREATE | os.O_EXCL
	}
	f, err := os.OpenFile(path, flags, s.mode)
	if err != nil {
		metrics.RecordSinkError("open")
		return nil, fmt.Errorf("%w: open %s: %w", ErrSinkFatal, path, err)
	}

	s.file = f
	s.count = &countingWriter{w: f}
	s.csv = csv.NewWriter(s.count)

	if created {
		if err := s.writeRow(model.Header); err != nil {
			_ = f.Close()
			return nil, err
		}
		s.logger.Info(ctx, "created event log", logger.String("path", path))
	} else {
		s.logger.Info(ctx, "appending to existing event log", logger.String("path", path))
	}
	return s, nil
}

// Write appends rec and flushes it (and fsyncs when enabled) before returning.
func (s *CSVSink) Write(_ context.Context, rec model.Record) error { //nolint:gocritic // hugeParam: records are values
	if s.closed {
		return fmt.Errorf("%w: %w", ErrSinkFatal, ErrClosed)
	}

	start := time.Now()
	before := s.count.n
	if err := s.writeRow(rec.Row()); err != nil {
		return err
	}
	s.written.Add(1)
	metrics.RecordSinkWrite(int(s.count.n-before), float64(time.Since(start).Microseconds())/1000)
	return nil
}

func (s *CSVSink) writeRow(row []string) error {
	if err := s.csv.Write(row); err != nil {
		metrics.RecordSinkError("write")
		return fmt.Errorf("%w: write row: %w", ErrSinkFatal, err)
	}
	s.csv.Flush()
	if err := s.csv.Error(); err != nil {
		metrics.RecordSinkError("flush")
		return fmt.Errorf("%w: flush row: %w", ErrSinkFatal, err)
	}
	if s.sync {
		if err := s.file.Sync(); err != nil {
			metrics.RecordSinkError("sync")
			return fmt.Errorf("%w: sync: %w", ErrSinkFatal, err)
		}
	}
	return nil
}

// Written returns the number of records appended since Open.
// It may be read from any goroutine.
func (s *CSVSink) Written() int64 {
	return s.written.Load()
}

// Path returns the log location.
func (s *CSVSink) Path() string {
	return s.path
}

// Close flushes and closes the file. It is safe to call more than once.
func (s *CSVSink) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.csv.Flush()
	flushErr := s.csv.Error()
	if err := s.file.Close(); err != nil {
		return fmt.Errorf("%w: close: %w", ErrSinkFatal, err)
	}
	if flushErr != nil {
		return fmt.Errorf("%w: flush on close: %w", ErrSinkFatal, flushErr)
	}
	return nil
}
