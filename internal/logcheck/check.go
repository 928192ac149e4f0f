// Package logcheck verifies a durable event log: the header, that every row
// decodes, and that timestamps never go backwards.
package logcheck

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/okian/inputtrail/internal/domain/model"
	"github.com/okian/inputtrail/pkg/logger"
)

// DefaultMaxProblems caps how many problems a report keeps.
const DefaultMaxProblems = 20

// Problem is one defect, located by CSV line.
type Problem struct {
	Line int
	Err  error
}

func (p Problem) String() string {
	return fmt.Sprintf("line %d: %v", p.Line, p.Err)
}

// Report summarizes one log.
type Report struct {
	Rows           int
	ByKind         map[model.Kind]int
	FirstTimestamp int64
	LastTimestamp  int64
	Problems       []Problem
	TotalProblems  int
}

// OK reports whether no problem was found.
func (r *Report) OK() bool {
	return r.TotalProblems == 0
}

func (r *Report) add(line int, err error, limit int) {
	r.TotalProblems++
	if len(r.Problems) < limit {
		r.Problems = append(r.Problems, Problem{Line: line, Err: err})
	}
}

// Option configures a check.
type Option func(*checker)

// WithMaxProblems sets how many problems are kept in the report.
func WithMaxProblems(n int) Option {
	return func(c *checker) {
		if n > 0 {
			c.maxProblems = n
		}
	}
}

// WithLogger sets a custom logger for the check.
func WithLogger(l logger.Logger) Option {
	return func(c *checker) {
		if l != nil {
			c.logger = l
		}
	}
}

type checker struct {
	maxProblems int
	logger      logger.Logger
}

// CheckFile opens path and checks it.
func CheckFile(ctx context.Context, path string, opts ...Option) (*Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open event log: %w", err)
	}
	defer f.Close()
	return Check(ctx, f, opts...)
}

// Check reads a log from r. Defects in the log go into the report; only a
// failure to read r is returned as an error.
func Check(ctx context.Context, r io.Reader, opts ...Option) (*Report, error) {
	c := &checker{maxProblems: DefaultMaxProblems}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = logger.Get().Named("logcheck")
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	report := &Report{ByKind: make(map[model.Kind]int)}
	first := true

	for {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			report.add(parseErr.Line, fmt.Errorf("%w: %w", ErrUnreadable, parseErr.Err), c.maxProblems)
			first = false
			continue
		}
		if err != nil {
			return report, fmt.Errorf("read event log: %w", err)
		}
		line, _ := cr.FieldPos(0)

		if first {
			first = false
			if slices.Equal(row, model.Header) {
				continue
			}
			// The first line may still be a valid record.
			report.add(line, ErrMissingHeader, c.maxProblems)
		}

		rec, err := model.ParseRow(row)
		if err != nil {
			report.add(line, err, c.maxProblems)
			continue
		}

		report.Rows++
		report.ByKind[rec.Kind]++
		switch {
		case report.Rows == 1:
			report.FirstTimestamp = rec.Timestamp
			report.LastTimestamp = rec.Timestamp
		case rec.Timestamp < report.LastTimestamp:
			report.add(line, fmt.Errorf("%w: %d after %d", ErrOutOfOrder, rec.Timestamp, report.LastTimestamp), c.maxProblems)
		default:
			report.LastTimestamp = rec.Timestamp
		}
	}

	if first {
		report.add(1, ErrMissingHeader, c.maxProblems)
	}

	c.logger.Debug(ctx, "event log checked",
		logger.Int("rows", report.Rows),
		logger.Int("problems", report.TotalProblems),
	)
	return report, nil
}

// WriteSummary prints a human readable report.
func WriteSummary(w io.Writer, r *Report, verbose bool) error {
	var err error
	printf := func(format string, args ...any) {
		if err == nil {
			_, err = fmt.Fprintf(w, format, args...)
		}
	}

	printf("rows: %d\n", r.Rows)
	for _, kind := range model.Kinds() {
		if n := r.ByKind[kind]; n > 0 || verbose {
			printf("  %-15s %d\n", kind.String(), n)
		}
	}
	if r.Rows > 0 {
		printf("span: %d .. %d (%d ms)\n", r.FirstTimestamp, r.LastTimestamp, r.LastTimestamp-r.FirstTimestamp)
	}

	if r.OK() {
		printf("ok\n")
		return err
	}
	printf("problems: %d\n", r.TotalProblems)
	for _, p := range r.Problems {
		printf("  %s\n", p)
	}
	if hidden := r.TotalProblems - len(r.Problems); hidden > 0 {
		printf("  ... %d more\n", hidden)
	}
	return err
}
