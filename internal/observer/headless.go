package observer

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/okian/inputtrail/pkg/metrics"
)

// Headless polls the relay on a timer and writes each new display string as
// a line to w. It returns when ctx ends (nil) or when capture reports its
// terminal result on done; queued entries are flushed first in both cases.
func Headless(ctx context.Context, src Drainer, w io.Writer, interval time.Duration, done <-chan error) error {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	flush := func() error {
		msgs := src.Drain()
		if len(msgs) > 0 {
			metrics.RecordObserverDrain(len(msgs))
		}
		for _, msg := range msgs {
			if _, err := fmt.Fprintln(w, msg); err != nil {
				return fmt.Errorf("write observer output: %w", err)
			}
		}
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			return flush()
		case err := <-done:
			if ferr := flush(); ferr != nil {
				return ferr
			}
			return err
		case <-ticker.C:
			if err := flush(); err != nil {
				return err
			}
		}
	}
}
