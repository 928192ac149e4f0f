//go:build !linux

package evdev

import (
	"context"
	"fmt"

	"github.com/okian/inputtrail/internal/adapters/source"
)

// Stream always fails: evdev exists only on Linux.
func (s *Source) Stream(_ context.Context, _ source.Emit) error {
	return fmt.Errorf("%w: evdev: %w", source.ErrSourceFatal, source.ErrUnsupported)
}
