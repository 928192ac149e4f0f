//go:build linux

package evdev

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/okian/inputtrail/internal/adapters/source"
	"github.com/okian/inputtrail/pkg/logger"
)

const (
	readBatch   = 64
	nameBufSize = 256

	iocRead      = 2
	iocNRShift   = 0
	iocTypeShift = 8
	iocSizeShift = 16
	iocDirShift  = 30
)

type batch struct {
	device string
	events []InputEvent
	err    error
}

type device struct {
	path string
	name string
	file *os.File
}

// Stream opens every matching device and forwards their events until ctx is
// done. Devices that cannot be opened are skipped; finding none is fatal, as
// is losing every device while streaming.
func (s *Source) Stream(ctx context.Context, emit source.Emit) error {
	devices, err := s.open(ctx)
	if err != nil {
		return err
	}

	var wg sync.WaitGroup
	defer wg.Wait()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	batches := make(chan batch, len(devices))
	for _, d := range devices {
		wg.Add(1)
		go func(d device) {
			defer wg.Done()
			s.read(ctx, d, batches)
		}(d)
	}
	go func() {
		<-ctx.Done()
		for _, d := range devices {
			_ = d.file.Close()
		}
	}()

	tr := NewTranslator(s.startX, s.startY, s.maxX, s.maxY)
	live := len(devices)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case b := <-batches:
			if b.err != nil {
				live--
				s.logger.Warn(ctx, "input device lost", logger.String("device", b.device), logger.Error(b.err))
				if live == 0 {
					return fmt.Errorf("%w: every input device failed, last: %w", source.ErrSourceFatal, b.err)
				}
				continue
			}
			for _, ev := range b.events {
				for _, raw := range tr.Translate(ev) {
					if err := emit(raw); err != nil {
						return err
					}
				}
			}
		}
	}
}

func (s *Source) open(ctx context.Context) ([]device, error) {
	paths, err := filepath.Glob(s.pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: bad device pattern %q: %w", source.ErrSourceFatal, s.pattern, err)
	}

	var devices []device
	var lastErr error
	for _, path := range paths {
		fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK|unix.O_CLOEXEC, 0)
		if err != nil {
			lastErr = err
			s.logger.Debug(ctx, "skipping input device", logger.String("device", path), logger.Error(err))
			continue
		}
		d := device{path: path, name: deviceName(fd)}
		// A non-blocking descriptor joins the runtime poller, so Close
		// interrupts a pending Read.
		d.file = os.NewFile(uintptr(fd), path)
		devices = append(devices, d)
		s.logger.Info(ctx, "reading input device", logger.String("device", path), logger.String("name", d.name))
	}

	if len(devices) == 0 {
		if lastErr == nil {
			lastErr = os.ErrNotExist
		}
		if errors.Is(lastErr, unix.EACCES) {
			return nil, fmt.Errorf("%w: no readable device matches %s (add the user to the input group): %w",
				source.ErrSourceFatal, s.pattern, lastErr)
		}
		return nil, fmt.Errorf("%w: no readable device matches %s: %w", source.ErrSourceFatal, s.pattern, lastErr)
	}
	return devices, nil
}

func (s *Source) read(ctx context.Context, d device, out chan<- batch) {
	p := NewParser(s.eventSize)
	buf := make([]byte, readBatch*s.eventSize)
	for {
		n, err := d.file.Read(buf)
		if n > 0 {
			if events := p.Feed(buf[:n]); len(events) > 0 {
				select {
				case out <- batch{device: d.path, events: events}:
				case <-ctx.Done():
					return
				}
			}
		}
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			select {
			case out <- batch{device: d.path, err: err}:
			case <-ctx.Done():
			}
			return
		}
	}
}

// deviceName asks the driver for its product name (EVIOCGNAME).
func deviceName(fd int) string {
	var buf [nameBufSize]byte
	req := uintptr(iocRead<<iocDirShift | uint32('E')<<iocTypeShift | 0x06<<iocNRShift | nameBufSize<<iocSizeShift)
	n, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), req, uintptr(unsafe.Pointer(&buf[0])))
	if errno != 0 || n == 0 {
		return ""
	}
	return unix.ByteSliceToString(buf[:])
}
