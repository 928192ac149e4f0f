package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/okian/inputtrail/internal/adapters/http/api"
	"github.com/okian/inputtrail/internal/adapters/http/swagger"
	"github.com/okian/inputtrail/internal/adapters/sink"
	"github.com/okian/inputtrail/internal/adapters/source"
	"github.com/okian/inputtrail/internal/adapters/source/evdev"
	"github.com/okian/inputtrail/internal/adapters/source/gohook"
	app "github.com/okian/inputtrail/internal/app"
	"github.com/okian/inputtrail/internal/config"
	"github.com/okian/inputtrail/internal/observer"
	"github.com/okian/inputtrail/pkg/logger"
	"github.com/okian/inputtrail/pkg/metrics"
)

const (
	systemMetricsInterval     = 10 * time.Second
	syntheticInterval         = 250 * time.Millisecond
	logFilePermission         = 0o600
	nanosecondsPerMillisecond = 1e6
)

var errUnknownSource = errors.New("unknown source")

func main() {
	os.Exit(run())
}

func run() int {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return 1
	}

	closeLog, err := setupLogging(cfg)
	if err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return 1
	}
	defer closeLog()

	log := logger.Get()
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	src, err := newSource(cfg, log)
	if err != nil {
		os.Stderr.WriteString("failed to create source: " + err.Error() + "\n")
		return 1
	}

	svc := app.New(
		app.WithLogger(log),
		app.WithSource(src),
		app.WithOutputPath(cfg.OutputPath),
		app.WithRelayCapacity(cfg.RelayCapacity),
		app.WithSyncWrites(cfg.SyncWrites),
	)
	if err := svc.Start(ctx); err != nil {
		os.Stderr.WriteString("failed to start capture: " + err.Error() + "\n")
		return 1
	}

	if cfg.MetricsAddr != "" {
		startOps(ctx, cfg.MetricsAddr, svc, log)
	}

	observeErr := observe(ctx, cfg, svc)

	if err := svc.Stop(); err != nil {
		log.Error(ctx, "stopping capture failed", logger.Error(err))
	}
	return exitStatus(svc.Err(), observeErr)
}

// setupLogging keeps the terminal free for the event view: logs go to the
// configured file in interactive mode and to stderr when headless.
func setupLogging(cfg *config.Config) (func(), error) {
	if cfg.Headless {
		return func() {}, logger.InitWithWriter(os.Stderr)
	}
	if cfg.LogFile == "" {
		return func() {}, logger.InitWithWriter(io.Discard)
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	if err := logger.InitWithWriter(f); err != nil {
		_ = f.Close()
		return nil, err
	}
	return func() {
		_ = logger.Sync()
		_ = f.Close()
	}, nil
}

// newSource builds the input source named by the configuration.
func newSource(cfg *config.Config, log logger.Logger) (source.EventSource, error) {
	switch cfg.Source {
	case config.SourceHook:
		return gohook.New(gohook.WithLogger(log.Named("gohook"))), nil
	case config.SourceEvdev:
		return evdev.New(
			evdev.WithDevices(cfg.EvdevDevices),
			evdev.WithLogger(log.Named("evdev")),
		), nil
	case config.SourceSynthetic:
		return source.NewScripted(source.DemoScript(),
			source.WithRepeat(),
			source.WithInterval(syntheticInterval),
			source.WithRestamp(time.Now),
		), nil
	default:
		return nil, fmt.Errorf("%w: %q", errUnknownSource, cfg.Source)
	}
}

// observe runs the observer on the main goroutine until the user quits, the
// process is signalled, or capture ends.
func observe(ctx context.Context, cfg *config.Config, svc *app.Service) error {
	if cfg.Headless {
		return observer.Headless(ctx, svc.Relay(), os.Stdout, cfg.RefreshInterval(), svc.Done())
	}

	model := observer.NewModel(svc.Relay(),
		observer.WithRefreshInterval(cfg.RefreshInterval()),
		observer.WithWindowSize(cfg.ViewSize),
		observer.WithDone(svc.Done()),
	)
	final, err := tea.NewProgram(model, tea.WithContext(ctx)).Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("terminal view: %w", err)
	}
	if m, ok := final.(observer.Model); ok {
		return m.Err()
	}
	return nil
}

// exitStatus maps the terminal results to the process exit code and prints
// the diagnostic for fatal capture errors.
func exitStatus(captureErr, observeErr error) int {
	switch {
	case errors.Is(captureErr, sink.ErrSinkFatal):
		os.Stderr.WriteString("event log failed: " + captureErr.Error() + "\n")
		return 1
	case errors.Is(captureErr, source.ErrSourceFatal):
		os.Stderr.WriteString("input source failed: " + captureErr.Error() + "\n")
		return 1
	case captureErr != nil:
		os.Stderr.WriteString("capture failed: " + captureErr.Error() + "\n")
		return 1
	case observeErr != nil:
		os.Stderr.WriteString(observeErr.Error() + "\n")
		return 1
	}
	return 0
}

// startOps serves the ops endpoints and keeps the system gauges fresh.
func startOps(ctx context.Context, addr string, svc *app.Service, log logger.Logger) {
	mux := http.NewServeMux()
	api.NewServer(svc).Register(ctx, mux)
	swagger.Register(ctx, mux)

	go func() {
		log.Info(ctx, "starting ops HTTP server", logger.String("addr", addr))
		if err := api.Serve(ctx, addr, mux); err != nil {
			log.Error(ctx, "ops HTTP server failed", logger.Error(err))
		}
	}()
	go startSystemMetricsUpdater(ctx)
}

// startSystemMetricsUpdater updates system metrics until ctx ends.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

// updateSystemMetrics updates system-level metrics.
func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)
	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())

	if m.NumGC > 0 {
		avgPauseMs := float64(m.PauseTotalNs) / float64(m.NumGC) / nanosecondsPerMillisecond
		metrics.RecordSystemGCPauseTime(avgPauseMs)
	}
}
