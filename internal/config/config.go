// Package config defines process configuration and how it is loaded.
//
// Conventions:
// - Provide New(ctx) to build a Config with defaults.
// - Load layers defaults, an optional YAML file and INPUTTRAIL_ env vars.
// - Validation failures wrap ErrInvalidConfig.
package config

import (
	"context"
	"fmt"
	"time"
)

// Supported input sources.
const (
	SourceHook      = "hook"
	SourceEvdev     = "evdev"
	SourceSynthetic = "synthetic"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFile receives logs while the terminal view is active.
	LogFile string `koanf:"log_file"`

	// OutputPath is the durable CSV event log.
	OutputPath string `koanf:"output_path"`

	// Source selects the platform input source: hook, evdev or synthetic.
	Source string `koanf:"source"`

	// EvdevDevices is the device glob read by the evdev source.
	EvdevDevices string `koanf:"evdev_devices"`

	// RefreshIntervalMS is how often the observer polls the relay.
	RefreshIntervalMS int `koanf:"refresh_interval_ms"`

	// ViewSize is the number of recent events shown.
	ViewSize int `koanf:"view_size"`

	// RelayCapacity bounds the observer relay; 0 means unbounded.
	RelayCapacity int `koanf:"relay_capacity"`

	// SyncWrites fsyncs the log after every row.
	SyncWrites bool `koanf:"sync_writes"`

	// Headless prints events as lines instead of running the terminal view.
	Headless bool `koanf:"headless"`

	// MetricsAddr enables the ops HTTP endpoint when set, e.g. ":9090".
	MetricsAddr string `koanf:"metrics_addr"`
}

// New creates a Config with defaults. Context is accepted first to satisfy
// the project-wide convention and is currently unused.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:          "info",
		LogFile:           "inputtrail.log",
		OutputPath:        "events.csv",
		Source:            SourceHook,
		EvdevDevices:      "/dev/input/event*",
		RefreshIntervalMS: 100,
		ViewSize:          10,
		RelayCapacity:     0,
		SyncWrites:        true,
		Headless:          false,
		MetricsAddr:       "",
	}
}

// RefreshInterval returns RefreshIntervalMS as a duration.
func (c *Config) RefreshInterval() time.Duration {
	return time.Duration(c.RefreshIntervalMS) * time.Millisecond
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch {
	case c.OutputPath == "":
		return fmt.Errorf("%w: output_path must not be empty", ErrInvalidConfig)
	case c.Source != SourceHook && c.Source != SourceEvdev && c.Source != SourceSynthetic:
		return fmt.Errorf("%w: unknown source %q (valid: hook, evdev, synthetic)", ErrInvalidConfig, c.Source)
	case c.Source == SourceEvdev && c.EvdevDevices == "":
		return fmt.Errorf("%w: evdev_devices must not be empty", ErrInvalidConfig)
	case c.RefreshIntervalMS <= 0:
		return fmt.Errorf("%w: refresh_interval_ms must be positive", ErrInvalidConfig)
	case c.ViewSize <= 0:
		return fmt.Errorf("%w: view_size must be positive", ErrInvalidConfig)
	case c.RelayCapacity < 0:
		return fmt.Errorf("%w: relay_capacity must not be negative", ErrInvalidConfig)
	}
	return nil
}
