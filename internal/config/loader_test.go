package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/inputtrail/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

var configEnvVars = []string{
	config.EnvConfigFile,
	"INPUTTRAIL_LOG_LEVEL",
	"INPUTTRAIL_LOG_FILE",
	"INPUTTRAIL_OUTPUT_PATH",
	"INPUTTRAIL_SOURCE",
	"INPUTTRAIL_EVDEV_DEVICES",
	"INPUTTRAIL_REFRESH_INTERVAL_MS",
	"INPUTTRAIL_VIEW_SIZE",
	"INPUTTRAIL_RELAY_CAPACITY",
	"INPUTTRAIL_SYNC_WRITES",
	"INPUTTRAIL_HEADLESS",
	"INPUTTRAIL_METRICS_ADDR",
}

func clearConfigEnvVars() {
	for _, name := range configEnvVars {
		_ = os.Unsetenv(name)
	}
}

// setEnv sets one variable and returns a func that unsets it.
func setEnv(name, value string) func() {
	_ = os.Setenv(name, value)
	return func() { _ = os.Unsetenv(name) }
}

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldResemble, config.New(ctx))
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			defer setEnv("INPUTTRAIL_OUTPUT_PATH", "/tmp/trail.csv")()
			defer setEnv("INPUTTRAIL_SOURCE", "evdev")()
			defer setEnv("INPUTTRAIL_VIEW_SIZE", "25")()
			defer setEnv("INPUTTRAIL_RELAY_CAPACITY", "500")()
			defer setEnv("INPUTTRAIL_SYNC_WRITES", "false")()
			defer setEnv("INPUTTRAIL_HEADLESS", "true")()
			defer setEnv("INPUTTRAIL_METRICS_ADDR", ":9090")()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.OutputPath, convey.ShouldEqual, "/tmp/trail.csv")
				convey.So(cfg.Source, convey.ShouldEqual, config.SourceEvdev)
				convey.So(cfg.ViewSize, convey.ShouldEqual, 25)
				convey.So(cfg.RelayCapacity, convey.ShouldEqual, 500)
				convey.So(cfg.SyncWrites, convey.ShouldBeFalse)
				convey.So(cfg.Headless, convey.ShouldBeTrue)
				convey.So(cfg.MetricsAddr, convey.ShouldEqual, ":9090")
				convey.So(cfg.RefreshIntervalMS, convey.ShouldEqual, 100)
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			path := filepath.Join(t.TempDir(), "config.yaml")
			yamlContent := `
log_level: debug
output_path: file.csv
source: synthetic
refresh_interval_ms: 250
view_size: 5
`
			convey.So(os.WriteFile(path, []byte(yamlContent), 0o600), convey.ShouldBeNil)
			defer setEnv(config.EnvConfigFile, path)()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load values from the file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
				convey.So(cfg.OutputPath, convey.ShouldEqual, "file.csv")
				convey.So(cfg.Source, convey.ShouldEqual, config.SourceSynthetic)
				convey.So(cfg.RefreshIntervalMS, convey.ShouldEqual, 250)
				convey.So(cfg.ViewSize, convey.ShouldEqual, 5)
				convey.So(cfg.LogFile, convey.ShouldEqual, "inputtrail.log")
			})

			convey.Convey("And env vars take precedence over the file", func() {
				defer setEnv("INPUTTRAIL_OUTPUT_PATH", "env.csv")()

				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.OutputPath, convey.ShouldEqual, "env.csv")
				convey.So(cfg.Source, convey.ShouldEqual, config.SourceSynthetic)
			})
		})

		convey.Convey("When the config file is missing", func() {
			defer setEnv(config.EnvConfigFile, filepath.Join(t.TempDir(), "missing.yaml"))()

			_, err := config.Load(ctx)

			convey.Convey("Then loading fails", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the source is unknown", func() {
			defer setEnv("INPUTTRAIL_SOURCE", "carrier-pigeon")()

			_, err := config.Load(ctx)

			convey.Convey("Then validation fails", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "carrier-pigeon")
			})
		})

		convey.Convey("When a number is malformed", func() {
			defer setEnv("INPUTTRAIL_VIEW_SIZE", "ten")()

			_, err := config.Load(ctx)

			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
		})
	})
}
