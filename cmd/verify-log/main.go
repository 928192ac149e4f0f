package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/okian/inputtrail/internal/logcheck"
	"github.com/okian/inputtrail/pkg/logger"
)

const usage = `inputtrail event log verifier

Checks that an event log has the expected header, that every row decodes
and that timestamps never go backwards.

Usage:
  verify-log [options]

Options:
`

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("verify-log", flag.ContinueOnError)
	var (
		path        = fs.String("path", "events.csv", "Event log to verify")
		maxProblems = fs.Int("max-problems", logcheck.DefaultMaxProblems, "Number of problems to list")
		verbose     = fs.Bool("verbose", false, "List every event kind and enable debug logging")
	)
	fs.Usage = func() {
		os.Stderr.WriteString(usage)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if err := logger.InitWithWriter(os.Stderr); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return 1
	}
	if *verbose {
		_ = logger.SetLevelString("debug")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	report, err := logcheck.CheckFile(ctx, *path, logcheck.WithMaxProblems(*maxProblems))
	if err != nil {
		os.Stderr.WriteString("Verification failed: " + err.Error() + "\n")
		return 1
	}
	if err := logcheck.WriteSummary(os.Stdout, report, *verbose); err != nil {
		os.Stderr.WriteString("Failed to write report: " + err.Error() + "\n")
		return 1
	}
	if !report.OK() {
		return 1
	}
	return 0
}
