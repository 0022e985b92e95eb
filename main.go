// Package main implements the retrobus probe, which maps an NES cartridge
// into a CPU address space and inspects it through the bus handlers.
package main

import (
	"context"
	"errors"
	"os"

	"github.com/retroenv/retrobus/internal/app"
	"github.com/retroenv/retrobus/internal/cli"
	"github.com/retroenv/retrobus/internal/config"
	"github.com/retroenv/retrobus/internal/fileprocessor"
	retroapp "github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	ctx := retroapp.Context()

	opts, probe, err := cli.ParseFlags()
	if err != nil {
		logger := config.CreateLogger(opts.Debug, opts.Quiet)
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			app.PrintBanner(logger, opts, version, commit, date)
			usageErr.ShowUsage()
		} else {
			logger.Fatal(err.Error())
		}
		os.Exit(1)
	}

	logger := config.CreateLogger(opts.Debug, opts.Quiet)
	app.PrintBanner(logger, opts, version, commit, date)

	if err := fileprocessor.ProcessFile(ctx, logger, os.Stdout, opts, probe); err != nil {
		// Handle context cancellation (Ctrl+C) gracefully
		if errors.Is(err, context.Canceled) {
			logger.Info("Operation cancelled")
			return
		}
		logger.Error("Processing failed", log.Err(err))
		os.Exit(1)
	}
}
