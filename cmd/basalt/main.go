// Package main is the entry point for the basalt CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/yaklabco/basalt/internal/cli"
	"github.com/yaklabco/basalt/internal/logging"
)

// Build-time variables set by GoReleaser via ldflags.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := cli.NewRootCommand(cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	})

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logging.Default().Error("command failed", logging.FieldError, err)
		return cli.ExitCode(err)
	}

	return cli.ExitCode(nil)
}
