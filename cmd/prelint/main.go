// Package main is the entry point for the prelint CLI.
package main

import (
	"errors"
	"os"

	"github.com/yaklabco/prelint/internal/cli"
	"github.com/yaklabco/prelint/internal/logging"

	// Import checks package to register built-in checks via init().
	_ "github.com/yaklabco/prelint/pkg/lint/checks"
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
	info := cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	rootCmd := cli.NewRootCommand(info)

	if err := rootCmd.Execute(); err != nil {
		// ErrWarningsFound is just a signal for the exit code.
		if !errors.Is(err, cli.ErrWarningsFound) {
			logger := logging.Default()
			logger.Error("command failed", logging.FieldError, err)
		}
		return cli.ExitCode(err)
	}

	return cli.ExitSuccess
}
