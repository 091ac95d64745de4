package cli

import (
	"errors"

	"github.com/yaklabco/prelint/pkg/runner"
)

// Exit codes for prelint.
const (
	// ExitSuccess indicates a clean run with no warnings.
	ExitSuccess = 0

	// ExitWarnings indicates the run completed but found warnings.
	ExitWarnings = 1

	// ExitError indicates the run failed: unreadable files, invalid
	// configuration, or an internal error.
	ExitError = 2
)

// ErrWarningsFound is returned by the lint command when warnings were
// reported. It maps to ExitWarnings rather than ExitError.
var ErrWarningsFound = errors.New("warnings found")

// ExitCodeFromResult determines the exit code for a completed run.
func ExitCodeFromResult(result *runner.Result) int {
	if result == nil {
		return ExitSuccess
	}
	if result.HasErrors() {
		return ExitError
	}
	if result.HasWarnings() {
		return ExitWarnings
	}
	return ExitSuccess
}

// ExitCode maps a command error to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrWarningsFound):
		return ExitWarnings
	default:
		return ExitError
	}
}
