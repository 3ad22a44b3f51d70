package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/yaklabco/basalt/internal/configloader"
	"github.com/yaklabco/basalt/pkg/fsutil"
	"github.com/yaklabco/basalt/pkg/vault"
)

// Exit codes for basalt.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitError indicates a general failure.
	ExitError = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// usageError marks an error caused by bad arguments or flags.
type usageError struct {
	err error
}

func (e usageError) Error() string { return e.err.Error() }

func (e usageError) Unwrap() error { return e.err }

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	var usage usageError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &usage):
		return ExitInvalidUsage
	case errors.Is(err, configloader.ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, fsutil.ErrNotFound),
		errors.Is(err, fsutil.ErrIsDirectory),
		errors.Is(err, fsutil.ErrConflict),
		errors.Is(err, vault.ErrNoConfigDir):
		return ExitIOError
	default:
		return ExitError
	}
}

// usageArgs wraps a positional argument validator so its failures map to
// ExitInvalidUsage.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return usageError{err}
		}
		return nil
	}
}
