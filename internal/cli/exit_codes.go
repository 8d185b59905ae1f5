package cli

import (
	"errors"
	"fmt"

	clierrors "github.com/raveheart1/relver/internal/errors"
	"github.com/raveheart1/relver/internal/release"
	"github.com/raveheart1/relver/internal/semver"
)

// Exit codes for the relver CLI.
// These codes support programmatic composition and CI/CD integration.
const (
	// ExitSuccess indicates successful command execution.
	ExitSuccess = 0

	// ExitRuntime indicates a runtime failure.
	ExitRuntime = 1

	// ExitInvalidArguments indicates invalid command arguments or input.
	ExitInvalidArguments = 3

	// ExitNotARepository indicates the working directory is not inside a
	// git repository.
	ExitNotARepository = 4

	// ExitVersionSpaceExhausted indicates collision avoidance could not
	// find a free version.
	ExitVersionSpaceExhausted = 5
)

// ExitError carries an explicit exit code through the cobra error path.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// NewExitError creates an error that maps to the given exit code.
func NewExitError(code int) *ExitError {
	return &ExitError{Code: code}
}

// ExitCode maps an error to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	if cliErr := clierrors.AsCLIError(err); cliErr != nil {
		switch cliErr.Category {
		case clierrors.Argument:
			return ExitInvalidArguments
		case clierrors.Repository:
			return ExitNotARepository
		}
	}

	var malformed *semver.MalformedVersionError
	if errors.As(err, &malformed) {
		return ExitInvalidArguments
	}

	if errors.Is(err, release.ErrVersionSpaceExhausted) {
		return ExitVersionSpaceExhausted
	}

	return ExitRuntime
}
