package commands

import (
	"errors"
	"fmt"
	"os"
)

// Process exit codes.
const (
	ExitOK          = 0
	ExitDiagnostics = 1
	ExitUsage       = 64 // command line usage error
	ExitInternal    = 70 // internal software error
)

// ExitError carries the exit code a command wants. A nil Err means the
// command already reported everything it had to say.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }

func usageErrorf(format string, args ...interface{}) error {
	return &ExitError{Code: ExitUsage, Err: fmt.Errorf(format, args...)}
}

func internalError(err error) error {
	return &ExitError{Code: ExitInternal, Err: err}
}

var errDiagnostics = &ExitError{Code: ExitDiagnostics}

// ExitCode maps an error returned by the command tree to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitInternal
}

// readErrorCode classifies a failure to read an input file.
func readErrorCode(err error) int {
	if errors.Is(err, os.ErrNotExist) {
		return ExitUsage
	}
	return ExitInternal
}
