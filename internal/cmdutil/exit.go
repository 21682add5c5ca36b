// internal/cmdutil/exit.go
package cmdutil

import (
	"context"
	"errors"
	"fmt"

	"qsk/internal/writers"
)

// Process exit codes.
const (
	ExitOK       = 0
	ExitUsage    = 2
	ExitIO       = 3
	ExitCanceled = 130
)

// ExitError carries the exit code a command wants. A nil Err means exit
// quietly with Code.
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

// Silent reports whether there is nothing to print for e.
func (e *ExitError) Silent() bool { return e.Err == nil }

// Usage marks err as a command-line problem (exit 2).
func Usage(err error) error { return &ExitError{Code: ExitUsage, Err: err} }

// Failure marks err as a runtime/I/O failure (exit 3).
func Failure(err error) error { return &ExitError{Code: ExitIO, Err: err} }

// Code maps an error returned by a command to a process exit code.
// Errors that are not ExitErrors come from argument parsing and count as usage errors.
func Code(err error) int {
	if err == nil {
		return ExitOK
	}
	if errors.Is(err, context.Canceled) {
		return ExitCanceled
	}
	if writers.IsBrokenPipe(err) {
		return ExitOK
	}
	var ee *ExitError
	if errors.As(err, &ee) {
		return ee.Code
	}
	return ExitUsage
}
