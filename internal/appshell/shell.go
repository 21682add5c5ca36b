// Package appshell is the process boundary of qsk: signals in, exit code out.
package appshell

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"qsk/internal/cmdutil"
)

// Runner executes one qsk invocation and returns its exit code:
// 0 success (including a closed output pipe), 1 or --no-match-exit-code when
// decompose has no targets, 2 usage, 3 I/O, 130 interrupted.
type Runner func(ctx context.Context, argv []string, stdout, stderr io.Writer) int

// Main runs r with a context cancelled on SIGINT/SIGTERM and exits with its
// code. With no arguments the root help is shown.
func Main(r Runner) {
	os.Exit(run(r, os.Args[1:], os.Stdout, os.Stderr))
}

func run(r Runner, argv []string, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if len(argv) == 0 {
		argv = []string{"--help"}
	}
	code := r(ctx, argv, stdout, stderr)
	// A signal that lands after the command finished its work still counts.
	if ctx.Err() != nil && code == cmdutil.ExitOK {
		code = cmdutil.ExitCanceled
	}
	return code
}
