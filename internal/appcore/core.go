// internal/appcore/core.go
package appcore

import (
	"bufio"
	"context"
	"errors"
	"io"

	"github.com/rs/zerolog"

	"qsk/internal/cmdutil"
	"qsk/internal/writers"
)

type Options struct {
	BufSize         int
	NoMatchExitCode int
	Log             zerolog.Logger
}

// Producer generates values and hands each to send. It returns how many it sent.
type Producer[T any] func(ctx context.Context, send func(T) error) (int, error)

// WriterFactory starts the goroutine that renders values of type T.
type WriterFactory[T any] interface {
	Start(out io.Writer, bufSize int) (chan<- T, <-chan error)
}

// Run wires a producer to a writer goroutine and maps the outcome to an
// ExitError (nil on success).
func Run[T any](
	parent context.Context,
	stdout io.Writer,
	o Options,
	produce Producer[T],
	wf WriterFactory[T],
) error {
	outw := bufio.NewWriter(stdout)

	bufSize := o.BufSize
	if bufSize <= 0 {
		bufSize = 64
	}
	inCh, writeErr := wf.Start(outw, bufSize)

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	total, perr := produce(ctx, func(x T) error {
		select {
		case inCh <- x:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})
	close(inCh)

	if werr := <-writeErr; writers.IsBrokenPipe(werr) {
		return nil
	} else if werr != nil {
		return cmdutil.Failure(werr)
	}
	if e := outw.Flush(); writers.IsBrokenPipe(e) {
		return nil
	} else if e != nil {
		return cmdutil.Failure(e)
	}

	if perr != nil {
		if errors.Is(perr, context.Canceled) {
			return &cmdutil.ExitError{Code: cmdutil.ExitCanceled, Err: perr}
		}
		return cmdutil.Failure(perr)
	}
	o.Log.Debug().Int("written", total).Msg("output complete")
	if total == 0 && o.NoMatchExitCode != 0 {
		o.Log.Warn().Msg("no results")
		return &cmdutil.ExitError{Code: o.NoMatchExitCode}
	}
	return nil
}
