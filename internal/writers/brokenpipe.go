package writers

import (
	"errors"
	"io"
	"syscall"
)

// IsBrokenPipe reports whether err means the reader of qsk's output went
// away, as when the output is piped into `head`. Writers swallow these and
// the command still exits 0.
func IsBrokenPipe(err error) bool {
	if err == nil {
		return false
	}
	for _, target := range []error{syscall.EPIPE, io.ErrClosedPipe} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
