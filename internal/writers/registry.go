// internal/writers/registry.go
package writers

import (
	"fmt"
	"io"
)

// Options carry the presentation switches shared by all writers.
type Options struct {
	Compact bool // json: no indentation
	Header  bool // text: emit the TSV header
	Sort    bool // decompositions: order by ID instead of arrival
}

// StartFunc launches a writer goroutine for values of type T.
type StartFunc[T any] func(out io.Writer, o Options, bufSize int) (chan<- T, <-chan error)

// Registry maps an output format to the writer that renders it.
type Registry[T any] struct {
	kind string
	m    map[string]StartFunc[T]
}

func NewRegistry[T any](kind string) *Registry[T] {
	return &Registry[T]{kind: kind, m: map[string]StartFunc[T]{}}
}

// Register adds or replaces (last wins) the writer for format.
func (r *Registry[T]) Register(format string, fn StartFunc[T]) { r.m[format] = fn }

// Has reports whether format has a writer.
func (r *Registry[T]) Has(format string) bool {
	_, ok := r.m[format]
	return ok
}

// Start dispatches to the registered writer. Unknown formats yield a writer
// that discards its input and fails.
func (r *Registry[T]) Start(format string, out io.Writer, o Options, bufSize int) (chan<- T, <-chan error) {
	if bufSize <= 0 {
		bufSize = 64
	}
	fn, ok := r.m[format]
	if !ok {
		return failing[T](unknownFormat(r.kind, format))
	}
	return fn(out, o, bufSize)
}

func unknownFormat(kind, format string) error {
	return fmt.Errorf("unknown %s format %q (no writer registered)", kind, format)
}

func failing[T any](err error) (chan<- T, <-chan error) {
	in := make(chan T)
	done := make(chan error, 1)
	go func() {
		for range in {
		}
		done <- err
	}()
	return in, done
}

// collect buffers all input; used by whole-document formats.
func collect[T any](in <-chan T) []T {
	var buf []T
	for v := range in {
		buf = append(buf, v)
	}
	return buf
}

func drain[T any](in <-chan T) {
	for range in {
	}
}
