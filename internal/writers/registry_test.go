package writers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"syscall"
	"testing"

	"github.com/stretchr/testify/require"

	"qsk/internal/seq"
	"qsk/pkg/api"
)

func TestUnknownSequenceFormatError(t *testing.T) {
	var b bytes.Buffer
	in, done := StartSequenceWriter(&b, "nope-format", Options{}, 1)
	in <- seq.New() // must not block
	close(in)
	err := <-done
	require.ErrorContains(t, err, `unknown sequence format "nope-format"`)
}

func TestUnknownDecompositionFormatError(t *testing.T) {
	var b bytes.Buffer
	in, done := StartDecompositionWriter(&b, "wat", Options{}, 1)
	close(in)
	require.ErrorContains(t, <-done, "unknown decomposition format")
}

func TestRegisterLastWins(t *testing.T) {
	r := NewRegistry[int]("int")
	require.False(t, r.Has("x"))
	r.Register("x", func(out io.Writer, _ Options, _ int) (chan<- int, <-chan error) {
		return failing[int](errors.New("first"))
	})
	r.Register("x", func(out io.Writer, _ Options, _ int) (chan<- int, <-chan error) {
		return failing[int](errors.New("second"))
	})
	in, done := r.Start("x", io.Discard, Options{}, 0)
	close(in)
	require.EqualError(t, <-done, "second")
}

func TestIsBrokenPipe(t *testing.T) {
	require.True(t, IsBrokenPipe(syscall.EPIPE))
	require.True(t, IsBrokenPipe(io.ErrClosedPipe))
	require.True(t, IsBrokenPipe(fmt.Errorf("write stdout: %w", syscall.EPIPE)))
	require.False(t, IsBrokenPipe(nil))
	require.False(t, IsBrokenPipe(errors.New("x")))
}

func send[T any](in chan<- T, done <-chan error, items ...T) error {
	for _, it := range items {
		in <- it
	}
	close(in)
	return <-done
}

func TestSequenceWriters(t *testing.T) {
	h, _ := seq.FromLabels("h")
	items := []seq.GateSequence{seq.New(), h}

	var js bytes.Buffer
	in, done := StartSequenceWriter(&js, "json", Options{Compact: true}, 4)
	require.NoError(t, send(in, done, items...))
	var arr []api.GateSequenceV1
	require.NoError(t, json.Unmarshal(js.Bytes(), &arr))
	require.Len(t, arr, 2)
	require.Equal(t, []string{"h"}, arr[1].Names)

	var jl bytes.Buffer
	in, done = StartSequenceWriter(&jl, "jsonl", Options{}, 4)
	require.NoError(t, send(in, done, items...))
	require.Equal(t, 2, strings.Count(jl.String(), "\n"))
	require.True(t, strings.HasPrefix(jl.String(), `{"names":[],`))

	var tx bytes.Buffer
	in, done = StartSequenceWriter(&tx, "text", Options{Header: true}, 4)
	require.NoError(t, send(in, done, items...))
	require.True(t, strings.HasPrefix(tx.String(), "index\t"))
	require.Equal(t, 3, strings.Count(tx.String(), "\n"))
}

func decomps(ids ...string) []api.DecompositionV1 {
	out := make([]api.DecompositionV1, len(ids))
	for i, id := range ids {
		out[i] = api.DecompositionV1{ID: id, Names: []string{}, Matrix: [][]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}}
	}
	return out
}

func TestDecompositionWriters_Sort(t *testing.T) {
	for _, format := range []string{"json", "jsonl", "text"} {
		var b bytes.Buffer
		in, done := StartDecompositionWriter(&b, format, Options{Sort: true, Compact: true, Header: true}, 4)
		require.NoError(t, send(in, done, decomps("c", "a", "b")...), format)
		s := b.String()
		ia, ib, ic := strings.Index(s, idOf(format, "a")), strings.Index(s, idOf(format, "b")), strings.Index(s, idOf(format, "c"))
		require.True(t, ia >= 0 && ia < ib && ib < ic, "%s: %q", format, s)
	}
}

func idOf(format, id string) string {
	if format == "text" {
		return "\n" + id + "\t"
	}
	return `"id":"` + id + `"`
}

func TestDecompositionJSON_EmptyIsArray(t *testing.T) {
	var b bytes.Buffer
	in, done := StartDecompositionWriter(&b, "json", Options{Compact: true}, 1)
	require.NoError(t, send[api.DecompositionV1](in, done))
	require.Equal(t, "[]\n", b.String())
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestTextWriterDrainsAfterError(t *testing.T) {
	in, done := StartDecompositionWriter(failWriter{}, "text", Options{Header: true}, 0)
	items := decomps(strings.Split(strings.Repeat("x,", 10000), ",")...)
	err := send(in, done, items...)
	require.ErrorContains(t, err, "disk full")
}

func TestWriteTrajectory(t *testing.T) {
	steps := []api.BlochStepV1{{Step: 0, Point: [3]float64{0, 0, 1}, P0: 1}, {Step: 1, Gate: "h", Point: [3]float64{1, 0, 0}, P0: 0.5, P1: 0.5}}
	var b bytes.Buffer
	require.NoError(t, WriteTrajectory(&b, "text", Options{Header: true}, steps))
	require.Equal(t, "step\tgate\tx\ty\tz\tp0\tp1\tphase\n0\t-\t0\t0\t1\t1\t0\t0\n1\th\t1\t0\t0\t0.5\t0.5\t0\n", b.String())

	require.ErrorContains(t, WriteTrajectory(io.Discard, "fasta", Options{}, steps), "unknown trajectory format")
}
