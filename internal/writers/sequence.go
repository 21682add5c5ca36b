package writers

import (
	"io"

	"qsk/internal/jsonlutil"
	"qsk/internal/output"
	"qsk/internal/seq"
	"qsk/pkg/api"
)

// Sequences renders basic approximations.
var Sequences = NewRegistry[seq.GateSequence]("sequence")

func init() {
	Sequences.Register(output.FormatJSON, startSequenceJSON)
	Sequences.Register(output.FormatJSONL, startSequenceJSONL)
	Sequences.Register(output.FormatText, startSequenceText)
}

// StartSequenceWriter spins up a writer goroutine for gate sequences.
func StartSequenceWriter(out io.Writer, format string, o Options, bufSize int) (chan<- seq.GateSequence, <-chan error) {
	return Sequences.Start(format, out, o, bufSize)
}

func startSequenceJSON(out io.Writer, o Options, bufSize int) (chan<- seq.GateSequence, <-chan error) {
	in := make(chan seq.GateSequence, bufSize)
	done := make(chan error, 1)
	go func() {
		done <- output.WriteJSON(out, collect(in), o.Compact)
	}()
	return in, done
}

func startSequenceJSONL(out io.Writer, _ Options, bufSize int) (chan<- seq.GateSequence, <-chan error) {
	return jsonlutil.Start[seq.GateSequence, api.GateSequenceV1](out, bufSize, output.ToAPISequence, IsBrokenPipe)
}

func startSequenceText(out io.Writer, o Options, bufSize int) (chan<- seq.GateSequence, <-chan error) {
	in := make(chan seq.GateSequence, bufSize)
	done := make(chan error, 1)
	header := ""
	if o.Header {
		header = output.SequenceTSVHeader
	}
	go func() {
		err := output.StreamText(out, in, header, func(i int, s seq.GateSequence) string {
			return output.FormatSequenceRowTSV(i, output.ToAPISequence(s))
		})
		drain(in)
		done <- err
	}()
	return in, done
}
