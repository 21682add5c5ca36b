package appcore

import (
	"io"

	"qsk/internal/seq"
	"qsk/internal/writers"
	"qsk/pkg/api"
)

// ---------------- Sequence writer ----------------

type SequenceWriterFactory struct {
	Format string
	Opts   writers.Options
}

func NewSequenceWriterFactory(format string, o writers.Options) SequenceWriterFactory {
	return SequenceWriterFactory{Format: format, Opts: o}
}

func (w SequenceWriterFactory) Start(out io.Writer, bufSize int) (chan<- seq.GateSequence, <-chan error) {
	return writers.StartSequenceWriter(out, w.Format, w.Opts, bufSize)
}

// ---------------- Decomposition writer ----------------

type DecompositionWriterFactory struct {
	Format string
	Opts   writers.Options
}

func NewDecompositionWriterFactory(format string, o writers.Options) DecompositionWriterFactory {
	return DecompositionWriterFactory{Format: format, Opts: o}
}

func (w DecompositionWriterFactory) Start(out io.Writer, bufSize int) (chan<- api.DecompositionV1, <-chan error) {
	return writers.StartDecompositionWriter(out, w.Format, w.Opts, bufSize)
}
