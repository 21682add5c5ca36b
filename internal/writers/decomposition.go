package writers

import (
	"io"
	"sort"

	"qsk/internal/jsonlutil"
	"qsk/internal/jsonutil"
	"qsk/internal/output"
	"qsk/pkg/api"
)

// Decompositions renders Solovay-Kitaev results.
var Decompositions = NewRegistry[api.DecompositionV1]("decomposition")

func init() {
	Decompositions.Register(output.FormatJSON, startDecompositionJSON)
	Decompositions.Register(output.FormatJSONL, startDecompositionJSONL)
	Decompositions.Register(output.FormatText, startDecompositionText)
}

// StartDecompositionWriter spins up a writer goroutine for decompositions.
func StartDecompositionWriter(out io.Writer, format string, o Options, bufSize int) (chan<- api.DecompositionV1, <-chan error) {
	return Decompositions.Start(format, out, o, bufSize)
}

func sortDecompositions(list []api.DecompositionV1) {
	sort.SliceStable(list, func(i, j int) bool { return list[i].ID < list[j].ID })
}

func startDecompositionJSON(out io.Writer, o Options, bufSize int) (chan<- api.DecompositionV1, <-chan error) {
	in := make(chan api.DecompositionV1, bufSize)
	done := make(chan error, 1)
	go func() {
		list := collect(in)
		if list == nil {
			list = []api.DecompositionV1{}
		}
		if o.Sort {
			sortDecompositions(list)
		}
		done <- jsonutil.Encode(out, list, !o.Compact)
	}()
	return in, done
}

func startDecompositionJSONL(out io.Writer, o Options, bufSize int) (chan<- api.DecompositionV1, <-chan error) {
	if !o.Sort {
		return jsonlutil.Start[api.DecompositionV1, api.DecompositionV1](out, bufSize, identity[api.DecompositionV1], IsBrokenPipe)
	}
	in := make(chan api.DecompositionV1, bufSize)
	done := make(chan error, 1)
	go func() {
		list := collect(in)
		sortDecompositions(list)
		lin, ldone := jsonlutil.Start[api.DecompositionV1, api.DecompositionV1](out, len(list), identity[api.DecompositionV1], IsBrokenPipe)
		for _, d := range list {
			lin <- d
		}
		close(lin)
		done <- <-ldone
	}()
	return in, done
}

func startDecompositionText(out io.Writer, o Options, bufSize int) (chan<- api.DecompositionV1, <-chan error) {
	in := make(chan api.DecompositionV1, bufSize)
	done := make(chan error, 1)
	header := ""
	if o.Header {
		header = output.DecompositionTSVHeader
	}
	row := func(_ int, d api.DecompositionV1) string { return output.FormatDecompositionRowTSV(d) }
	go func() {
		if o.Sort {
			list := collect(in)
			sortDecompositions(list)
			done <- output.WriteText(out, list, header, row)
			return
		}
		err := output.StreamText(out, in, header, row)
		drain(in)
		done <- err
	}()
	return in, done
}

func identity[T any](v T) T { return v }
