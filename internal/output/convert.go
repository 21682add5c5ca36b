package output

import (
	"gonum.org/v1/gonum/mat"

	"qsk/internal/seq"
	"qsk/internal/sk"
	"qsk/internal/so3"
	"qsk/pkg/api"
)

// ToAPISequence converts a domain GateSequence to the stable wire schema (v1).
func ToAPISequence(s seq.GateSequence) api.GateSequenceV1 {
	return api.GateSequenceV1{
		Names:  append([]string{}, s.Gates...),
		Matrix: matrixRows(s.Product),
		Phase:  clean(s.GlobalPhase),
	}
}

// ToAPISequences converts a list, preserving order.
func ToAPISequences(list []seq.GateSequence) []api.GateSequenceV1 {
	out := make([]api.GateSequenceV1, 0, len(list))
	for _, s := range list {
		out = append(out, ToAPISequence(s))
	}
	return out
}

// ToAPIDecomposition converts a Solovay-Kitaev result computed at depth.
func ToAPIDecomposition(d sk.Decomposition, depth int) api.DecompositionV1 {
	return api.DecompositionV1{
		ID:     d.ID,
		Depth:  depth,
		Names:  append([]string{}, d.Gates...),
		Matrix: matrixRows(d.Product),
		Phase:  clean(d.Phase),
		Error:  clean(d.Error),
		Length: len(d.Gates),
	}
}

func matrixRows(m mat.Matrix) [][]float64 {
	rows := so3.Rows(m)
	for _, r := range rows {
		for j := range r {
			r[j] = clean(r[j])
		}
	}
	return rows
}

// clean turns negative zero into zero so it prints as 0.
func clean(v float64) float64 {
	if v == 0 {
		return 0
	}
	return v
}
