package output

import (
	"encoding/json"
	"fmt"
	"io"

	"qsk/internal/gates"
	"qsk/internal/jsonutil"
	"qsk/internal/seq"
	"qsk/internal/so3"
	"qsk/pkg/api"
)

// WriteJSON writes list as a single JSON array of v1 sequences. With compact
// set the array carries no insignificant whitespace: "[" + objects joined by
// "," + "]".
func WriteJSON(w io.Writer, list []seq.GateSequence, compact bool) error {
	return jsonutil.Encode(w, ToAPISequences(list), !compact)
}

// LoadJSON reads an array previously written by WriteJSON.
func LoadJSON(r io.Reader) ([]seq.GateSequence, error) {
	var raw []api.GateSequenceV1
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode basis: %w", err)
	}
	out := make([]seq.GateSequence, 0, len(raw))
	for i, v := range raw {
		s, err := FromAPISequence(v)
		if err != nil {
			return nil, fmt.Errorf("basis entry %d: %w", i, err)
		}
		out = append(out, s)
	}
	return out, nil
}

// FromAPISequence validates v and converts it back to a domain sequence.
// The stored matrix is trusted; it is not recomputed from the names.
func FromAPISequence(v api.GateSequenceV1) (seq.GateSequence, error) {
	if len(v.Matrix) != 3 {
		return seq.GateSequence{}, fmt.Errorf("matrix has %d rows, want 3", len(v.Matrix))
	}
	var flat [9]float64
	for i, row := range v.Matrix {
		if len(row) != 3 {
			return seq.GateSequence{}, fmt.Errorf("matrix row %d has %d columns, want 3", i, len(row))
		}
		copy(flat[i*3:], row)
	}
	for _, n := range v.Names {
		if gates.IsKnown(n) {
			continue
		}
		return seq.GateSequence{}, fmt.Errorf("unknown gate %q", n)
	}
	return seq.GateSequence{
		Gates:       append([]string{}, v.Names...),
		Product:     so3.FromFlat(flat),
		GlobalPhase: v.Phase,
	}, nil
}
