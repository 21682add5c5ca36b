// Package seq defines GateSequence: an ordered list of single-qubit gate
// labels together with the SO(3) rotation and global phase they compose to.
package seq

import (
	"strings"

	"gonum.org/v1/gonum/mat"

	"qsk/internal/gates"
	"qsk/internal/so3"
)

// GateSequence is an ordered list of gates, applied first to last, and their product.
type GateSequence struct {
	Gates       []string
	Product     *mat.Dense // 3x3 SO(3); the last gate multiplies on the left
	GlobalPhase float64
}

// New returns the empty sequence (identity, phase 0).
func New() GateSequence {
	return GateSequence{Gates: []string{}, Product: so3.Identity()}
}

// FromSO3 wraps a copy of m as a gate-less sequence.
func FromSO3(m mat.Matrix) GateSequence {
	return GateSequence{Gates: []string{}, Product: mat.DenseCopyOf(m)}
}

// FromSU2 wraps the SO(3) image of an SU(2) matrix as a gate-less sequence.
func FromSU2(u gates.Matrix) GateSequence {
	return GateSequence{Gates: []string{}, Product: so3.FromFlat(gates.SU2ToSO3(u))}
}

// FromLabels builds a sequence by appending each label in order.
func FromLabels(labels ...string) (GateSequence, error) {
	s := New()
	for _, l := range labels {
		var err error
		if s, err = s.Append(l); err != nil {
			return GateSequence{}, err
		}
	}
	return s, nil
}

// Append returns a new sequence with gate label applied after s.
func (s GateSequence) Append(label string) (GateSequence, error) {
	g, err := gates.Lookup(label)
	if err != nil {
		return GateSequence{}, err
	}
	rot, phase := g.SO3()

	var prod mat.Dense
	prod.Mul(so3.FromFlat(rot), s.Product)

	out := GateSequence{
		Gates:       make([]string, len(s.Gates), len(s.Gates)+1),
		Product:     &prod,
		GlobalPhase: s.GlobalPhase + phase,
	}
	copy(out.Gates, s.Gates)
	out.Gates = append(out.Gates, label)
	return out, nil
}

// Adjoint returns the inverse sequence: reversed, each gate inverted.
func (s GateSequence) Adjoint() GateSequence {
	out := GateSequence{
		Gates:       make([]string, 0, len(s.Gates)),
		Product:     so3.Transpose(s.Product),
		GlobalPhase: -s.GlobalPhase,
	}
	for i := len(s.Gates) - 1; i >= 0; i-- {
		out.Gates = append(out.Gates, gates.Inverse(s.Gates[i]))
	}
	return out
}

// Dot returns s·other: other's gates run first, then s's.
func (s GateSequence) Dot(other GateSequence) GateSequence {
	names := make([]string, 0, len(other.Gates)+len(s.Gates))
	names = append(names, other.Gates...)
	names = append(names, s.Gates...)

	var prod mat.Dense
	prod.Mul(s.Product, other.Product)
	return GateSequence{
		Gates:       names,
		Product:     &prod,
		GlobalPhase: s.GlobalPhase + other.GlobalPhase,
	}
}

// Clean removes adjacent gate/inverse pairs in place until none remain.
// The product is unchanged since every removed pair composes to identity.
func (s *GateSequence) Clean() {
	out := s.Gates[:0]
	for _, g := range s.Gates {
		if n := len(out); n > 0 && out[n-1] == gates.Inverse(g) {
			out = out[:n-1]
			continue
		}
		out = append(out, g)
	}
	s.Gates = out
}

// Clone returns a deep copy.
func (s GateSequence) Clone() GateSequence {
	return GateSequence{
		Gates:       append([]string{}, s.Gates...),
		Product:     mat.DenseCopyOf(s.Product),
		GlobalPhase: s.GlobalPhase,
	}
}

// Name joins the gate labels with a space.
func (s GateSequence) Name() string { return strings.Join(s.Gates, " ") }

func (s GateSequence) Len() int { return len(s.Gates) }
