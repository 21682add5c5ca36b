package basis

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"

	"qsk/internal/seq"
	"qsk/internal/so3"
)

// ErrEmptySet is returned when a Set is built from no sequences.
var ErrEmptySet = errors.New("basis: empty approximation set")

// Set is an immutable, indexed collection of basic approximations.
type Set struct {
	list []seq.GateSequence
	idx  *index
}

// NewSet indexes list. The sequences are cloned.
func NewSet(list []seq.GateSequence) (*Set, error) {
	if len(list) == 0 {
		return nil, ErrEmptySet
	}
	s := &Set{list: make([]seq.GateSequence, len(list))}
	pts := make([]*point, len(list))
	for i, g := range list {
		s.list[i] = g.Clone()
		pts[i] = newPoint(so3.Flatten(g.Product), i)
	}
	s.idx = newIndex(pts)
	return s, nil
}

func (s *Set) Len() int { return len(s.list) }

// All returns a copy of the sequences in insertion order.
func (s *Set) All() []seq.GateSequence {
	out := make([]seq.GateSequence, len(s.list))
	for i, g := range s.list {
		out[i] = g.Clone()
	}
	return out
}

// Nearest returns a copy of the sequence whose product is closest to m in
// Frobenius norm, and that distance. Exact ties go to the earliest sequence.
func (s *Set) Nearest(m mat.Matrix) (seq.GateSequence, float64) {
	p, d2, _ := s.idx.nearestLowest(so3.Flatten(m))
	return s.list[p.idx].Clone(), math.Sqrt(d2)
}
