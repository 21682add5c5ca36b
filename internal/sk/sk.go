// Package sk implements the Solovay-Kitaev recursion over a precomputed set
// of basic approximations.
package sk

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/mat"

	"qsk/internal/basis"
	"qsk/internal/gates"
	"qsk/internal/seq"
	"qsk/internal/so3"
)

var (
	ErrNoBasis          = errors.New("sk: no basic approximations")
	ErrDegeneratePoints = errors.New("sk: points are parallel or antiparallel")
)

// Decomposer approximates rotations with words from Basis.
type Decomposer struct {
	Basis *basis.Set
	Log   zerolog.Logger
}

// Decomposition is the result of one approximation.
type Decomposition struct {
	ID      string
	Gates   []string
	Product *mat.Dense
	Phase   float64
	Error   float64 // Frobenius distance between target and Product
}

// Decompose approximates target to recursion depth n. The returned gates
// have adjacent inverse pairs removed.
func (d Decomposer) Decompose(ctx context.Context, target seq.GateSequence, n int) (Decomposition, error) {
	if d.Basis == nil || d.Basis.Len() == 0 {
		return Decomposition{}, ErrNoBasis
	}
	if n < 0 {
		return Decomposition{}, fmt.Errorf("sk: depth must be ≥ 0 (got %d)", n)
	}
	res, err := d.recurse(ctx, target, n)
	if err != nil {
		return Decomposition{}, err
	}
	res.Clean()
	out := Decomposition{
		Gates:   res.Gates,
		Product: res.Product,
		Phase:   res.GlobalPhase,
		Error:   so3.Distance(target.Product, res.Product),
	}
	d.Log.Debug().Int("depth", n).Int("gates", len(out.Gates)).Float64("error", out.Error).Msg("decomposed")
	return out, nil
}

func (d Decomposer) recurse(ctx context.Context, u seq.GateSequence, n int) (seq.GateSequence, error) {
	if err := ctx.Err(); err != nil {
		return seq.GateSequence{}, err
	}
	if n == 0 {
		best, _ := d.Basis.Nearest(u.Product)
		return best, nil
	}
	uPrev, err := d.recurse(ctx, u, n-1)
	if err != nil {
		return seq.GateSequence{}, err
	}
	delta := u.Dot(uPrev.Adjoint())
	v, w := balancedCommutator(delta.Product)

	vPrev, err := d.recurse(ctx, v, n-1)
	if err != nil {
		return seq.GateSequence{}, err
	}
	wPrev, err := d.recurse(ctx, w, n-1)
	if err != nil {
		return seq.GateSequence{}, err
	}
	return vPrev.Dot(wPrev).Dot(vPrev.Adjoint()).Dot(wPrev.Adjoint()).Dot(uPrev), nil
}

// balancedCommutator returns rotations v, w with v·w·vᵀ·wᵀ = m.
func balancedCommutator(m mat.Matrix) (seq.GateSequence, seq.GateSequence) {
	theta := so3.RotationAngle(m)
	phi := 2 * math.Asin(math.Pow((1-math.Cos(theta/2))/2, 0.25))

	vt := so3.FromAxisAngle(so3.Vec{1, 0, 0}, phi)
	wt := so3.FromAxisAngle(so3.Vec{0, 1, 0}, phi)
	commutator := so3.Mul(vt, wt, vt.T(), wt.T())

	s, err := so3.RotationBetween(so3.RotationAxis(commutator), so3.RotationAxis(m))
	if err != nil {
		// Opposite axes: a half turn about any perpendicular axis maps one onto the other.
		s = so3.FromAxisAngle(perpendicular(so3.RotationAxis(m)), math.Pi)
	}
	v := so3.Mul(s, vt, s.T())
	w := so3.Mul(s, wt, s.T())
	return seq.FromSO3(v), seq.FromSO3(w)
}

func perpendicular(v so3.Vec) so3.Vec {
	c := so3.Cross(v, so3.Vec{1, 0, 0})
	if so3.Norm(c) < 1e-9 {
		c = so3.Cross(v, so3.Vec{0, 1, 0})
	}
	u, _ := so3.Unit(c)
	return u
}

// FromSO3 approximates rotation m.
func (d Decomposer) FromSO3(ctx context.Context, m mat.Matrix, n int) (Decomposition, error) {
	return d.Decompose(ctx, seq.FromSO3(m), n)
}

// FromU2 approximates a 2x2 unitary after normalising it into SU(2).
func (d Decomposer) FromU2(ctx context.Context, u gates.Matrix, n int) (Decomposition, error) {
	det := u.Det()
	if cmplx.Abs(det) < 1e-12 {
		return Decomposition{}, fmt.Errorf("sk: matrix is singular")
	}
	su2, _ := gates.ToSU2(u)
	return d.Decompose(ctx, seq.FromSU2(su2), n)
}

// FromPoints approximates the rotation carrying Bloch vector from onto to.
func (d Decomposer) FromPoints(ctx context.Context, from, to so3.Vec, n int) (Decomposition, error) {
	m, err := RotationForPoints(from, to)
	if err != nil {
		return Decomposition{}, err
	}
	return d.FromSO3(ctx, m, n)
}

// RotationForPoints returns the rotation taking from to to. Parallel and
// antiparallel inputs are rejected.
func RotationForPoints(from, to so3.Vec) (*mat.Dense, error) {
	f, err := so3.Unit(from)
	if err != nil {
		return nil, err
	}
	t, err := so3.Unit(to)
	if err != nil {
		return nil, err
	}
	if math.Abs(math.Abs(so3.Dot(f, t))-1) <= 1e-12 {
		return nil, ErrDegeneratePoints
	}
	return so3.RotationBetween(f, t)
}
