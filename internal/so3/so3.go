// Package so3 holds the 3x3 rotation helpers used by the basis generator and
// the Solovay-Kitaev decomposer. Matrices are gonum *mat.Dense values of
// shape 3x3; functions never mutate their arguments.
package so3

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Vec is a 3-vector.
type Vec [3]float64

// ErrAntiparallel is returned when a rotation between opposite vectors is requested.
var ErrAntiparallel = errors.New("so3: vectors are antiparallel")

// ErrZeroVector is returned when a zero-length vector is used as a direction.
var ErrZeroVector = errors.New("so3: zero-length vector")

// Identity returns a fresh 3x3 identity matrix.
func Identity() *mat.Dense {
	return mat.NewDense(3, 3, []float64{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	})
}

// FromFlat builds a matrix from 9 row-major values.
func FromFlat(v [9]float64) *mat.Dense {
	data := make([]float64, 9)
	copy(data, v[:])
	return mat.NewDense(3, 3, data)
}

// Flatten returns the row-major entries of m.
func Flatten(m mat.Matrix) [9]float64 {
	var out [9]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i*3+j] = m.At(i, j)
		}
	}
	return out
}

// Rows returns m as nested slices.
func Rows(m mat.Matrix) [][]float64 {
	out := make([][]float64, 3)
	for i := range out {
		out[i] = []float64{m.At(i, 0), m.At(i, 1), m.At(i, 2)}
	}
	return out
}

// Mul returns the product of ms, left to right.
func Mul(ms ...mat.Matrix) *mat.Dense {
	res := Identity()
	for _, m := range ms {
		var next mat.Dense
		next.Mul(res, m)
		res = &next
	}
	return res
}

// Transpose returns a copy of mᵀ. For rotations this is the inverse.
func Transpose(m mat.Matrix) *mat.Dense {
	return mat.DenseCopyOf(m.T())
}

// Distance is the Frobenius norm of a-b.
func Distance(a, b mat.Matrix) float64 {
	var d mat.Dense
	d.Sub(a, b)
	return mat.Norm(&d, 2)
}

// IsRotation reports whether m is orthogonal with determinant +1 within tol.
func IsRotation(m mat.Matrix, tol float64) bool {
	var mtm mat.Dense
	mtm.Mul(m.T(), m)
	if !mat.EqualApprox(&mtm, Identity(), tol) {
		return false
	}
	return math.Abs(mat.Det(m)-1) <= tol
}

// CrossProductMatrix returns K such that K·x = v × x.
func CrossProductMatrix(v Vec) *mat.Dense {
	return mat.NewDense(3, 3, []float64{
		0, -v[2], v[1],
		v[2], 0, -v[0],
		-v[1], v[0], 0,
	})
}

// FromAxisAngle returns the rotation by angle (radians) about axis.
// The axis is expected to be unit length.
func FromAxisAngle(axis Vec, angle float64) *mat.Dense {
	c, s := math.Cos(angle), math.Sin(angle)
	res := Identity()
	res.Scale(c, res)

	var k mat.Dense
	k.Scale(s, CrossProductMatrix(axis))
	res.Add(res, &k)

	outer := mat.NewDense(3, 3, nil)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			outer.Set(i, j, (1-c)*axis[i]*axis[j])
		}
	}
	res.Add(res, outer)
	return res
}

// RotationAngle returns θ in [0, π] for rotation m.
func RotationAngle(m mat.Matrix) float64 {
	return math.Acos(clamp((mat.Trace(m) - 1) / 2))
}

// RotationAxis returns the unit rotation axis of m, or the x axis when the
// rotation angle is too close to 0 or π to determine one.
func RotationAxis(m mat.Matrix) Vec {
	theta := RotationAngle(m)
	s := math.Sin(theta)
	if s <= 1e-9 {
		return Vec{1, 0, 0}
	}
	return Vec{
		(m.At(2, 1) - m.At(1, 2)) / (2 * s),
		(m.At(0, 2) - m.At(2, 0)) / (2 * s),
		(m.At(1, 0) - m.At(0, 1)) / (2 * s),
	}
}

// RotationBetween returns the rotation carrying direction from onto direction to.
func RotationBetween(from, to Vec) (*mat.Dense, error) {
	f, err := Unit(from)
	if err != nil {
		return nil, err
	}
	t, err := Unit(to)
	if err != nil {
		return nil, err
	}
	dot := Dot(f, t)
	if 1+dot <= 1e-12 {
		return nil, ErrAntiparallel
	}
	k := CrossProductMatrix(Cross(f, t))
	var k2 mat.Dense
	k2.Mul(k, k)
	k2.Scale(1/(1+dot), &k2)

	res := Identity()
	res.Add(res, k)
	res.Add(res, &k2)
	return res, nil
}

func clamp(x float64) float64 {
	if x > 1 {
		return 1
	}
	if x < -1 {
		return -1
	}
	return x
}
