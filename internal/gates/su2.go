package gates

import (
	"math"
	"math/cmplx"
)

// Det returns the determinant of m.
func (m Matrix) Det() complex128 {
	return m[0][0]*m[1][1] - m[0][1]*m[1][0]
}

// Scale returns z·m.
func (m Matrix) Scale(z complex128) Matrix {
	return Matrix{
		{z * m[0][0], z * m[0][1]},
		{z * m[1][0], z * m[1][1]},
	}
}

// Mul returns m·o.
func (m Matrix) Mul(o Matrix) Matrix {
	return Matrix{
		{m[0][0]*o[0][0] + m[0][1]*o[1][0], m[0][0]*o[0][1] + m[0][1]*o[1][1]},
		{m[1][0]*o[0][0] + m[1][1]*o[1][0], m[1][0]*o[0][1] + m[1][1]*o[1][1]},
	}
}

// Dagger returns the conjugate transpose of m.
func (m Matrix) Dagger() Matrix {
	return Matrix{
		{cmplx.Conj(m[0][0]), cmplx.Conj(m[1][0])},
		{cmplx.Conj(m[0][1]), cmplx.Conj(m[1][1])},
	}
}

// ToSU2 normalises a U(2) matrix into SU(2). The returned phase is the angle
// of the scale factor 1/sqrt(det u).
func ToSU2(u Matrix) (Matrix, float64) {
	z := 1 / cmplx.Sqrt(u.Det())
	return u.Scale(z), math.Atan2(imag(z), real(z))
}

// SU2ToSO3 maps an SU(2) matrix to its SO(3) rotation (row-major 3x3).
func SU2ToSO3(u Matrix) [9]float64 {
	a := real(u[0][0])
	b := imag(u[0][0])
	c := -real(u[0][1])
	d := -imag(u[0][1])
	return [9]float64{
		a*a - b*b - c*c + d*d, 2*a*b + 2*c*d, -2*a*c + 2*b*d,
		-2*a*b + 2*c*d, a*a - b*b + c*c - d*d, 2*a*d + 2*b*c,
		2*a*c + 2*b*d, 2*b*c - 2*a*d, a*a + b*b - c*c - d*d,
	}
}

// SO3 returns the rotation and the SU(2) normalisation phase of gate g.
func (g Gate) SO3() ([9]float64, float64) {
	su2, phase := ToSU2(g.Matrix)
	return SU2ToSO3(su2), phase
}
