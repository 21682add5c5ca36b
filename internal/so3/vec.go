package so3

import "math"

func Dot(a, b Vec) float64 { return a[0]*b[0] + a[1]*b[1] + a[2]*b[2] }

func Cross(a, b Vec) Vec {
	return Vec{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func Norm(v Vec) float64 { return math.Sqrt(Dot(v, v)) }

// Unit returns v scaled to length 1.
func Unit(v Vec) (Vec, error) {
	n := Norm(v)
	if n == 0 {
		return Vec{}, ErrZeroVector
	}
	return Vec{v[0] / n, v[1] / n, v[2] / n}, nil
}
