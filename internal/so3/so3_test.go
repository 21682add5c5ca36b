package so3

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
	"pgregory.net/rapid"
)

func apply(m mat.Matrix, v Vec) Vec {
	var out Vec
	for i := 0; i < 3; i++ {
		out[i] = m.At(i, 0)*v[0] + m.At(i, 1)*v[1] + m.At(i, 2)*v[2]
	}
	return out
}

func unitVec(t *rapid.T, label string) Vec {
	for {
		v := Vec{
			rapid.Float64Range(-1, 1).Draw(t, label+"x"),
			rapid.Float64Range(-1, 1).Draw(t, label+"y"),
			rapid.Float64Range(-1, 1).Draw(t, label+"z"),
		}
		if u, err := Unit(v); err == nil && Norm(v) > 1e-3 {
			return u
		}
	}
}

func TestFromAxisAngle_Z(t *testing.T) {
	m := FromAxisAngle(Vec{0, 0, 1}, math.Pi/2)
	got := apply(m, Vec{1, 0, 0})
	require.InDelta(t, 0, got[0], 1e-12)
	require.InDelta(t, 1, got[1], 1e-12)
	require.InDelta(t, 0, got[2], 1e-12)
}

func TestAxisAngleRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		axis := unitVec(t, "axis")
		angle := rapid.Float64Range(0.01, math.Pi-0.01).Draw(t, "angle")
		m := FromAxisAngle(axis, angle)
		if !IsRotation(m, 1e-9) {
			t.Fatalf("not a rotation: %v", mat.Formatted(m))
		}
		if d := math.Abs(RotationAngle(m) - angle); d > 1e-7 {
			t.Fatalf("angle %v, got %v", angle, RotationAngle(m))
		}
		got := RotationAxis(m)
		for i := range axis {
			if math.Abs(got[i]-axis[i]) > 1e-6 {
				t.Fatalf("axis %v, got %v", axis, got)
			}
		}
	})
}

func TestRotationBetween(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		from := unitVec(t, "from")
		to := unitVec(t, "to")
		if Dot(from, to) < -0.999 {
			t.Skip("near antiparallel")
		}
		m, err := RotationBetween(from, to)
		if err != nil {
			t.Fatalf("rotation: %v", err)
		}
		if !IsRotation(m, 1e-6) {
			t.Fatalf("not a rotation")
		}
		got := apply(m, from)
		for i := range to {
			if math.Abs(got[i]-to[i]) > 1e-6 {
				t.Fatalf("m·from = %v, want %v", got, to)
			}
		}
	})
}

func TestRotationBetween_Antiparallel(t *testing.T) {
	_, err := RotationBetween(Vec{0, 0, 1}, Vec{0, 0, -2})
	require.ErrorIs(t, err, ErrAntiparallel)

	_, err = RotationBetween(Vec{}, Vec{0, 0, 1})
	require.ErrorIs(t, err, ErrZeroVector)
}

func TestRotationAxis_Identity(t *testing.T) {
	require.Equal(t, Vec{1, 0, 0}, RotationAxis(Identity()))
	require.InDelta(t, 0, RotationAngle(Identity()), 1e-12)
}

func TestDistanceAndFlatten(t *testing.T) {
	a := Identity()
	b := FromFlat([9]float64{-1, 0, 0, 0, -1, 0, 0, 0, 1})
	require.InDelta(t, math.Sqrt(8), Distance(a, b), 1e-12)
	require.Equal(t, [9]float64{1, 0, 0, 0, 1, 0, 0, 0, 1}, Flatten(a))
	require.Equal(t, [][]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}, Rows(a))
}

func TestMulTranspose(t *testing.T) {
	m := FromAxisAngle(Vec{0, 1, 0}, 0.3)
	require.True(t, mat.EqualApprox(Mul(m, Transpose(m)), Identity(), 1e-12))
	require.False(t, IsRotation(FromFlat([9]float64{1, 0, 0, 0, 1, 0, 0, 0, -1}), 1e-9))
}
