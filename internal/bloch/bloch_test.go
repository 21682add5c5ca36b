package bloch

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"qsk/internal/so3"
)

func requireVec(t *testing.T, want, got so3.Vec) {
	t.Helper()
	for i := range want {
		require.InDelta(t, want[i], got[i], 1e-9, "component %d of %v", i, got)
	}
}

func TestFromCoordinates_Poles(t *testing.T) {
	sv := FromCoordinates(so3.Vec{0, 0, 1})
	require.InDelta(t, 1, sv.Zero, 1e-12)
	require.InDelta(t, 0, real(sv.One), 1e-12)

	p := ToProbabilities(FromCoordinates(so3.Vec{0, 0, -1}))
	require.InDelta(t, 0, p.Zero, 1e-12)
	require.InDelta(t, 1, p.One, 1e-12)
}

func TestCoordinatesRoundTrip(t *testing.T) {
	for _, v := range []so3.Vec{
		{1, 0, 0}, {0, 1, 0}, {0, -1, 0}, {-1, 0, 0},
		{0.6, 0, 0.8}, {0, 0.6, -0.8}, {0.48, -0.6, 0.64},
	} {
		requireVec(t, v, Coordinates(FromCoordinates(v)))
	}
}

func TestApply(t *testing.T) {
	zero := FromCoordinates(so3.Vec{0, 0, 1})
	plus := FromCoordinates(so3.Vec{1, 0, 0})

	cases := []struct {
		from  Statevector
		gates []string
		want  so3.Vec
	}{
		{zero, []string{"x"}, so3.Vec{0, 0, -1}},
		{zero, []string{"h"}, so3.Vec{1, 0, 0}},
		{plus, []string{"s"}, so3.Vec{0, 1, 0}},
		{plus, []string{"t", "t"}, so3.Vec{0, 1, 0}},
		{plus, []string{"z"}, so3.Vec{-1, 0, 0}},
		{plus, []string{"h"}, so3.Vec{0, 0, 1}},
		{zero, []string{"y"}, so3.Vec{0, 0, -1}},
	}
	for _, c := range cases {
		states, err := Trace(c.from, c.gates)
		require.NoError(t, err)
		require.Len(t, states, len(c.gates))
		requireVec(t, c.want, Coordinates(states[len(states)-1]))
	}
}

func TestTrace_UnknownGate(t *testing.T) {
	_, err := Trace(FromCoordinates(so3.Vec{0, 0, 1}), []string{"h", "cx"})
	require.ErrorContains(t, err, "gate 2")
}

func TestApply_KeepsZeroAmplitudeReal(t *testing.T) {
	sv, err := Apply(FromCoordinates(so3.Vec{0.6, 0, 0.8}), "y")
	require.NoError(t, err)
	require.GreaterOrEqual(t, sv.Zero, 0.0)
	p := ToProbabilities(sv)
	require.InDelta(t, 1, p.Zero+p.One, 1e-12)
}

func TestApply_Unknown(t *testing.T) {
	_, err := Apply(Statevector{Zero: 1}, "cx")
	require.Error(t, err)
}

func TestPhaseWraps(t *testing.T) {
	sv, _ := Apply(FromCoordinates(so3.Vec{1, 0, 0}), "sdg")
	require.InDelta(t, 3*math.Pi/2, ToProbabilities(sv).Phase, 1e-9)
}

func TestAzimuth(t *testing.T) {
	require.InDelta(t, 0, Azimuth(1, 0), 1e-12)
	require.InDelta(t, math.Pi/2, Azimuth(0, 1), 1e-12)
	require.InDelta(t, math.Pi, Azimuth(-1, 0), 1e-12)
	require.InDelta(t, 3*math.Pi/2, Azimuth(0, -1), 1e-12)
	require.InDelta(t, 0, Azimuth(0, 0), 1e-12)
}
