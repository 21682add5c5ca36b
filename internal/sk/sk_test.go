package sk

import (
	"context"
	"math"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"qsk/internal/basis"
	"qsk/internal/gates"
	"qsk/internal/seq"
	"qsk/internal/so3"
)

var (
	setOnce sync.Once
	testSet *basis.Set
)

func decomposer(t *testing.T) Decomposer {
	t.Helper()
	setOnce.Do(func() {
		list, err := basis.Generate(context.Background(), basis.Config{Depth: 8, Log: zerolog.Nop()}, nil)
		if err != nil {
			panic(err)
		}
		testSet, _ = basis.NewSet(list)
	})
	return Decomposer{Basis: testSet, Log: zerolog.Nop()}
}

// checkConsistent asserts that the reported gates really compose to the
// reported product and that Error is the distance to want.
func checkConsistent(t *testing.T, d Decomposition, want mat.Matrix) {
	t.Helper()
	re, err := seq.FromLabels(d.Gates...)
	require.NoError(t, err)
	require.True(t, mat.EqualApprox(re.Product, d.Product, 1e-6), "gates %v disagree with product", d.Gates)
	require.InDelta(t, so3.Distance(want, d.Product), d.Error, 1e-12)
	require.True(t, so3.IsRotation(d.Product, 1e-6))
	for i := 1; i < len(d.Gates); i++ {
		require.NotEqual(t, gates.Inverse(d.Gates[i-1]), d.Gates[i], "adjacent inverses at %d", i)
	}
}

func TestDecompose_BasisMemberIsExact(t *testing.T) {
	d := decomposer(t)
	want, _ := seq.FromLabels("h", "t", "h", "tdg")
	for _, depth := range []int{0, 1, 2} {
		res, err := d.FromSO3(context.Background(), want.Product, depth)
		require.NoError(t, err)
		require.Less(t, res.Error, 1e-9, "depth %d", depth)
		checkConsistent(t, res, want.Product)
	}
}

func TestFromU2_Gate(t *testing.T) {
	d := decomposer(t)
	g, _ := gates.Lookup("t")
	res, err := d.FromU2(context.Background(), g.Matrix, 0)
	require.NoError(t, err)
	require.Equal(t, []string{"t"}, res.Gates)
	require.InDelta(t, -math.Pi/8, res.Phase, 1e-12)
}

func TestFromU2_Singular(t *testing.T) {
	d := decomposer(t)
	_, err := d.FromU2(context.Background(), gates.Matrix{{1, 1}, {1, 1}}, 0)
	require.Error(t, err)
}

func TestFromPoints(t *testing.T) {
	d := decomposer(t)
	from, to := so3.Vec{0, 0, 1}, so3.Vec{0.3, 0.5, 0.2}
	m, err := RotationForPoints(from, to)
	require.NoError(t, err)

	for _, depth := range []int{0, 1, 2} {
		res, err := d.FromPoints(context.Background(), from, to, depth)
		require.NoError(t, err)
		checkConsistent(t, res, m)
		require.Less(t, res.Error, 2*math.Sqrt2)
	}
}

func TestFromPoints_Degenerate(t *testing.T) {
	d := decomposer(t)
	_, err := d.FromPoints(context.Background(), so3.Vec{0, 0, 1}, so3.Vec{0, 0, -1}, 1)
	require.ErrorIs(t, err, ErrDegeneratePoints)
	_, err = d.FromPoints(context.Background(), so3.Vec{1, 0, 0}, so3.Vec{2, 0, 0}, 1)
	require.ErrorIs(t, err, ErrDegeneratePoints)
}

func TestDecompose_Errors(t *testing.T) {
	_, err := Decomposer{}.FromSO3(context.Background(), so3.Identity(), 1)
	require.ErrorIs(t, err, ErrNoBasis)

	_, err = decomposer(t).FromSO3(context.Background(), so3.Identity(), -1)
	require.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = decomposer(t).FromSO3(ctx, so3.Identity(), 2)
	require.ErrorIs(t, err, context.Canceled)
}

func TestBalancedCommutator_Rotations(t *testing.T) {
	m := so3.FromAxisAngle(so3.Vec{0, 0.6, 0.8}, 0.2)
	v, w := balancedCommutator(m)
	require.True(t, so3.IsRotation(v.Product, 1e-9))
	require.True(t, so3.IsRotation(w.Product, 1e-9))
	require.InDelta(t, so3.RotationAngle(v.Product), so3.RotationAngle(w.Product), 1e-9)
	require.Empty(t, v.Gates)
}
