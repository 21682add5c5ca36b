// internal/gates/gates.go
package gates

import (
	"fmt"
	"math"
	"math/cmplx"
	"sort"
)

// Matrix is a 2x2 complex matrix in row-major order.
type Matrix [2][2]complex128

// Gate describes one single-qubit gate.
type Gate struct {
	Label    string
	Inverse  string
	Matrix   Matrix
	Axis     [3]float64 // Bloch-sphere rotation axis
	Rotation float64    // rotation angle about Axis, radians
}

var invSqrt2 = 1 / math.Sqrt2

var table = map[string]Gate{
	"x": {
		Label: "x", Inverse: "x",
		Matrix:   Matrix{{0, 1}, {1, 0}},
		Axis:     [3]float64{1, 0, 0},
		Rotation: math.Pi,
	},
	"y": {
		Label: "y", Inverse: "y",
		Matrix:   Matrix{{0, -1i}, {1i, 0}},
		Axis:     [3]float64{0, 1, 0},
		Rotation: math.Pi,
	},
	"z": {
		Label: "z", Inverse: "z",
		Matrix:   Matrix{{1, 0}, {0, -1}},
		Axis:     [3]float64{0, 0, 1},
		Rotation: math.Pi,
	},
	"h": {
		Label: "h", Inverse: "h",
		Matrix:   Matrix{{complex(invSqrt2, 0), complex(invSqrt2, 0)}, {complex(invSqrt2, 0), complex(-invSqrt2, 0)}},
		Axis:     [3]float64{invSqrt2, 0, invSqrt2},
		Rotation: math.Pi,
	},
	"s": {
		Label: "s", Inverse: "sdg",
		Matrix:   Matrix{{1, 0}, {0, 1i}},
		Axis:     [3]float64{0, 0, 1},
		Rotation: math.Pi / 2,
	},
	"sdg": {
		Label: "sdg", Inverse: "s",
		Matrix:   Matrix{{1, 0}, {0, -1i}},
		Axis:     [3]float64{0, 0, 1},
		Rotation: -math.Pi / 2,
	},
	"t": {
		Label: "t", Inverse: "tdg",
		Matrix:   Matrix{{1, 0}, {0, cmplx.Rect(1, math.Pi/4)}},
		Axis:     [3]float64{0, 0, 1},
		Rotation: math.Pi / 4,
	},
	"tdg": {
		Label: "tdg", Inverse: "t",
		Matrix:   Matrix{{1, 0}, {0, cmplx.Rect(1, -math.Pi/4)}},
		Axis:     [3]float64{0, 0, 1},
		Rotation: -math.Pi / 4,
	},
}

// DefaultBasis is the Clifford+T basis used for basic approximations.
var DefaultBasis = []string{"h", "t", "tdg"}

// Lookup returns the gate for label.
func Lookup(label string) (Gate, error) {
	g, ok := table[label]
	if !ok {
		return Gate{}, fmt.Errorf("unknown gate %q", label)
	}
	return g, nil
}

// IsKnown reports whether label names a gate in the table.
func IsKnown(label string) bool {
	_, ok := table[label]
	return ok
}

// Inverse returns the label of the inverse gate, or "" for unknown labels.
func Inverse(label string) string {
	return table[label].Inverse
}

// Labels returns every known gate label, sorted.
func Labels() []string {
	out := make([]string, 0, len(table))
	for k := range table {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
