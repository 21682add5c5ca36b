// Package bloch converts between single-qubit statevectors, measurement
// probabilities and Bloch-sphere coordinates, and applies gates to states.
//
// A Statevector keeps the |0⟩ amplitude real and non-negative; all relative
// phase lives on the |1⟩ amplitude.
package bloch

import (
	"fmt"
	"math"
	"math/cmplx"

	"qsk/internal/gates"
	"qsk/internal/so3"
)

type Statevector struct {
	Zero float64
	One  complex128
}

type Probabilities struct {
	Zero  float64
	One   float64
	Phase float64 // radians in [0, 2π)
}

// ToProbabilities returns the measurement probabilities and relative phase of sv.
func ToProbabilities(sv Statevector) Probabilities {
	r, phi := cmplx.Polar(sv.One)
	return Probabilities{
		Zero:  sv.Zero * sv.Zero,
		One:   r * r,
		Phase: wrap(phi),
	}
}

// FromProbabilities builds a statevector from P(|0⟩) and a relative phase.
func FromProbabilities(zero, phase float64) Statevector {
	return Statevector{
		Zero: math.Sqrt(zero),
		One:  cmplx.Rect(math.Sqrt(1-zero), phase),
	}
}

// Azimuth returns the azimuthal angle of (x, y) in [0, 2π), measured from
// the positive x axis. On the x axis it is 0 for x ≥ 0 and π for x < 0.
func Azimuth(x, y float64) float64 {
	switch {
	case y > 0:
		return math.Pi/2 - math.Atan(x/y)
	case y < 0:
		return math.Pi/2 - math.Atan(x/y) + math.Pi
	default:
		if x < 0 {
			return math.Pi
		}
		return 0
	}
}

// FromCoordinates returns the statevector at Bloch point v (unit length expected).
func FromCoordinates(v so3.Vec) Statevector {
	return FromProbabilities((v[2]+1)/2, Azimuth(v[0], v[1]))
}

// Coordinates returns the Bloch point of sv.
func Coordinates(sv Statevector) so3.Vec {
	phi := cmplx.Phase(sv.One)
	z := sv.Zero*sv.Zero*2 - 1
	rr := math.Sqrt(math.Max(0, 1-z*z))
	return so3.Vec{rr * math.Cos(phi), rr * math.Sin(phi), z}
}

// Apply returns the state after gate label acts on sv.
func Apply(sv Statevector, label string) (Statevector, error) {
	g, err := gates.Lookup(label)
	if err != nil {
		return Statevector{}, err
	}
	m := g.Matrix
	a := complex(sv.Zero, 0)
	zero := m[0][0]*a + m[0][1]*sv.One
	one := m[1][0]*a + m[1][1]*sv.One
	return normalize(zero, one), nil
}

// Trace applies labels in order and returns the state after each gate.
func Trace(sv Statevector, labels []string) ([]Statevector, error) {
	out := make([]Statevector, 0, len(labels))
	for _, l := range labels {
		var err error
		if sv, err = Apply(sv, l); err != nil {
			return nil, fmt.Errorf("gate %d: %w", len(out)+1, err)
		}
		out = append(out, sv)
	}
	return out, nil
}

// normalize moves the phase of the |0⟩ amplitude onto |1⟩.
func normalize(zero, one complex128) Statevector {
	r0, p0 := cmplx.Polar(zero)
	r1, p1 := cmplx.Polar(one)
	return Statevector{Zero: r0, One: cmplx.Rect(r1, p1-p0)}
}

func wrap(phi float64) float64 {
	phi = math.Mod(phi, 2*math.Pi)
	if phi < 0 {
		phi += 2 * math.Pi
	}
	return phi
}
