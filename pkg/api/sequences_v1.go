// pkg/api/sequences_v1.go
package api

// GateSequenceV1 is the stable JSON/JSONL schema for one basic approximation.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type GateSequenceV1 struct {
	Names  []string    `json:"names"`  // gate labels, first applied first; [] for identity
	Matrix [][]float64 `json:"matrix"` // 3x3 SO(3), row-major
	Phase  float64     `json:"phase"`  // global phase dropped by the SU(2) normalisation
}

// DecompositionV1 is the stable schema for a Solovay-Kitaev result.
type DecompositionV1 struct {
	ID     string      `json:"id"`
	Depth  int         `json:"depth"`
	Names  []string    `json:"names"`
	Matrix [][]float64 `json:"matrix"`
	Phase  float64     `json:"phase"`
	Error  float64     `json:"error"` // Frobenius distance to the target rotation
	Length int         `json:"length"`
}

// BlochStepV1 is one point of a gate trajectory on the Bloch sphere.
type BlochStepV1 struct {
	Step  int        `json:"step"`
	Gate  string     `json:"gate,omitempty"` // empty for the starting point
	Point [3]float64 `json:"point"`
	P0    float64    `json:"p0"`
	P1    float64    `json:"p1"`
	Phase float64    `json:"phase"`
}
