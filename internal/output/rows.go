package output

import (
	"strconv"
	"strings"

	"qsk/pkg/api"
)

// Float formats v in the shortest form that round-trips; integral values
// carry no trailing ".0".
func Float(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// MatrixCSV flattens rows into comma-joined values.
func MatrixCSV(rows [][]float64) string {
	ss := make([]string, 0, 9)
	for _, r := range rows {
		for _, v := range r {
			ss = append(ss, Float(v))
		}
	}
	return strings.Join(ss, ",")
}

// FormatSequenceRowTSV returns one TSV row (no trailing newline).
func FormatSequenceRowTSV(i int, s api.GateSequenceV1) string {
	return strings.Join([]string{
		strconv.Itoa(i),
		strconv.Itoa(len(s.Names)),
		strings.Join(s.Names, " "),
		Float(s.Phase),
		MatrixCSV(s.Matrix),
	}, "\t")
}

// FormatDecompositionRowTSV returns one TSV row (no trailing newline).
func FormatDecompositionRowTSV(d api.DecompositionV1) string {
	return strings.Join([]string{
		d.ID,
		strconv.Itoa(d.Depth),
		strconv.Itoa(d.Length),
		Float(d.Error),
		Float(d.Phase),
		strings.Join(d.Names, " "),
		MatrixCSV(d.Matrix),
	}, "\t")
}

// FormatTrajectoryRowTSV returns one TSV row (no trailing newline).
func FormatTrajectoryRowTSV(s api.BlochStepV1) string {
	gate := s.Gate
	if gate == "" {
		gate = "-"
	}
	return strings.Join([]string{
		strconv.Itoa(s.Step),
		gate,
		Float(s.Point[0]), Float(s.Point[1]), Float(s.Point[2]),
		Float(s.P0), Float(s.P1), Float(s.Phase),
	}, "\t")
}
