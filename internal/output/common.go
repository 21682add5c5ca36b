package output

// Output formats understood by every writer.
const (
	FormatText  = "text"
	FormatJSON  = "json"
	FormatJSONL = "jsonl"
)

// Formats lists the accepted --output values.
var Formats = []string{FormatText, FormatJSON, FormatJSONL}

// IsFormat reports whether f is one of Formats.
func IsFormat(f string) bool {
	for _, x := range Formats {
		if x == f {
			return true
		}
	}
	return false
}

// TSV headers for text outputs. Keep these as the single source of truth.
const (
	SequenceTSVHeader      = "index\tlength\tnames\tphase\tmatrix"
	DecompositionTSVHeader = "id\tdepth\tlength\terror\tphase\tnames\tmatrix"
	TrajectoryTSVHeader    = "step\tgate\tx\ty\tz\tp0\tp1\tphase"
)
