// internal/jsonutil/json.go
package jsonutil

import (
	"encoding/json"
	"io"
)

// Encode writes v as JSON followed by a newline. With indent set the output
// is two-space indented; otherwise it is compact.
func Encode(w io.Writer, v any, indent bool) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}
