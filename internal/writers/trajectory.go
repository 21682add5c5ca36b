package writers

import (
	"io"

	"qsk/internal/jsonutil"
	"qsk/internal/output"
	"qsk/pkg/api"
)

// WriteTrajectory renders a Bloch trajectory in one shot; it is small enough
// that streaming buys nothing.
func WriteTrajectory(out io.Writer, format string, o Options, steps []api.BlochStepV1) error {
	switch format {
	case output.FormatJSON:
		if steps == nil {
			steps = []api.BlochStepV1{}
		}
		return jsonutil.Encode(out, steps, !o.Compact)
	case output.FormatJSONL:
		for _, s := range steps {
			if err := jsonutil.Encode(out, s, false); err != nil {
				return err
			}
		}
		return nil
	case output.FormatText:
		header := ""
		if o.Header {
			header = output.TrajectoryTSVHeader
		}
		return output.WriteText(out, steps, header, func(_ int, s api.BlochStepV1) string {
			return output.FormatTrajectoryRowTSV(s)
		})
	}
	return unknownFormat("trajectory", format)
}
