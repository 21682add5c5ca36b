package cmdutil

import (
	"context"

	"qsk/internal/pipeline"
	"qsk/internal/sk"
	"qsk/internal/target"
)

// RunStream runs the decomposition pipeline, converts each result, and
// streams it via send. It returns the number of sent outputs and the first
// error encountered.
func RunStream[T any](
	ctx context.Context,
	cfg pipeline.Config,
	targets []target.Target,
	dec pipeline.Decomposer,
	convert func(sk.Decomposition) T,
	send func(T) error,
) (int, error) {
	total := 0
	err := pipeline.ForEachDecomposition(ctx, cfg, targets, dec, func(d sk.Decomposition) error {
		if err := send(convert(d)); err != nil {
			return err
		}
		total++
		return nil
	})
	return total, err
}
