package app

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"qsk/internal/bloch"
	"qsk/internal/cli"
	"qsk/internal/cmdutil"
	"qsk/internal/so3"
	"qsk/internal/target"
	"qsk/internal/writers"
	"qsk/pkg/api"
)

func newApplyCommand(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Trace a Bloch-sphere point through a gate sequence",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, err := cli.NewViper(cmd.Flags(), e.global.Config)
			if err != nil {
				return cmdutil.Usage(err)
			}
			opts, err := cli.ApplyFromViper(v)
			if err != nil {
				return cmdutil.Usage(err)
			}
			return e.runApply(cmd.Context(), opts)
		},
	}
	cli.RegisterApply(cmd.Flags())
	return cmd
}

func (e *env) runApply(_ context.Context, o cli.ApplyOptions) error {
	from, err := target.ParseVec(o.From)
	if err != nil {
		return cmdutil.Usage(fmt.Errorf("--from: %w", err))
	}
	unit, err := so3.Unit(from)
	if err != nil {
		return cmdutil.Usage(fmt.Errorf("--from: %w", err))
	}
	steps, err := Trajectory(unit, o.Gates)
	if err != nil {
		return cmdutil.Usage(err)
	}
	if err := writers.WriteTrajectory(e.stdout, o.Output, writers.Options{Compact: o.Compact, Header: o.Header}, steps); err != nil {
		if writers.IsBrokenPipe(err) {
			return nil
		}
		return cmdutil.Failure(err)
	}
	return nil
}

// Trajectory returns the starting point followed by the point after each gate.
func Trajectory(from so3.Vec, labels []string) ([]api.BlochStepV1, error) {
	start := bloch.FromCoordinates(from)
	states, err := bloch.Trace(start, labels)
	if err != nil {
		return nil, err
	}
	steps := make([]api.BlochStepV1, 0, len(states)+1)
	steps = append(steps, toStep(0, "", start))
	for i, sv := range states {
		steps = append(steps, toStep(i+1, labels[i], sv))
	}
	return steps, nil
}

func toStep(i int, gate string, sv bloch.Statevector) api.BlochStepV1 {
	p := bloch.ToProbabilities(sv)
	return api.BlochStepV1{
		Step:  i,
		Gate:  gate,
		Point: bloch.Coordinates(sv),
		P0:    p.Zero,
		P1:    p.One,
		Phase: p.Phase,
	}
}
