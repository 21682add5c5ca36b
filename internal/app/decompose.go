package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"qsk/internal/appcore"
	"qsk/internal/basis"
	"qsk/internal/cli"
	"qsk/internal/cliutil"
	"qsk/internal/cmdutil"
	"qsk/internal/output"
	"qsk/internal/pipeline"
	"qsk/internal/seq"
	"qsk/internal/sk"
	"qsk/internal/target"
	"qsk/internal/writers"
	"qsk/pkg/api"
)

func newDecomposeCommand(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decompose [targets.tsv ...]",
		Short: "Approximate rotations with the Solovay-Kitaev algorithm",
		Long: `Approximate one or more single-qubit rotations by words over the basis gates.

A target is the rotation carrying one Bloch vector onto another (--from/--to),
a named gate (--gate), or target files of either kind (--targets or
positional arguments; globs are expanded and "-" reads stdin).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := cli.NewViper(cmd.Flags(), e.global.Config)
			if err != nil {
				return cmdutil.Usage(err)
			}
			files, err := cliutil.ExpandPositionals(args)
			if err != nil {
				return cmdutil.Usage(err)
			}
			opts, err := cli.DecomposeFromViper(v, files)
			if err != nil {
				return cmdutil.Usage(err)
			}
			return e.runDecompose(cmd.Context(), opts, cmd.InOrStdin())
		},
	}
	cli.RegisterDecompose(cmd.Flags())
	return cmd
}

func (e *env) runDecompose(ctx context.Context, o cli.DecomposeOptions, stdin io.Reader) error {
	targets, err := loadTargets(o, stdin)
	if err != nil {
		return cmdutil.Usage(err)
	}
	set, err := e.loadBasis(ctx, o)
	if err != nil {
		return err
	}

	thr := o.Threads
	if thr <= 0 {
		thr = runtime.NumCPU()
	}
	dec := sk.Decomposer{Basis: set, Log: e.log}
	cfg := pipeline.Config{Threads: thr, Depth: o.Depth}
	convert := func(d sk.Decomposition) api.DecompositionV1 { return output.ToAPIDecomposition(d, o.Depth) }

	produce := func(ctx context.Context, send func(api.DecompositionV1) error) (int, error) {
		return cmdutil.RunStream(ctx, cfg, targets, dec, convert, send)
	}
	wf := appcore.NewDecompositionWriterFactory(o.Output, writers.Options{Compact: o.Compact, Header: o.Header, Sort: o.Sort})
	return appcore.Run[api.DecompositionV1](ctx, e.stdout, appcore.Options{
		BufSize:         thr * 4,
		NoMatchExitCode: o.NoMatchExitCode,
		Log:             e.log,
	}, produce, wf)
}

func loadTargets(o cli.DecomposeOptions, stdin io.Reader) ([]target.Target, error) {
	switch {
	case len(o.TargetFiles) > 0:
		return target.LoadAll(o.TargetFiles, stdin)
	case o.Gate != "":
		return []target.Target{{ID: o.Gate, Gate: o.Gate}}, nil
	}
	from, err := target.ParseVec(o.From)
	if err != nil {
		return nil, fmt.Errorf("--from: %w", err)
	}
	to, err := target.ParseVec(o.To)
	if err != nil {
		return nil, fmt.Errorf("--to: %w", err)
	}
	return []target.Target{{ID: "manual", From: from, To: to}}, nil
}

// loadBasis reads --basis, or generates the basic approximations when it is unset.
func (e *env) loadBasis(ctx context.Context, o cli.DecomposeOptions) (*basis.Set, error) {
	var (
		list []seq.GateSequence
		err  error
	)
	if o.BasisFile != "" {
		fh, oerr := os.Open(o.BasisFile)
		if oerr != nil {
			return nil, cmdutil.Usage(oerr)
		}
		defer fh.Close()
		if list, err = output.LoadJSON(fh); err != nil {
			return nil, cmdutil.Usage(fmt.Errorf("%s: %w", o.BasisFile, err))
		}
		e.log.Debug().Str("file", o.BasisFile).Int("sequences", len(list)).Msg("basis loaded")
	} else {
		cfg := basis.Config{Gates: o.BasisGates, Depth: o.BasisDepth, Log: e.log}
		if list, err = basis.Generate(ctx, cfg, nil); err != nil {
			return nil, cmdutil.Failure(err)
		}
		e.log.Info().Strs("gates", o.BasisGates).Int("depth", o.BasisDepth).Int("sequences", len(list)).Msg("basis generated")
	}
	set, err := basis.NewSet(list)
	if err != nil {
		return nil, cmdutil.Usage(err)
	}
	return set, nil
}
