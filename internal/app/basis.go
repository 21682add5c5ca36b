package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"qsk/internal/appcore"
	"qsk/internal/basis"
	"qsk/internal/cli"
	"qsk/internal/cmdutil"
	"qsk/internal/seq"
	"qsk/internal/writers"
)

func newBasisCommand(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "basis",
		Short: "Generate basic approximations and print them",
		Long: `Breadth-first search over words in the basis gates, keeping every word whose
SO(3) rotation differs from all shorter ones. Each record carries the gate
names, the 3x3 rotation matrix and the global phase.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, err := cli.NewViper(cmd.Flags(), e.global.Config)
			if err != nil {
				return cmdutil.Usage(err)
			}
			opts, err := cli.BasisFromViper(v)
			if err != nil {
				return cmdutil.Usage(err)
			}
			return e.runBasis(cmd.Context(), opts)
		},
	}
	cli.RegisterBasis(cmd.Flags())
	return cmd
}

func (e *env) runBasis(ctx context.Context, o cli.BasisOptions) (err error) {
	out := e.stdout
	if o.Out != "" && o.Out != "-" {
		fh, cerr := createAtomic(o.Out)
		if cerr != nil {
			return cmdutil.Failure(cerr)
		}
		defer func() { err = fh.commit(err) }()
		out = fh
	}

	var progress basis.ProgressFunc
	if o.Progress {
		bar := progressbar.NewOptions(o.Depth,
			progressbar.OptionSetWriter(e.stderr),
			progressbar.OptionSetDescription("basis levels"),
			progressbar.OptionShowCount(),
		)
		defer func() { _ = bar.Finish() }()
		progress = func(level, kept int) {
			bar.Describe("basis levels, kept " + strconv.Itoa(kept))
			_ = bar.Set(level)
		}
	}

	cfg := basis.Config{Gates: o.Gates, Depth: o.Depth, Tol: o.Tol, Log: e.log}
	produce := func(ctx context.Context, send func(seq.GateSequence) error) (int, error) {
		list, err := basis.Generate(ctx, cfg, progress)
		if err != nil {
			return 0, err
		}
		e.log.Info().Strs("gates", o.Gates).Int("depth", o.Depth).Int("sequences", len(list)).Msg("basis generated")
		for _, s := range list {
			if err := send(s); err != nil {
				return 0, err
			}
		}
		return len(list), nil
	}

	wf := appcore.NewSequenceWriterFactory(o.Output, writers.Options{Compact: o.Compact, Header: o.Header})
	return appcore.Run[seq.GateSequence](ctx, out, appcore.Options{Log: e.log}, produce, wf)
}

// atomicFile is written under a temporary name next to its target and only
// renamed into place by a successful commit.
type atomicFile struct {
	*os.File
	target string
}

func createAtomic(target string) (*atomicFile, error) {
	fh, err := os.CreateTemp(filepath.Dir(target), "."+filepath.Base(target)+".*.tmp")
	if err != nil {
		return nil, err
	}
	if err := fh.Chmod(0o644); err != nil {
		_ = fh.Close()
		_ = os.Remove(fh.Name())
		return nil, err
	}
	return &atomicFile{File: fh, target: target}, nil
}

// commit closes the file and renames it onto the target when runErr is nil.
// Otherwise the temporary file is removed and runErr is returned unchanged.
func (f *atomicFile) commit(runErr error) error {
	cerr := f.Close()
	if runErr == nil && cerr != nil {
		runErr = cmdutil.Failure(fmt.Errorf("close %s: %w", f.target, cerr))
	}
	if runErr == nil {
		if rerr := os.Rename(f.Name(), f.target); rerr != nil {
			runErr = cmdutil.Failure(rerr)
		}
	}
	if runErr != nil {
		_ = os.Remove(f.Name())
	}
	return runErr
}
