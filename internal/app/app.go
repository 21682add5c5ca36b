// internal/app/app.go
package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"qsk/internal/cli"
	"qsk/internal/cmdutil"
	"qsk/internal/logging"
	"qsk/internal/version"
)

// env is the per-invocation state shared by the subcommands.
type env struct {
	stdout, stderr io.Writer
	log            zerolog.Logger
	global         cli.Global
}

func newRootCommand(e *env) *cobra.Command {
	root := &cobra.Command{
		Use:   "qsk",
		Short: "Clifford+T basic approximations and Solovay-Kitaev decomposition",
		Long: `qsk: single-qubit gate synthesis

  qsk basis       print every distinct short H/T/T† word with its SO(3) rotation
  qsk decompose   approximate rotations with the Solovay-Kitaev algorithm
  qsk apply       trace a Bloch-sphere point through a gate sequence`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return e.setup(cmd)
		},
	}
	root.SetOut(e.stdout)
	root.SetErr(e.stderr)
	root.SetVersionTemplate("qsk version {{.Version}}\n")
	cli.RegisterGlobal(root.PersistentFlags())
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error { return cmdutil.Usage(err) })

	root.AddCommand(
		newBasisCommand(e),
		newDecomposeCommand(e),
		newApplyCommand(e),
		newVersionCommand(e),
	)
	return root
}

// setup resolves the global flags and builds the logger.
func (e *env) setup(cmd *cobra.Command) error {
	cfgFile, _ := cmd.Flags().GetString(cli.FlagConfig)
	v, err := cli.NewViper(cmd.Flags(), cfgFile)
	if err != nil {
		return cmdutil.Usage(err)
	}
	e.global = cli.GlobalFromViper(v)
	log, err := logging.New(e.stderr, e.global.LogLevel, e.global.Quiet)
	if err != nil {
		return cmdutil.Usage(err)
	}
	e.log = log.With().Str("cmd", cmd.Name()).Logger()
	return nil
}

// RunContext executes qsk with argv and returns the process exit code.
func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	e := &env{stdout: stdout, stderr: stderr}
	e.log, _ = logging.New(stderr, "info", false)

	root := newRootCommand(e)
	root.SetArgs(argv)

	cmd, err := root.ExecuteContextC(parent)
	code := cmdutil.Code(err)
	if code == cmdutil.ExitOK || code == cmdutil.ExitCanceled {
		return code
	}
	var ee *cmdutil.ExitError
	if errors.As(err, &ee) && ee.Silent() {
		return code
	}
	e.log.Error().Err(err).Msg("failed")
	if code == cmdutil.ExitUsage && cmd != nil {
		_, _ = fmt.Fprintf(stderr, "Run '%s --help' for usage.\n", cmd.CommandPath())
	}
	return code
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

func newVersionCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(e.stdout, "qsk version %s\n", version.Version)
			if err != nil {
				return cmdutil.Failure(err)
			}
			return nil
		},
	}
}
