package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"qsk/internal/basis"
	"qsk/internal/gates"
	"qsk/internal/output"
)

// Flag names; also the viper keys and, upper-cased with '-'→'_' and a QSK_
// prefix, the environment variable names.
const (
	FlagLogLevel        = "log-level"
	FlagQuiet           = "quiet"
	FlagConfig          = "config"
	FlagGates           = "gates"
	FlagDepth           = "depth"
	FlagTol             = "tol"
	FlagOutput          = "output"
	FlagCompact         = "compact"
	FlagNoHeader        = "no-header"
	FlagProgress        = "progress"
	FlagOut             = "out"
	FlagBasis           = "basis"
	FlagBasisGates      = "basis-gates"
	FlagBasisDepth      = "basis-depth"
	FlagFrom            = "from"
	FlagTo              = "to"
	FlagGate            = "gate"
	FlagTargets         = "targets"
	FlagThreads         = "threads"
	FlagSort            = "sort"
	FlagNoMatchExitCode = "no-match-exit-code"
)

const EnvPrefix = "QSK"

// DefaultDecomposeDepth is the default Solovay-Kitaev recursion depth.
const DefaultDecomposeDepth = 3

func RegisterGlobal(fs *pflag.FlagSet) {
	fs.String(FlagLogLevel, "info", "log level: debug | info | warn | error")
	fs.BoolP(FlagQuiet, "q", false, "only log warnings and errors")
	fs.String(FlagConfig, "", "config file (yaml, toml or json) providing flag defaults")
}

func registerOutput(fs *pflag.FlagSet) {
	fs.StringP(FlagOutput, "o", output.FormatJSON, "output: "+strings.Join(output.Formats, " | "))
	fs.Bool(FlagCompact, false, "json: no indentation")
	fs.Bool(FlagNoHeader, false, "text: suppress header line")
}

func RegisterBasis(fs *pflag.FlagSet) {
	fs.StringSlice(FlagGates, gates.DefaultBasis, "basis gate labels")
	fs.IntP(FlagDepth, "d", basis.DefaultDepth, "maximum sequence length")
	fs.Float64(FlagTol, basis.DefaultTol, "drop sequences whose rotation is within this distance of a kept one")
	fs.Bool(FlagProgress, false, "show a progress bar on stderr")
	fs.String(FlagOut, "", "write to file instead of stdout")
	registerOutput(fs)
}

func RegisterDecompose(fs *pflag.FlagSet) {
	fs.String(FlagBasis, "", "basis JSON file from `qsk basis` (generated when absent)")
	fs.StringSlice(FlagBasisGates, gates.DefaultBasis, "gates for the generated basis")
	fs.Int(FlagBasisDepth, basis.DefaultDepth, "depth of the generated basis")
	fs.IntP(FlagDepth, "d", DefaultDecomposeDepth, "Solovay-Kitaev recursion depth")
	fs.String(FlagFrom, "", "start Bloch vector x,y,z")
	fs.String(FlagTo, "", "end Bloch vector x,y,z")
	fs.String(FlagGate, "", "approximate this gate")
	fs.String(FlagTargets, "", "target file: 'id from to' or 'id gate' per line")
	fs.IntP(FlagThreads, "t", 0, "worker threads (0=all CPUs)")
	fs.Bool(FlagSort, false, "sort results by id")
	fs.Int(FlagNoMatchExitCode, 1, "exit code when there are no targets")
	registerOutput(fs)
}

func RegisterApply(fs *pflag.FlagSet) {
	fs.String(FlagFrom, "0,0,1", "start Bloch vector x,y,z")
	fs.StringSlice(FlagGates, nil, "gates to apply, in order")
	fs.StringP(FlagOutput, "o", output.FormatText, "output: "+strings.Join(output.Formats, " | "))
	fs.Bool(FlagCompact, false, "json: no indentation")
	fs.Bool(FlagNoHeader, false, "text: suppress header line")
}

// NewViper layers flags over QSK_* environment variables over an optional
// config file.
func NewViper(fs *pflag.FlagSet, configFile string) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return nil, err
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	return v, nil
}
