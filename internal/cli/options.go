// internal/cli/options.go
package cli

import (
	"fmt"
	"math"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/viper"

	"qsk/internal/cliutil"
	"qsk/internal/gates"
	"qsk/internal/output"
)

// Global holds the persistent flags shared by every subcommand.
type Global struct {
	LogLevel string
	Quiet    bool
	Config   string
}

// BasisOptions configures `qsk basis`.
type BasisOptions struct {
	Gates    []string
	Depth    int
	Tol      float64
	Output   string
	Compact  bool
	Header   bool // true unless --no-header
	Progress bool
	Out      string // "" or "-" means stdout
}

// DecomposeOptions configures `qsk decompose`.
type DecomposeOptions struct {
	BasisFile  string
	BasisGates []string
	BasisDepth int

	Depth       int
	From        string
	To          string
	Gate        string
	TargetFiles []string // --targets followed by positional files

	Threads         int
	Output          string
	Compact         bool
	Header          bool
	Sort            bool
	NoMatchExitCode int
}

// ApplyOptions configures `qsk apply`.
type ApplyOptions struct {
	From    string
	Gates   []string
	Output  string
	Compact bool
	Header  bool
}

func GlobalFromViper(v *viper.Viper) Global {
	return Global{
		LogLevel: v.GetString(FlagLogLevel),
		Quiet:    v.GetBool(FlagQuiet),
		Config:   v.GetString(FlagConfig),
	}
}

func BasisFromViper(v *viper.Viper) (BasisOptions, error) {
	o := BasisOptions{
		Gates:    labels(v.GetStringSlice(FlagGates)),
		Depth:    v.GetInt(FlagDepth),
		Tol:      v.GetFloat64(FlagTol),
		Output:   v.GetString(FlagOutput),
		Compact:  v.GetBool(FlagCompact),
		Header:   !v.GetBool(FlagNoHeader),
		Progress: v.GetBool(FlagProgress),
		Out:      v.GetString(FlagOut),
	}
	return o, o.Validate()
}

// Validate reports every problem at once.
func (o BasisOptions) Validate() error {
	var result *multierror.Error
	result = checkGates(result, "--gates", o.Gates)
	if o.Depth < 0 {
		result = multierror.Append(result, fmt.Errorf("--depth must be ≥ 0"))
	}
	if !(o.Tol > 0) || math.IsInf(o.Tol, 0) {
		result = multierror.Append(result, fmt.Errorf("--tol must be a positive finite distance (got %v)", o.Tol))
	}
	result = checkOutput(result, o.Output)
	return result.ErrorOrNil()
}

// DecomposeFromViper reads the decompose flags; files are the already
// expanded positional target files.
func DecomposeFromViper(v *viper.Viper, files []string) (DecomposeOptions, error) {
	var targetFiles []string
	if f := v.GetString(FlagTargets); f != "" {
		targetFiles = append(targetFiles, f)
	}
	targetFiles = append(targetFiles, files...)
	o := DecomposeOptions{
		BasisFile:       v.GetString(FlagBasis),
		BasisGates:      labels(v.GetStringSlice(FlagBasisGates)),
		BasisDepth:      v.GetInt(FlagBasisDepth),
		Depth:           v.GetInt(FlagDepth),
		From:            v.GetString(FlagFrom),
		To:              v.GetString(FlagTo),
		Gate:            v.GetString(FlagGate),
		TargetFiles:     targetFiles,
		Threads:         v.GetInt(FlagThreads),
		Output:          v.GetString(FlagOutput),
		Compact:         v.GetBool(FlagCompact),
		Header:          !v.GetBool(FlagNoHeader),
		Sort:            v.GetBool(FlagSort),
		NoMatchExitCode: v.GetInt(FlagNoMatchExitCode),
	}
	return o, o.Validate()
}

func (o DecomposeOptions) Validate() error {
	var result *multierror.Error
	usingPoints := o.From != "" || o.To != ""
	sources := 0
	for _, on := range []bool{usingPoints, o.Gate != "", len(o.TargetFiles) > 0} {
		if on {
			sources++
		}
	}
	switch {
	case sources == 0:
		result = multierror.Append(result, fmt.Errorf("provide --from/--to, --gate or target files"))
	case sources > 1:
		result = multierror.Append(result, fmt.Errorf("--from/--to, --gate and target files are mutually exclusive"))
	case usingPoints && (o.From == "" || o.To == ""):
		result = multierror.Append(result, fmt.Errorf("--from and --to must be supplied together"))
	}
	if cliutil.CountStdin(o.TargetFiles) > 1 {
		result = multierror.Append(result, fmt.Errorf("stdin (-) may be given only once"))
	}
	if o.Gate != "" && !gates.IsKnown(o.Gate) {
		result = multierror.Append(result, fmt.Errorf("--gate: unknown gate %q", o.Gate))
	}
	if o.BasisFile == "" {
		result = checkGates(result, "--basis-gates", o.BasisGates)
	}
	if o.BasisDepth < 0 {
		result = multierror.Append(result, fmt.Errorf("--basis-depth must be ≥ 0"))
	}
	if o.Depth < 0 {
		result = multierror.Append(result, fmt.Errorf("--depth must be ≥ 0"))
	}
	if o.Threads < 0 {
		result = multierror.Append(result, fmt.Errorf("--threads must be ≥ 0"))
	}
	if o.NoMatchExitCode < 0 || o.NoMatchExitCode > 255 {
		result = multierror.Append(result, fmt.Errorf("--no-match-exit-code must be between 0 and 255"))
	}
	result = checkOutput(result, o.Output)
	return result.ErrorOrNil()
}

func ApplyFromViper(v *viper.Viper) (ApplyOptions, error) {
	o := ApplyOptions{
		From:    v.GetString(FlagFrom),
		Gates:   labels(v.GetStringSlice(FlagGates)),
		Output:  v.GetString(FlagOutput),
		Compact: v.GetBool(FlagCompact),
		Header:  !v.GetBool(FlagNoHeader),
	}
	return o, o.Validate()
}

func (o ApplyOptions) Validate() error {
	var result *multierror.Error
	if o.From == "" {
		result = multierror.Append(result, fmt.Errorf("--from is required"))
	}
	for _, g := range o.Gates {
		if !gates.IsKnown(g) {
			result = multierror.Append(result, fmt.Errorf("--gates: unknown gate %q", g))
		}
	}
	result = checkOutput(result, o.Output)
	return result.ErrorOrNil()
}

func checkGates(result *multierror.Error, flag string, list []string) *multierror.Error {
	if len(list) == 0 {
		return multierror.Append(result, fmt.Errorf("%s must name at least one gate", flag))
	}
	seen := map[string]bool{}
	for _, g := range list {
		switch {
		case !gates.IsKnown(g):
			result = multierror.Append(result, fmt.Errorf("%s: unknown gate %q (known: %s)", flag, g, strings.Join(gates.Labels(), ", ")))
		case seen[g]:
			result = multierror.Append(result, fmt.Errorf("%s: duplicate gate %q", flag, g))
		}
		seen[g] = true
	}
	return result
}

func checkOutput(result *multierror.Error, f string) *multierror.Error {
	if !output.IsFormat(f) {
		return multierror.Append(result, fmt.Errorf("invalid --output %q (want %s)", f, strings.Join(output.Formats, " | ")))
	}
	return result
}

// labels trims, lower-cases and drops empty entries. Viper hands env values
// over as a single comma-joined string, so those are split here too.
func labels(in []string) []string {
	var out []string
	for _, s := range in {
		for _, p := range strings.Split(s, ",") {
			if p = strings.ToLower(strings.TrimSpace(p)); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}
