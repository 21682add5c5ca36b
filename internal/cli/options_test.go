package cli

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

func decomposeFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("decompose", pflag.ContinueOnError)
	RegisterDecompose(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestDecomposeDefaults(t *testing.T) {
	v, err := NewViper(decomposeFlags(t, "--gate", "t"), "")
	require.NoError(t, err)
	o, err := DecomposeFromViper(v, nil)
	require.NoError(t, err)
	require.Equal(t, DefaultDecomposeDepth, o.Depth)
	require.Equal(t, []string{"h", "t", "tdg"}, o.BasisGates)
	require.Equal(t, "json", o.Output)
	require.True(t, o.Header)
	require.Equal(t, 1, o.NoMatchExitCode)
}

func TestDecomposeValidate_AggregatesErrors(t *testing.T) {
	o := DecomposeOptions{
		BasisGates: []string{"h", "cx", "h"},
		Depth:      -1,
		Threads:    -2,
		Output:     "xml",
	}
	err := o.Validate()
	require.Error(t, err)
	var me *multierror.Error
	require.ErrorAs(t, err, &me)
	// no source, unknown gate, duplicate gate, depth, threads, output
	require.Len(t, me.Errors, 6)
	require.Contains(t, err.Error(), `unknown gate "cx"`)
	require.Contains(t, err.Error(), `duplicate gate "h"`)
	require.Contains(t, err.Error(), "invalid --output")
}

func TestDecomposeValidate_Sources(t *testing.T) {
	base := DecomposeOptions{BasisGates: []string{"h", "t"}, Output: "json"}

	o := base
	o.From = "0,0,1"
	require.ErrorContains(t, o.Validate(), "supplied together")

	o.To = "1,0,0"
	require.NoError(t, o.Validate())

	o.Gate = "t"
	require.ErrorContains(t, o.Validate(), "mutually exclusive")

	o = base
	o.TargetFiles = []string{"-", "a.tsv", "-"}
	require.ErrorContains(t, o.Validate(), "only once")

	o = base
	o.Gate = "toffoli"
	require.ErrorContains(t, o.Validate(), `unknown gate "toffoli"`)

	// a basis file makes --basis-gates irrelevant
	o = base
	o.Gate = "h"
	o.BasisFile = "basis.json"
	o.BasisGates = nil
	require.NoError(t, o.Validate())
}

func TestDecomposeTargetFiles(t *testing.T) {
	v, err := NewViper(decomposeFlags(t, "--targets", "a.tsv"), "")
	require.NoError(t, err)
	o, err := DecomposeFromViper(v, []string{"b.tsv"})
	require.NoError(t, err)
	require.Equal(t, []string{"a.tsv", "b.tsv"}, o.TargetFiles)
}

func TestEnvOverridesDefaultFlagOverridesEnv(t *testing.T) {
	t.Setenv("QSK_DEPTH", "5")
	t.Setenv("QSK_BASIS_GATES", "H, T")

	v, err := NewViper(decomposeFlags(t, "--gate", "t"), "")
	require.NoError(t, err)
	o, err := DecomposeFromViper(v, nil)
	require.NoError(t, err)
	require.Equal(t, 5, o.Depth)
	require.Equal(t, []string{"h", "t"}, o.BasisGates)

	v, err = NewViper(decomposeFlags(t, "--gate", "t", "--depth", "2"), "")
	require.NoError(t, err)
	o, err = DecomposeFromViper(v, nil)
	require.NoError(t, err)
	require.Equal(t, 2, o.Depth)
}

func TestConfigFile(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "qsk.yaml")
	require.NoError(t, os.WriteFile(fn, []byte("depth: 4\noutput: jsonl\n"), 0o644))

	v, err := NewViper(decomposeFlags(t, "--gate", "t"), fn)
	require.NoError(t, err)
	o, err := DecomposeFromViper(v, nil)
	require.NoError(t, err)
	require.Equal(t, 4, o.Depth)
	require.Equal(t, "jsonl", o.Output)

	_, err = NewViper(decomposeFlags(t), filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorContains(t, err, "read config")
}

func TestBasisValidate(t *testing.T) {
	fs := pflag.NewFlagSet("basis", pflag.ContinueOnError)
	RegisterBasis(fs)
	require.NoError(t, fs.Parse([]string{"--gates", "h,s", "--no-header"}))
	v, err := NewViper(fs, "")
	require.NoError(t, err)
	o, err := BasisFromViper(v)
	require.NoError(t, err)
	require.Equal(t, []string{"h", "s"}, o.Gates)
	require.False(t, o.Header)

	o = BasisOptions{Depth: -1, Tol: -1, Output: "json"}
	var me *multierror.Error
	require.ErrorAs(t, o.Validate(), &me)
	require.Len(t, me.Errors, 3)
}

func TestBasisValidate_Tolerance(t *testing.T) {
	base := BasisOptions{Gates: []string{"h", "t"}, Depth: 2, Output: "json"}
	for _, tol := range []float64{0, -1e-10, math.NaN(), math.Inf(1)} {
		o := base
		o.Tol = tol
		require.ErrorContains(t, o.Validate(), "--tol must be a positive finite distance", tol)
	}
	base.Tol = 1e-12
	require.NoError(t, base.Validate())
}

func TestApplyValidate(t *testing.T) {
	o := ApplyOptions{Gates: []string{"h", "q"}, Output: "text"}
	var me *multierror.Error
	require.ErrorAs(t, o.Validate(), &me)
	require.Len(t, me.Errors, 2)
}

func TestLabels(t *testing.T) {
	require.Equal(t, []string{"h", "t", "tdg"}, labels([]string{" H,T", "", "Tdg "}))
	require.Nil(t, labels(nil))
}
