// Package basis generates basic approximations: every distinct rotation
// reachable by short words over a fixed single-qubit gate set. The result
// seeds the Solovay-Kitaev recursion and is what `qsk basis` prints.
package basis

import (
	"context"
	"fmt"
	"math"

	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"

	"qsk/internal/gates"
	"qsk/internal/seq"
	"qsk/internal/so3"
)

const (
	DefaultDepth = 10
	DefaultTol   = 1e-10
)

// Config controls Generate.
type Config struct {
	Gates []string // basis labels; empty means gates.DefaultBasis
	Depth int      // maximum word length
	Tol   float64  // products within this distance of a kept product are dropped; 0 means DefaultTol
	Log   zerolog.Logger
}

// ProgressFunc is called after each BFS level with the level number (1-based)
// and the total number of kept sequences so far.
type ProgressFunc func(level, kept int)

// Validate reports every problem with c at once.
func (c Config) Validate() error {
	var result *multierror.Error
	if c.Depth < 0 {
		result = multierror.Append(result, fmt.Errorf("depth must be ≥ 0 (got %d)", c.Depth))
	}
	if c.Tol < 0 || math.IsNaN(c.Tol) {
		result = multierror.Append(result, fmt.Errorf("tolerance must be ≥ 0 (got %v)", c.Tol))
	}
	seen := map[string]bool{}
	for _, g := range c.Gates {
		if !gates.IsKnown(g) {
			result = multierror.Append(result, fmt.Errorf("unknown gate %q", g))
			continue
		}
		if seen[g] {
			result = multierror.Append(result, fmt.Errorf("duplicate gate %q", g))
		}
		seen[g] = true
	}
	return result.ErrorOrNil()
}

// Generate runs a breadth-first search over words in cfg.Gates up to
// cfg.Depth and returns the distinct sequences in BFS order, starting with
// the empty (identity) sequence.
//
// A word is extended by every basis gate except the inverse of its last
// gate. A candidate survives only if no kept sequence has the same name and
// its product is farther than cfg.Tol from every kept product.
func Generate(ctx context.Context, cfg Config, progress ProgressFunc) ([]seq.GateSequence, error) {
	if len(cfg.Gates) == 0 {
		cfg.Gates = gates.DefaultBasis
	}
	if cfg.Tol == 0 {
		cfg.Tol = DefaultTol
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	root := seq.New()
	out := []seq.GateSequence{root}
	names := map[string]struct{}{root.Name(): {}}
	idx := newIndex([]*point{newPoint(so3.Flatten(root.Product), 0)})

	frontier := []seq.GateSequence{root}
	for level := 1; level <= cfg.Depth; level++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var next []seq.GateSequence
		for _, n := range frontier {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			skip := ""
			if l := n.Len(); l > 0 {
				skip = gates.Inverse(n.Gates[l-1])
			}
			for _, g := range cfg.Gates {
				if g == skip {
					continue
				}
				cand, err := n.Append(g)
				if err != nil {
					return nil, err
				}
				if _, dup := names[cand.Name()]; dup {
					continue
				}
				flat := so3.Flatten(cand.Product)
				if _, d2, ok := idx.nearest(flat); ok && math.Sqrt(d2) <= cfg.Tol {
					continue
				}
				p := newPoint(flat, len(out))
				idx.insert(p)
				names[cand.Name()] = struct{}{}
				out = append(out, cand)
				next = append(next, cand)
			}
		}
		cfg.Log.Debug().Int("level", level).Int("new", len(next)).Int("kept", len(out)).Msg("basis level done")
		if progress != nil {
			progress(level, len(out))
		}
		frontier = next
		if len(frontier) == 0 {
			break
		}
	}
	return out, nil
}
