// internal/target/loader.go
package target

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"qsk/internal/gates"
	"qsk/internal/so3"
)

// Target is one rotation to decompose: either the rotation carrying From onto
// To on the Bloch sphere, or the named gate Gate.
type Target struct {
	ID   string
	From so3.Vec
	To   so3.Vec
	Gate string
}

// IsGate reports whether t names a gate rather than a pair of points.
func (t Target) IsGate() bool { return t.Gate != "" }

// ParseVec parses "x,y,z". Components must be finite and not all zero.
func ParseVec(s string) (so3.Vec, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return so3.Vec{}, fmt.Errorf("vector %q: want x,y,z", s)
	}
	var v so3.Vec
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return so3.Vec{}, fmt.Errorf("vector %q: %w", s, err)
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return so3.Vec{}, fmt.Errorf("vector %q: component %d is not finite", s, i+1)
		}
		v[i] = f
	}
	if v == (so3.Vec{}) {
		return so3.Vec{}, fmt.Errorf("vector %q: zero length", s)
	}
	return v, nil
}

// LoadTSV reads a whitespace-separated target file. Each line is either
//
//	id from_x,from_y,from_z to_x,to_y,to_z
//	id gate
//
// Blank lines and lines starting with '#' are skipped.
func LoadTSV(path string) ([]Target, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()
	return Read(fh, path)
}

// LoadAll reads every path in order ("-" reads stdin) and rejects IDs that
// repeat across files.
func LoadAll(paths []string, stdin io.Reader) ([]Target, error) {
	var all []Target
	origin := map[string]string{}
	for _, p := range paths {
		var (
			list []Target
			err  error
		)
		if p == "-" {
			list, err = Read(stdin, "<stdin>")
		} else {
			list, err = LoadTSV(p)
		}
		if err != nil {
			return nil, err
		}
		for _, t := range list {
			if prev, dup := origin[t.ID]; dup {
				return nil, fmt.Errorf("%s: duplicate id %q (also in %s)", p, t.ID, prev)
			}
			origin[t.ID] = p
		}
		all = append(all, list...)
	}
	return all, nil
}

// Read parses targets from r; name is used in error messages.
func Read(r io.Reader, name string) ([]Target, error) {
	var list []Target
	seen := map[string]int{}
	sc := bufio.NewScanner(r)
	ln := 0
	for sc.Scan() {
		ln++
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		f := strings.Fields(line)
		var t Target
		switch len(f) {
		case 2:
			if !gates.IsKnown(f[1]) {
				return nil, fmt.Errorf("%s:%d unknown gate %q", name, ln, f[1])
			}
			t = Target{ID: f[0], Gate: f[1]}
		case 3:
			from, err := ParseVec(f[1])
			if err != nil {
				return nil, fmt.Errorf("%s:%d %w", name, ln, err)
			}
			to, err := ParseVec(f[2])
			if err != nil {
				return nil, fmt.Errorf("%s:%d %w", name, ln, err)
			}
			t = Target{ID: f[0], From: from, To: to}
		default:
			return nil, fmt.Errorf("%s:%d bad field count", name, ln)
		}
		if prev, dup := seen[t.ID]; dup {
			return nil, fmt.Errorf("%s:%d duplicate id %q (first on line %d)", name, ln, t.ID, prev)
		}
		seen[t.ID] = ln
		list = append(list, t)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return list, nil
}
