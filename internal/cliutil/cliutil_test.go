package cliutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExpandPositionals(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.tsv")
	b := filepath.Join(dir, "b.tsv")
	_ = os.WriteFile(a, []byte("x t\n"), 0o644)
	_ = os.WriteFile(b, []byte("y h\n"), 0o644)
	got, err := ExpandPositionals([]string{filepath.Join(dir, "*.tsv"), "-"})
	if err != nil || len(got) != 3 || got[2] != "-" {
		t.Fatalf("expand: err=%v got=%v", err, got)
	}
}

func TestExpandPositionals_NoMatch(t *testing.T) {
	if _, err := ExpandPositionals([]string{filepath.Join(t.TempDir(), "*.tsv")}); err == nil {
		t.Fatal("expected error for unmatched glob")
	}
}

func TestCountStdin(t *testing.T) {
	if n := CountStdin([]string{"-", "a", "-"}); n != 2 {
		t.Fatalf("CountStdin = %d", n)
	}
}
