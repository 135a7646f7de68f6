package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/soypat/trisurf"
	"github.com/soypat/trisurf/render"
)

const square = "0,0,0\n1,0,1\n0,1,1\n1,1,2\n"

func execute(t *testing.T, stdin string, args ...string) (stderr string, err error) {
	t.Helper()
	cmd := newRootCmd()
	var errBuf bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&errBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return errBuf.String(), err
}

func TestRunSavesFigureAndSTL(t *testing.T) {
	dir := t.TempDir()
	png := filepath.Join(dir, "square.png")
	stl := filepath.Join(dir, "square.stl")
	stderr, err := execute(t, square, "-o", png, "--stl", stl, "--width", "200", "--height", "150", "-v")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stderr, "2 triangles") {
		t.Errorf("verbose log missing triangle count:\n%s", stderr)
	}
	if fi, err := os.Stat(png); err != nil || fi.Size() == 0 {
		t.Errorf("figure not written: %v", err)
	}
	fp, err := os.Open(stl)
	if err != nil {
		t.Fatal(err)
	}
	defer fp.Close()
	tris, err := render.ReadSTL(fp)
	if err != nil {
		t.Fatal(err)
	}
	if len(tris) != 2 {
		t.Errorf("got %d STL triangles, want 2", len(tris))
	}
}

func TestRunInputFileAndASCII(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.csv")
	if err := os.WriteFile(input, []byte(square), 0o644); err != nil {
		t.Fatal(err)
	}
	stderr, err := execute(t, "", "--input", input, "--ascii", "-o", filepath.Join(dir, "out.svg"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stderr, "Z by row") {
		t.Errorf("ascii preview missing:\n%s", stderr)
	}
}

func TestRunErrors(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.png")
	for _, test := range []struct {
		name   string
		stdin  string
		args   []string
		target error
	}{
		{name: "empty", stdin: "", target: trisurf.ErrEmptyInput},
		{name: "short rows", stdin: "1,2\n3,4\n", target: trisurf.ErrShortRow},
		{name: "collinear", stdin: "0,0,0\n1,1,1\n2,2,2\n", target: trisurf.ErrDegenerate},
		{name: "not numbers", stdin: "a,b,c\n"},
		{name: "bad width", stdin: square, args: []string{"--width", "0"}},
		{name: "bad colormap", stdin: square, args: []string{"--colormap", "jet"}},
		{name: "missing config", stdin: square, args: []string{"--config", "does-not-exist.yaml"}},
		{name: "positional args", stdin: square, args: []string{"extra"}},
	} {
		t.Run(test.name, func(t *testing.T) {
			_, err := execute(t, test.stdin, append([]string{"-o", out}, test.args...)...)
			if err == nil {
				t.Fatal("expected error")
			}
			if test.target != nil && !errors.Is(err, test.target) {
				t.Errorf("got %v, want %v", err, test.target)
			}
		})
	}
}
