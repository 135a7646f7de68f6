package render_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/fogleman/fauxgl"
	"github.com/soypat/trisurf/render"
	"gonum.org/v1/gonum/spatial/r3"
)

func quad() []render.Triangle3 {
	return []render.Triangle3{
		{V: [3]r3.Vec{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 1}, {X: 0, Y: 1, Z: 1}}},
		{V: [3]r3.Vec{{X: 1, Y: 0, Z: 1}, {X: 1, Y: 1, Z: 2}, {X: 0, Y: 1, Z: 1}}},
	}
}

func TestSTLCreateWriteRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quad.stl")
	err := render.CreateSTL(path, render.NewSliceRenderer(quad()))
	if err != nil {
		t.Fatal(err)
	}
	bfile, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var b bytes.Buffer
	err = render.WriteSTL(&b, quad())
	if err != nil {
		t.Fatal(err)
	}
	if b.Len() != len(bfile) {
		t.Fatal("WriteSTL and CreateSTL output length mismatch")
	}
	if b.String() != string(bfile) {
		t.Fatal("WriteSTL and CreateSTL output mismatch")
	}

	// Independent reader.
	mesh, err := fauxgl.LoadSTL(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(mesh.Triangles) != len(quad()) {
		t.Fatalf("fauxgl read %d triangles, want %d", len(mesh.Triangles), len(quad()))
	}
}
