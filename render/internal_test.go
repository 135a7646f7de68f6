package render

import (
	"bytes"
	"io"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func pyramid() []Triangle3 {
	apex := r3.Vec{X: 0.5, Y: 0.5, Z: 1}
	base := [4]r3.Vec{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
	var model []Triangle3
	for i := range base {
		model = append(model, Triangle3{V: [3]r3.Vec{base[i], base[(i+1)%4], apex}})
	}
	return model
}

func TestSTLWriteReadback(t *testing.T) {
	const tol = 1e-6
	input := pyramid()
	var b bytes.Buffer
	err := WriteSTL(&b, input)
	if err != nil {
		t.Fatal(err)
	}
	if b.Len() != 84+stlTriangleSize*len(input) {
		t.Fatalf("unexpected STL size %d", b.Len())
	}
	output, err := readBinarySTL(&b)
	if err != nil {
		t.Fatal(err)
	}
	if len(output) != len(input) {
		t.Fatal("length of triangles written/read not equal")
	}
	for iface, expect := range input {
		got := output[iface]
		if got.Degenerate(1e-12) {
			t.Fatalf("triangle degenerate: %+v", got)
		}
		for i := range expect.V {
			if !equalWithin(got.V[i], expect.V[i], tol) {
				t.Errorf("%dth triangle equality out of tolerance. got vertex %0.5g, want %0.5g", iface, got.V[i], expect.V[i])
			}
		}
	}
}

func TestSTLTruncated(t *testing.T) {
	var b bytes.Buffer
	err := WriteSTL(&b, pyramid())
	if err != nil {
		t.Fatal(err)
	}
	_, err = readBinarySTL(bytes.NewReader(b.Bytes()[:b.Len()-10]))
	if err == nil {
		t.Fatal("expected error reading truncated STL")
	}
}

func TestWriteSTLEmpty(t *testing.T) {
	if err := WriteSTL(io.Discard, nil); err == nil {
		t.Fatal("expected error writing empty model")
	}
}

func TestSliceRenderer(t *testing.T) {
	model := pyramid()
	r := NewSliceRenderer(model)
	buf := make([]Triangle3, 3)
	n, err := r.ReadTriangles(buf)
	if err != nil || n != 3 {
		t.Fatalf("got n=%d err=%v", n, err)
	}
	if r.Len() != 1 {
		t.Fatalf("expected one triangle left, got %d", r.Len())
	}
	got, err := RenderAll(r)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0] != model[3] {
		t.Fatalf("unexpected remaining triangles %v", got)
	}
}

func TestTriangleNormal(t *testing.T) {
	tri := Triangle3{V: [3]r3.Vec{{}, {X: 1}, {Y: 1}}}
	if n := tri.Normal(); !equalWithin(n, r3.Vec{Z: 1}, 1e-12) {
		t.Errorf("got normal %v, want +Z", n)
	}
	c := tri.Centroid()
	if !equalWithin(c, r3.Vec{X: 1. / 3, Y: 1. / 3}, 1e-12) {
		t.Errorf("got centroid %v", c)
	}
}
