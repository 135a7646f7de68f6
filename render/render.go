package render

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// Renderer streams triangles. ReadTriangles fills t and returns
// the number of triangles written. It returns io.EOF once no
// triangles remain.
type Renderer interface {
	ReadTriangles(t []Triangle3) (int, error)
}

// Triangle3 is a 3D triangle.
type Triangle3 struct {
	V [3]r3.Vec
}

// Normal returns the unit normal of the triangle following the
// right hand rule over V[0], V[1], V[2].
func (t Triangle3) Normal() r3.Vec {
	e1 := r3.Sub(t.V[1], t.V[0])
	e2 := r3.Sub(t.V[2], t.V[0])
	return r3.Unit(r3.Cross(e1, e2))
}

// Centroid returns the mean of the triangle vertices.
func (t Triangle3) Centroid() r3.Vec {
	return r3.Scale(1./3, r3.Add(t.V[0], r3.Add(t.V[1], t.V[2])))
}

// Degenerate returns true if two vertices are within tol of each other.
func (t Triangle3) Degenerate(tol float64) bool {
	return equalWithin(t.V[0], t.V[1], tol) ||
		equalWithin(t.V[1], t.V[2], tol) ||
		equalWithin(t.V[2], t.V[0], tol)
}

func equalWithin(a, b r3.Vec, tol float64) bool {
	d := r3.Sub(a, b)
	return d.X <= tol && d.X >= -tol &&
		d.Y <= tol && d.Y >= -tol &&
		d.Z <= tol && d.Z >= -tol
}
