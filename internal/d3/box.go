package d3

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Box is a 3d axis aligned bounding box.
type Box r3.Box

// EmptyBox returns a box that contains nothing. Including a point
// in an empty box returns a zero size box around that point.
func EmptyBox() Box {
	inf := math.Inf(1)
	return Box{Min: Elem(inf), Max: Elem(-inf)}
}

// Equals test the equality of 3d boxes.
func (a Box) Equals(b Box, tol float64) bool {
	return EqualWithin(a.Min, b.Min, tol) && EqualWithin(a.Max, b.Max, tol)
}

// Include enlarges a 3d box to include a point.
func (a Box) Include(v r3.Vec) Box {
	return Box{
		Min: MinElem(a.Min, v),
		Max: MaxElem(a.Max, v),
	}
}

// Size returns the size of a 3d box.
func (a Box) Size() r3.Vec {
	return r3.Sub(a.Max, a.Min)
}

// Center returns the center of a 3d box.
func (a Box) Center() r3.Vec {
	return r3.Add(a.Min, r3.Scale(0.5, a.Size()))
}

// Inflate returns a box with every zero-width dimension widened to
// width w about its center. Non degenerate dimensions are unchanged.
func (a Box) Inflate(w float64) Box {
	c := a.Center()
	sz := a.Size()
	if sz.X <= 0 {
		a.Min.X, a.Max.X = c.X-w/2, c.X+w/2
	}
	if sz.Y <= 0 {
		a.Min.Y, a.Max.Y = c.Y-w/2, c.Y+w/2
	}
	if sz.Z <= 0 {
		a.Min.Z, a.Max.Z = c.Z-w/2, c.Z+w/2
	}
	return a
}

// Contains checks if the 3d box contains the given vector (considering bounds as inside).
func (a Box) Contains(v r3.Vec) bool {
	return a.Min.X <= v.X && a.Min.Y <= v.Y && a.Min.Z <= v.Z &&
		v.X <= a.Max.X && v.Y <= a.Max.Y && v.Z <= a.Max.Z
}

// Vertices returns a slice of 3d box corner vertices.
// Vertex i has its X at Max when bit 2 of i is set, Y at Max
// when bit 1 is set and Z at Max when bit 0 is set.
func (a Box) Vertices() Set {
	v := make([]r3.Vec, 8)
	v[0] = a.Min
	v[1] = r3.Vec{X: a.Min.X, Y: a.Min.Y, Z: a.Max.Z}
	v[2] = r3.Vec{X: a.Min.X, Y: a.Max.Y, Z: a.Min.Z}
	v[3] = r3.Vec{X: a.Min.X, Y: a.Max.Y, Z: a.Max.Z}
	v[4] = r3.Vec{X: a.Max.X, Y: a.Min.Y, Z: a.Min.Z}
	v[5] = r3.Vec{X: a.Max.X, Y: a.Min.Y, Z: a.Max.Z}
	v[6] = r3.Vec{X: a.Max.X, Y: a.Max.Y, Z: a.Min.Z}
	v[7] = a.Max
	return v
}

// MapTo returns the point p, given in a's coordinates, linearly
// mapped into box b. a must have non zero size in every dimension.
func (a Box) MapTo(b Box, p r3.Vec) r3.Vec {
	rel := DivElem(r3.Sub(p, a.Min), a.Size())
	return r3.Add(b.Min, MulElem(rel, b.Size()))
}
