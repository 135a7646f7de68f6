package trisurf

import (
	"github.com/soypat/trisurf/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// PointSet holds three index aligned coordinate columns.
type PointSet struct {
	X, Y, Z []float64
}

// Len returns the number of points. It panics if the columns
// are not the same length.
func (ps PointSet) Len() int {
	if err := ps.check(); err != nil {
		panic(err)
	}
	return len(ps.X)
}

// At returns the ith point.
func (ps PointSet) At(i int) r3.Vec {
	return r3.Vec{X: ps.X[i], Y: ps.Y[i], Z: ps.Z[i]}
}

// Bounds returns the axis aligned bounding box of the points.
func (ps PointSet) Bounds() d3.Box {
	b := d3.EmptyBox()
	for i := range ps.X {
		b = b.Include(ps.At(i))
	}
	return b
}

func (ps PointSet) check() error {
	if len(ps.X) != len(ps.Y) || len(ps.X) != len(ps.Z) {
		return ErrColumnLength
	}
	return nil
}
