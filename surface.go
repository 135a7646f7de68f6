package trisurf

import (
	"math"

	"github.com/fogleman/delaunay"
	"github.com/pkg/errors"
	"github.com/soypat/trisurf/internal/d3"
	"github.com/soypat/trisurf/render"
	"gonum.org/v1/gonum/spatial/r3"
)

// Surface is a triangulated surface over a PointSet. Triangles are
// formed from the Delaunay triangulation of the (X, Y) projection
// and every vertex carries the Z of its source point.
type Surface struct {
	points PointSet
	// indices holds three point indices per triangle, counter clockwise
	// when viewed from +Z.
	indices []int
	zmin    float64
	zmax    float64
}

// Triangulate builds a Surface from ps. Points sharing the same (X, Y)
// position are only used once. The result is deterministic for identical input.
func Triangulate(ps PointSet) (*Surface, error) {
	if err := ps.check(); err != nil {
		return nil, err
	}
	n := ps.Len()
	if n < minColumns {
		return nil, errors.Wrapf(ErrTooFewPoints, "got %d", n)
	}
	pts := make([]delaunay.Point, n)
	for i := range pts {
		pts[i] = delaunay.Point{X: ps.X[i], Y: ps.Y[i]}
	}
	tri, err := delaunay.Triangulate(pts)
	if err != nil {
		return nil, errors.Wrap(ErrDegenerate, err.Error())
	}
	if len(tri.Triangles) == 0 {
		return nil, ErrDegenerate
	}
	if len(tri.Triangles)%3 != 0 {
		panic("bug: triangulation index count not a multiple of 3")
	}
	s := &Surface{
		points:  ps,
		indices: make([]int, len(tri.Triangles)),
		zmin:    math.Inf(1),
		zmax:    math.Inf(-1),
	}
	copy(s.indices, tri.Triangles)
	for i := 0; i < len(s.indices); i += 3 {
		a, b, c := s.indices[i], s.indices[i+1], s.indices[i+2]
		if orient(ps, a, b, c) < 0 {
			s.indices[i+1], s.indices[i+2] = c, b
		}
		for _, j := range s.indices[i : i+3] {
			s.zmin = math.Min(s.zmin, ps.Z[j])
			s.zmax = math.Max(s.zmax, ps.Z[j])
		}
	}
	return s, nil
}

// orient returns twice the signed area of the (X, Y) projection of triangle abc.
func orient(ps PointSet, a, b, c int) float64 {
	return (ps.X[b]-ps.X[a])*(ps.Y[c]-ps.Y[a]) - (ps.Y[b]-ps.Y[a])*(ps.X[c]-ps.X[a])
}

// Len returns the number of triangles.
func (s *Surface) Len() int { return len(s.indices) / 3 }

// Points returns the point set the surface was built from.
func (s *Surface) Points() PointSet { return s.points }

// Indices returns the point indices of the ith triangle.
func (s *Surface) Indices(i int) [3]int {
	return [3]int{s.indices[3*i], s.indices[3*i+1], s.indices[3*i+2]}
}

// Triangle returns the ith triangle in data coordinates.
func (s *Surface) Triangle(i int) render.Triangle3 {
	idx := s.Indices(i)
	return render.Triangle3{V: [3]r3.Vec{
		s.points.At(idx[0]),
		s.points.At(idx[1]),
		s.points.At(idx[2]),
	}}
}

// Triangles returns all triangles in data coordinates.
func (s *Surface) Triangles() []render.Triangle3 {
	t := make([]render.Triangle3, s.Len())
	for i := range t {
		t[i] = s.Triangle(i)
	}
	return t
}

// MeanZ returns the mean Z of the vertices of the ith triangle.
func (s *Surface) MeanZ(i int) float64 {
	idx := s.Indices(i)
	z := s.points.Z
	return (z[idx[0]] + z[idx[1]] + z[idx[2]]) / 3
}

// ZRange returns the smallest and largest Z over all triangle vertices.
func (s *Surface) ZRange() (min, max float64) { return s.zmin, s.zmax }

// Bounds returns the bounding box of the triangulated points.
func (s *Surface) Bounds() d3.Box {
	b := d3.EmptyBox()
	for _, j := range s.indices {
		b = b.Include(s.points.At(j))
	}
	return b
}

// Renderer returns a render.Renderer that streams the surface triangles.
func (s *Surface) Renderer() render.Renderer {
	return render.NewSliceRenderer(s.Triangles())
}
