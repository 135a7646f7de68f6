// Package trisurf turns headerless numeric CSV tables into triangulated
// surfaces. Column 0 of every row is X, column 1 is Y and column 2 is Z.
// The (X, Y) projection of the rows is Delaunay triangulated and Z is carried
// on each vertex so the result can be rasterized or exported as a mesh.
//
// The processing chain is strictly linear:
//
//	ReadTable -> Table.Points -> Triangulate -> Surface
package trisurf

import (
	"github.com/pkg/errors"
)

var (
	// ErrEmptyInput is returned when the input holds no data rows.
	ErrEmptyInput = errors.New("trisurf: input has no data rows")
	// ErrShortRow is returned when a row has fewer than three fields.
	ErrShortRow = errors.New("trisurf: row has fewer than 3 columns")
	// ErrNotFinite is returned when a coordinate is NaN or infinite.
	ErrNotFinite = errors.New("trisurf: coordinate is not finite")
	// ErrTooFewPoints is returned when fewer than three points are triangulated.
	ErrTooFewPoints = errors.New("trisurf: need at least 3 points to triangulate")
	// ErrDegenerate is returned when no triangle can be formed from the
	// (X, Y) projection, i.e. all points are collinear or coincident.
	ErrDegenerate = errors.New("trisurf: points are collinear, no triangulation exists")
	// ErrColumnLength is returned when the X, Y and Z columns of a PointSet
	// are not the same length.
	ErrColumnLength = errors.New("trisurf: coordinate columns have different lengths")
)

// minColumns is the number of leading columns used from each row.
const minColumns = 3
