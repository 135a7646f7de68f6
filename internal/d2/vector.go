package d2

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Pol is a polar coordinate with angle Theta in radians.
type Pol struct {
	R, Theta float64
}

// PolarToCartesian converts a polar to a cartesian coordinate.
func (a Pol) PolarToCartesian() r2.Vec {
	return r2.Vec{X: a.R * math.Cos(a.Theta), Y: a.R * math.Sin(a.Theta)}
}
