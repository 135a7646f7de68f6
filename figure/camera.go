package figure

import (
	"math"

	"github.com/fogleman/fauxgl"
	"github.com/soypat/trisurf/internal/d2"
	"github.com/soypat/trisurf/internal/d3"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	// minDistance keeps the camera outside the normalized axes box.
	minDistance = 2.
	// maxElevation keeps the view direction away from the up vector.
	maxElevation = 89.
	boxHalfZ     = 0.75
)

// normalBox is the box data is mapped into before projection.
// It mimics the 4:4:3 axes box of common 3D plotting tools.
var normalBox = d3.Box{
	Min: r3.Vec{X: -1, Y: -1, Z: -boxHalfZ},
	Max: r3.Vec{X: 1, Y: 1, Z: boxHalfZ},
}

// Camera projects data coordinates onto the unit square of a figure.
// The zero value is not usable, use NewCamera.
type Camera struct {
	data        d3.Box
	elevation   float64
	azimuth     float64
	fieldOfView float64
	distance    float64
	aspect      float64
	matrix      fauxgl.Matrix
}

// NewCamera returns a camera looking at the center of bounds with the
// view angles of cfg. Flat dimensions of bounds are widened to unit size.
func NewCamera(bounds d3.Box, cfg Config) Camera {
	cam := Camera{
		data:        bounds.Inflate(1),
		elevation:   cfg.Elevation,
		azimuth:     cfg.Azimuth,
		fieldOfView: cfg.FieldOfView,
		distance:    math.Max(cfg.Distance, minDistance),
		aspect:      float64(cfg.Width) / float64(cfg.Height),
	}
	cam.update()
	return cam
}

func (c *Camera) update() {
	eye := c.Eye()
	near := math.Max(0.1, c.distance-2)
	far := c.distance + 2
	c.matrix = fauxgl.LookAt(fv(eye), fauxgl.Vector{}, fauxgl.Vector{Z: 1}).
		Perspective(c.fieldOfView, c.aspect, near, far)
}

// Elevation returns the camera elevation in degrees.
func (c Camera) Elevation() float64 { return c.elevation }

// Azimuth returns the camera azimuth in degrees.
func (c Camera) Azimuth() float64 { return c.azimuth }

// Bounds returns the data box the camera is looking at.
func (c Camera) Bounds() d3.Box { return c.data }

// Eye returns the camera position in normalized coordinates.
func (c Camera) Eye() r3.Vec {
	elev := math.Max(-maxElevation, math.Min(maxElevation, c.elevation)) * math.Pi / 180
	h := d2.Pol{R: c.distance * math.Cos(elev), Theta: c.azimuth * math.Pi / 180}.PolarToCartesian()
	return r3.Vec{X: h.X, Y: h.Y, Z: c.distance * math.Sin(elev)}
}

// Matrix returns the view projection matrix for normalized coordinates.
func (c Camera) Matrix() fauxgl.Matrix { return c.matrix }

// WithAspect returns a copy of c with the viewport aspect ratio set to width/height.
func (c Camera) WithAspect(aspect float64) Camera {
	c.aspect = aspect
	c.update()
	return c
}

// Orbit rotates the camera about the center of the data. Elevation
// is clamped to [-90, 90] and azimuth wrapped to (-180, 180].
func (c *Camera) Orbit(dAzim, dElev float64) {
	c.azimuth = math.Mod(c.azimuth+dAzim, 360)
	if c.azimuth > 180 {
		c.azimuth -= 360
	} else if c.azimuth <= -180 {
		c.azimuth += 360
	}
	c.elevation = math.Max(-90, math.Min(90, c.elevation+dElev))
	c.update()
}

// Normalize maps a data point into the normalized axes box.
func (c Camera) Normalize(p r3.Vec) r3.Vec {
	return c.data.MapTo(normalBox, p)
}

// Project returns the position of data point p on the unit square
// with the origin at the lower left corner.
func (c Camera) Project(p r3.Vec) r2.Vec {
	return c.project(c.Normalize(p))
}

func (c Camera) project(n r3.Vec) r2.Vec {
	clip := c.matrix.MulPositionW(fv(n))
	return r2.Vec{
		X: (clip.X/clip.W + 1) / 2,
		Y: (clip.Y/clip.W + 1) / 2,
	}
}

func fv(v r3.Vec) fauxgl.Vector {
	return fauxgl.Vector{X: v.X, Y: v.Y, Z: v.Z}
}

func r3v(v fauxgl.Vector) r3.Vec {
	return r3.Vec{X: v.X, Y: v.Y, Z: v.Z}
}
