package viewer

import (
	"github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms2"
)

// degreesPerPixel is how far the view orbits per pixel of mouse drag.
const degreesPerPixel = 0.4

// orbiter is the part of a figure the controls act on.
type orbiter interface {
	Orbit(dAzim, dElev float64)
	ResetView()
}

// action is the outcome of an input event.
type action uint8

const (
	actionNone action = iota
	actionRedraw
	actionClose
)

type key uint8

const (
	keyOther key = iota
	keyReset
	keyClose
)

// controls turns mouse drags and key presses into view changes.
type controls struct {
	fig      orbiter
	dragging bool
	last     ms2.Vec
}

func (c *controls) press(x, y float64) {
	c.dragging = true
	c.last = ms2.Vec{X: float32(x), Y: float32(y)}
}

func (c *controls) release() { c.dragging = false }

// move orbits the figure while dragging. Dragging right turns the
// surface left and dragging up raises the camera.
func (c *controls) move(x, y float64) action {
	pos := ms2.Vec{X: float32(x), Y: float32(y)}
	if !c.dragging {
		c.last = pos
		return actionNone
	}
	d := ms2.Sub(pos, c.last)
	c.last = pos
	if d.X == 0 && d.Y == 0 {
		return actionNone
	}
	c.fig.Orbit(float64(-d.X*degreesPerPixel), float64(d.Y*degreesPerPixel))
	return actionRedraw
}

func (c *controls) key(k key) action {
	switch k {
	case keyReset:
		c.fig.ResetView()
		return actionRedraw
	case keyClose:
		return actionClose
	}
	return actionNone
}

// letterbox returns the triangle strip, as interleaved position and
// texture coordinates, that shows an image of size img as large as
// possible inside a framebuffer of size fb while keeping its aspect.
// Texture row 0 is the top of the image.
func letterbox(fb, img ms2.Vec) [16]float32 {
	var sx, sy float32 = 1, 1
	if fb.X > 0 && fb.Y > 0 && img.X > 0 && img.Y > 0 {
		r := ms2.DivElem(fb, img)
		k := math32.Min(r.X, r.Y)
		s := ms2.DivElem(ms2.Scale(k, img), fb)
		sx, sy = s.X, s.Y
	}
	return [16]float32{
		-sx, -sy, 0, 1,
		sx, -sy, 1, 1,
		-sx, sy, 0, 0,
		sx, sy, 1, 0,
	}
}
