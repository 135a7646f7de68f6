package figure

import (
	"fmt"
	"image"

	"github.com/fogleman/fauxgl"
	"github.com/nfnt/resize"
	"github.com/soypat/trisurf"
	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/plot/palette"
)

// lightDir points towards the light, from the south west and slightly above.
var lightDir = r3.Unit(r3.Vec{X: -2, Y: -2, Z: 1})

// surfaceShader draws flat colored triangles given in normalized coordinates.
type surfaceShader struct {
	matrix fauxgl.Matrix
}

func (sh *surfaceShader) Vertex(v fauxgl.Vertex) fauxgl.Vertex {
	v.Output = sh.matrix.MulPositionW(v.Position)
	return v
}

func (sh *surfaceShader) Fragment(v fauxgl.Vertex) fauxgl.Color {
	return v.Color
}

// shadeFactor darkens a face by how much it turns away from the light.
// Both orientations of a face are lit alike.
func shadeFactor(n r3.Vec) float64 {
	if r3.Norm(n) == 0 {
		return 1
	}
	d := r3.Dot(r3.Unit(n), lightDir)
	if d < 0 {
		d = -d
	}
	return 0.65 + 0.35*d
}

// Rasterize draws the surface as seen by cam on a transparent image of
// width by height pixels. Each triangle is filled with the color of
// its mean Z. The scene is drawn supersample times larger and then
// reduced to smooth edges.
func Rasterize(s *trisurf.Surface, cam Camera, cm palette.ColorMap, width, height, supersample int, shade bool) (image.Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("raster size must be positive, got %dx%d", width, height)
	}
	if supersample < 1 {
		supersample = 1
	}
	cam = cam.WithAspect(float64(width) / float64(height))
	ctx := fauxgl.NewContext(width*supersample, height*supersample)
	ctx.ClearColorBufferWith(fauxgl.Color{})
	ctx.Cull = fauxgl.CullNone
	ctx.Shader = &surfaceShader{matrix: cam.Matrix()}

	for i := 0; i < s.Len(); i++ {
		tri := s.Triangle(i)
		c, err := colorAt(cm, s.MeanZ(i))
		if err != nil {
			return nil, fmt.Errorf("coloring triangle %d: %w", i, err)
		}
		col := fauxColor(c)
		var v [3]fauxgl.Vector
		for k := range v {
			v[k] = fv(cam.Normalize(tri.V[k]))
		}
		if shade {
			n := r3.Cross(r3.Sub(r3v(v[1]), r3v(v[0])), r3.Sub(r3v(v[2]), r3v(v[0])))
			k := shadeFactor(n)
			col = fauxgl.Color{R: col.R * k, G: col.G * k, B: col.B * k, A: col.A}
		}
		// Triangles are drawn one at a time so depth ties always resolve alike.
		ctx.DrawTriangle(&fauxgl.Triangle{
			V1: fauxgl.Vertex{Position: v[0], Color: col},
			V2: fauxgl.Vertex{Position: v[1], Color: col},
			V3: fauxgl.Vertex{Position: v[2], Color: col},
		})
	}
	img := ctx.Image()
	if supersample == 1 {
		return img, nil
	}
	return resize.Resize(uint(width), uint(height), img, resize.Bilinear), nil
}
