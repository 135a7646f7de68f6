// Package figure composes the image of a triangulated surface: a shaded
// raster of the surface inside a labelled axes box, with a title.
package figure

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/soypat/trisurf"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	_ "gonum.org/v1/plot/vg/vgpdf"
	_ "gonum.org/v1/plot/vg/vgsvg"
)

const (
	tickLabelOffset = 14
	axisLabelOffset = 34
)

var (
	gridStyle = draw.LineStyle{Color: color.Gray{Y: 0xc8}, Width: vg.Points(0.5)}
	edgeStyle = draw.LineStyle{Color: color.Gray{Y: 0xa0}, Width: vg.Points(0.5)}
	axisStyle = draw.LineStyle{Color: color.Black, Width: vg.Points(0.8)}
)

// Figure is a surface plot. Figure is not safe for concurrent use.
type Figure struct {
	cfg  Config
	surf *trisurf.Surface
	cmap palette.ColorMap
	pane color.NRGBA
	cam  Camera
}

// New creates a figure of s. The color map is scaled to the Z range of s.
func New(s *trisurf.Surface, cfg Config) (*Figure, error) {
	if s == nil || s.Len() == 0 {
		return nil, fmt.Errorf("figure: empty surface")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("figure: %w", err)
	}
	zmin, zmax := s.ZRange()
	cm, err := ColorMap(cfg.ColorMap, zmin, zmax)
	if err != nil {
		return nil, fmt.Errorf("figure: %w", err)
	}
	pane, _ := parseHex(cfg.PaneColor)
	return &Figure{
		cfg:  cfg,
		surf: s,
		cmap: cm,
		pane: pane,
		cam:  NewCamera(s.Bounds(), cfg),
	}, nil
}

// Config returns the configuration the figure was created with.
func (f *Figure) Config() Config { return f.cfg }

// Camera returns the current camera.
func (f *Figure) Camera() Camera { return f.cam }

// ColorMap returns the color map used for Z.
func (f *Figure) ColorMap() palette.ColorMap { return f.cmap }

// Orbit rotates the view by the given azimuth and elevation deltas in degrees.
func (f *Figure) Orbit(dAzim, dElev float64) { f.cam.Orbit(dAzim, dElev) }

// ResetView restores the configured view angles.
func (f *Figure) ResetView() { f.cam = NewCamera(f.surf.Bounds(), f.cfg) }

// Size returns the figure size in points.
func (f *Figure) Size() (w, h vg.Length) {
	dpi := vg.Length(f.cfg.DPI)
	return vg.Length(f.cfg.Width) * vg.Inch / dpi, vg.Length(f.cfg.Height) * vg.Inch / dpi
}

func (f *Figure) newCanvas() *vgimg.Canvas {
	w, h := f.Size()
	return vgimg.NewWith(vgimg.UseWH(w, h), vgimg.UseDPI(f.cfg.DPI))
}

// Plot lays out the figure for its configured size.
func (f *Figure) Plot() (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = f.cfg.Title
	p.BackgroundColor = color.White
	p.HideAxes()

	// The raster is sized to the data area so it is not stretched.
	dc := p.DataCanvas(draw.New(f.newCanvas()))
	sz := dc.Size()
	scale := float64(f.cfg.DPI) / float64(vg.Inch)
	pxw := int(math.Round(float64(sz.X) * scale))
	pxh := int(math.Round(float64(sz.Y) * scale))
	if pxw < 1 || pxh < 1 {
		return nil, fmt.Errorf("figure: %dx%d too small to hold the plot", f.cfg.Width, f.cfg.Height)
	}
	cam := f.cam.WithAspect(float64(pxw) / float64(pxh))
	ax := newAxesBox(cam)

	var ps []plot.Plotter
	panes, err := ax.panes(f.pane)
	if err != nil {
		return nil, err
	}
	ps = append(ps, panes...)
	if f.cfg.Grid {
		grid, err := ax.grid()
		if err != nil {
			return nil, err
		}
		ps = append(ps, grid...)
	}

	img, err := Rasterize(f.surf, cam, f.cmap, pxw, pxh, f.cfg.Supersample, f.cfg.Shade)
	if err != nil {
		return nil, fmt.Errorf("figure: %w", err)
	}
	ps = append(ps, plotter.NewImage(img, 0, 0, 1, 1))

	tickSty := p.X.Tick.Label
	tickSty.XAlign, tickSty.YAlign = text.XCenter, text.YCenter
	labelSty := p.X.Label.TextStyle
	labelSty.XAlign, labelSty.YAlign = text.XCenter, text.YCenter
	names := [3]string{f.cfg.Labels.X, f.cfg.Labels.Y, f.cfg.Labels.Z}
	for i, name := range names {
		axis, err := ax.axis(i, name, float64(pxw), float64(pxh), tickSty, labelSty)
		if err != nil {
			return nil, err
		}
		ps = append(ps, axis...)
	}
	for _, pl := range ps {
		p.Add(flat{pl})
	}
	p.X.Min, p.X.Max = 0, 1
	p.Y.Min, p.Y.Max = 0, 1
	return p, nil
}

// Image draws the figure to an image of the configured pixel size.
func (f *Figure) Image() (image.Image, error) {
	p, err := f.Plot()
	if err != nil {
		return nil, err
	}
	c := f.newCanvas()
	p.Draw(draw.New(c))
	return c.Image(), nil
}

// WriteTo encodes the figure to w in the given format: png, jpg, jpeg,
// tif, tiff, svg or pdf.
func (f *Figure) WriteTo(w io.Writer, format string) (int64, error) {
	p, err := f.Plot()
	if err != nil {
		return 0, err
	}
	format = strings.ToLower(strings.TrimPrefix(format, "."))
	var wt io.WriterTo
	switch format {
	case "png", "jpg", "jpeg", "tif", "tiff":
		c := f.newCanvas()
		p.Draw(draw.New(c))
		switch format {
		case "png":
			wt = vgimg.PngCanvas{Canvas: c}
		case "jpg", "jpeg":
			wt = vgimg.JpegCanvas{Canvas: c}
		default:
			wt = vgimg.TiffCanvas{Canvas: c}
		}
	case "svg", "pdf":
		width, height := f.Size()
		wt, err = p.WriterTo(width, height, format)
		if err != nil {
			return 0, err
		}
	default:
		return 0, fmt.Errorf("figure: unsupported format %q", format)
	}
	return wt.WriteTo(w)
}

var supported = map[string]bool{
	"png": true, "jpg": true, "jpeg": true, "tif": true, "tiff": true,
	"svg": true, "pdf": true,
}

// Save writes the figure to path choosing the format by its extension.
func (f *Figure) Save(path string) (err error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if !supported[ext] {
		return fmt.Errorf("figure: cannot pick a format for %q", path)
	}
	fp, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		e := fp.Close()
		if err == nil {
			err = e
		}
	}()
	_, err = f.WriteTo(fp, ext)
	return err
}

// flat hides the data range and glyph boxes of a plotter. Everything is
// placed on the unit square by the camera so the plot must not pad or
// widen its axes to make room.
type flat struct{ plot.Plotter }

// axesBox places the box, grid and axes of a figure on the unit square.
type axesBox struct {
	cam   Camera
	data  [3][2]float64 // data range per axis.
	back  r3.Vec        // coordinates of the back panes.
	front r3.Vec
}

func newAxesBox(cam Camera) axesBox {
	b := cam.Bounds()
	ax := axesBox{
		cam: cam,
		data: [3][2]float64{
			{b.Min.X, b.Max.X},
			{b.Min.Y, b.Max.Y},
			{b.Min.Z, b.Max.Z},
		},
	}
	eye := cam.Eye()
	for i := 0; i < 3; i++ {
		lo, hi := comp(normalBox.Min, i), comp(normalBox.Max, i)
		if comp(eye, i) > 0 {
			setComp(&ax.back, i, lo)
			setComp(&ax.front, i, hi)
		} else {
			setComp(&ax.back, i, hi)
			setComp(&ax.front, i, lo)
		}
	}
	return ax
}

func (ax axesBox) xy(n r3.Vec) plotter.XY {
	p := ax.cam.project(n)
	return plotter.XY{X: p.X, Y: p.Y}
}

func (ax axesBox) line(sty draw.LineStyle, a, b r3.Vec) (plot.Plotter, error) {
	l, err := plotter.NewLine(plotter.XYs{ax.xy(a), ax.xy(b)})
	if err != nil {
		return nil, err
	}
	l.LineStyle = sty
	return l, nil
}

// panes returns the three back faces of the box.
func (ax axesBox) panes(fill color.Color) ([]plot.Plotter, error) {
	var ps []plot.Plotter
	for i := 0; i < 3; i++ {
		j, k := (i+1)%3, (i+2)%3
		var ring plotter.XYs
		for _, c := range [4][2]bool{{false, false}, {true, false}, {true, true}, {false, true}} {
			var v r3.Vec
			setComp(&v, i, comp(ax.back, i))
			setComp(&v, j, pick(j, c[0]))
			setComp(&v, k, pick(k, c[1]))
			ring = append(ring, ax.xy(v))
		}
		poly, err := plotter.NewPolygon(ring)
		if err != nil {
			return nil, err
		}
		poly.Color = fill
		poly.LineStyle = edgeStyle
		ps = append(ps, poly)
	}
	return ps, nil
}

// grid returns the lines marking the ticks of every axis across the
// two back panes parallel to it.
func (ax axesBox) grid() ([]plot.Plotter, error) {
	var ps []plot.Plotter
	for i := 0; i < 3; i++ {
		for _, t := range ax.ticks(i) {
			for _, j := range [2]int{(i + 1) % 3, (i + 2) % 3} {
				k := 3 - i - j
				var a r3.Vec
				setComp(&a, i, t.norm)
				setComp(&a, j, comp(ax.back, j))
				b := a
				setComp(&a, k, comp(normalBox.Min, k))
				setComp(&b, k, comp(normalBox.Max, k))
				l, err := ax.line(gridStyle, a, b)
				if err != nil {
					return nil, err
				}
				ps = append(ps, l)
			}
		}
	}
	return ps, nil
}

type tick struct {
	norm  float64
	label string
}

// ticks returns the labelled ticks of axis i in normalized coordinates.
func (ax axesBox) ticks(i int) []tick {
	lo, hi := ax.data[i][0], ax.data[i][1]
	nlo, nhi := comp(normalBox.Min, i), comp(normalBox.Max, i)
	var ts []tick
	for _, t := range (plot.DefaultTicks{}).Ticks(lo, hi) {
		if t.Label == "" || t.Value < lo || t.Value > hi {
			continue
		}
		ts = append(ts, tick{
			norm:  nlo + (t.Value-lo)/(hi-lo)*(nhi-nlo),
			label: t.Label,
		})
	}
	return ts
}

// edge returns the position of the edge axis i is drawn along, as the
// coordinates of the other two axes.
func (ax axesBox) edge(i int) r3.Vec {
	var e r3.Vec
	switch i {
	case 0:
		e.Y, e.Z = ax.front.Y, ax.back.Z
	case 1:
		e.X, e.Z = ax.front.X, ax.back.Z
	default:
		// The vertical edge furthest left on screen that is not the back corner.
		left := math.Inf(1)
		for _, x := range [2]float64{normalBox.Min.X, normalBox.Max.X} {
			for _, y := range [2]float64{normalBox.Min.Y, normalBox.Max.Y} {
				if x == ax.back.X && y == ax.back.Y {
					continue
				}
				if p := ax.cam.project(r3.Vec{X: x, Y: y, Z: ax.back.Z}); p.X < left {
					left = p.X
					e.X, e.Y = x, y
				}
			}
		}
	}
	return e
}

// axis returns the edge line, tick labels and name of axis i. Labels
// are pushed away from the center of the box on screen.
func (ax axesBox) axis(i int, name string, pxw, pxh float64, tickSty, labelSty text.Style) ([]plot.Plotter, error) {
	e := ax.edge(i)
	a, b := e, e
	setComp(&a, i, comp(normalBox.Min, i))
	setComp(&b, i, comp(normalBox.Max, i))
	edge, err := ax.line(axisStyle, a, b)
	if err != nil {
		return nil, err
	}
	ps := []plot.Plotter{edge}

	mid := r3.Scale(0.5, r3.Add(a, b))
	out := r2.Sub(ax.cam.project(mid), ax.cam.project(r3.Vec{}))
	out = r2.Vec{X: out.X * pxw, Y: out.Y * pxh}
	if r2.Norm(out) < 1e-9 {
		out = r2.Vec{Y: -1}
	}
	out = r2.Unit(out)

	ts := ax.ticks(i)
	if len(ts) > 0 {
		xyl := plotter.XYLabels{XYs: make(plotter.XYs, len(ts)), Labels: make([]string, len(ts))}
		for n, t := range ts {
			v := e
			setComp(&v, i, t.norm)
			xyl.XYs[n] = ax.xy(v)
			xyl.Labels[n] = t.label
		}
		labels, err := offsetLabels(xyl, tickSty, out, tickLabelOffset)
		if err != nil {
			return nil, err
		}
		ps = append(ps, labels)
	}
	if name != "" {
		xyl := plotter.XYLabels{XYs: plotter.XYs{ax.xy(mid)}, Labels: []string{name}}
		labels, err := offsetLabels(xyl, labelSty, out, axisLabelOffset)
		if err != nil {
			return nil, err
		}
		ps = append(ps, labels)
	}
	return ps, nil
}

func offsetLabels(xyl plotter.XYLabels, sty text.Style, dir r2.Vec, dist float64) (*plotter.Labels, error) {
	l, err := plotter.NewLabels(xyl)
	if err != nil {
		return nil, err
	}
	for n := range l.TextStyle {
		l.TextStyle[n] = sty
	}
	l.Offset = vg.Point{X: vg.Points(dir.X * dist), Y: vg.Points(dir.Y * dist)}
	return l, nil
}

func comp(v r3.Vec, i int) float64 {
	switch i {
	case 0:
		return v.X
	case 1:
		return v.Y
	case 2:
		return v.Z
	}
	panic("bug: bad axis index")
}

func setComp(v *r3.Vec, i int, x float64) {
	switch i {
	case 0:
		v.X = x
	case 1:
		v.Y = x
	case 2:
		v.Z = x
	default:
		panic("bug: bad axis index")
	}
}

// pick returns the upper bound of axis i of the normalized box if max
// is set, the lower bound otherwise.
func pick(i int, max bool) float64 {
	if max {
		return comp(normalBox.Max, i)
	}
	return comp(normalBox.Min, i)
}
