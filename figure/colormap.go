package figure

import (
	"fmt"
	"image/color"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/fogleman/fauxgl"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"
)

// viridis control colors sampled every 1/8 of the scale. Their CIE L*
// is strictly increasing which NewLuminance requires.
var viridisControls = []color.Color{
	color.NRGBA{R: 0x44, G: 0x01, B: 0x54, A: 0xff},
	color.NRGBA{R: 0x47, G: 0x2d, B: 0x7b, A: 0xff},
	color.NRGBA{R: 0x3b, G: 0x52, B: 0x8b, A: 0xff},
	color.NRGBA{R: 0x2c, G: 0x72, B: 0x8e, A: 0xff},
	color.NRGBA{R: 0x21, G: 0x91, B: 0x8c, A: 0xff},
	color.NRGBA{R: 0x28, G: 0xae, B: 0x80, A: 0xff},
	color.NRGBA{R: 0x5e, G: 0xc9, B: 0x62, A: 0xff},
	color.NRGBA{R: 0xad, G: 0xdc, B: 0x30, A: 0xff},
	color.NRGBA{R: 0xfd, G: 0xe7, B: 0x25, A: 0xff},
}

var colorMaps = map[string]func() (palette.ColorMap, error){
	"viridis": func() (palette.ColorMap, error) {
		return moreland.NewLuminance(viridisControls)
	},
	"kindlmann":         wrap(moreland.Kindlmann),
	"extendedkindlmann": wrap(moreland.ExtendedKindlmann),
	"blackbody":         wrap(moreland.BlackBody),
	"extendedblackbody": wrap(moreland.ExtendedBlackBody),
}

func wrap(f func() palette.ColorMap) func() (palette.ColorMap, error) {
	return func() (palette.ColorMap, error) { return f(), nil }
}

// ColorMaps returns the sorted names of the available color maps.
func ColorMaps() []string {
	names := make([]string, 0, len(colorMaps))
	for name := range colorMaps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsColorMap reports whether name is an available color map.
func IsColorMap(name string) bool {
	_, ok := colorMaps[strings.ToLower(name)]
	return ok
}

// ColorMap returns the named color map scaled to [min, max].
// If min == max the range is widened by one unit about min so
// that every value maps to the middle of the scale.
func ColorMap(name string, min, max float64) (palette.ColorMap, error) {
	newMap, ok := colorMaps[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown colormap %q", name)
	}
	if math.IsNaN(min) || math.IsNaN(max) || min > max {
		return nil, fmt.Errorf("invalid colormap range [%g, %g]", min, max)
	}
	if min == max {
		min, max = min-0.5, max+0.5
	}
	cm, err := newMap()
	if err != nil {
		return nil, err
	}
	cm.SetMin(min)
	cm.SetMax(max)
	return cm, nil
}

// colorAt returns the color of v, clamping v to the color map range
// to absorb rounding at the extremes.
func colorAt(cm palette.ColorMap, v float64) (color.Color, error) {
	v = math.Max(cm.Min(), math.Min(cm.Max(), v))
	return cm.At(v)
}

func fauxColor(c color.Color) fauxgl.Color {
	r, g, b, a := c.RGBA()
	if a == 0 {
		return fauxgl.Color{}
	}
	// un-premultiply.
	fa := float64(a)
	return fauxgl.Color{R: float64(r) / fa, G: float64(g) / fa, B: float64(b) / fa, A: fa / 0xffff}
}

func nrgba(c fauxgl.Color) color.NRGBA {
	clamp := func(v float64) uint8 { return uint8(math.Round(255 * math.Max(0, math.Min(1, v)))) }
	return color.NRGBA{R: clamp(c.R), G: clamp(c.G), B: clamp(c.B), A: clamp(c.A)}
}

// parseHex parses #RGB, #RRGGBB and #RRGGBBAA colors.
func parseHex(s string) (color.NRGBA, error) {
	h := strings.TrimPrefix(s, "#")
	switch len(h) {
	case 3, 6, 8:
	default:
		return color.NRGBA{}, fmt.Errorf("bad hex color %q", s)
	}
	if _, err := strconv.ParseUint(h, 16, 32); err != nil {
		return color.NRGBA{}, fmt.Errorf("bad hex color %q", s)
	}
	return nrgba(fauxgl.HexColor(h)), nil
}
