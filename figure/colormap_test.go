package figure

import (
	"image/color"
	"testing"
)

func nearColor(a, b color.Color, tol int) bool {
	ca := color.NRGBAModel.Convert(a).(color.NRGBA)
	cb := color.NRGBAModel.Convert(b).(color.NRGBA)
	d := func(x, y uint8) int {
		if x > y {
			return int(x - y)
		}
		return int(y - x)
	}
	return d(ca.R, cb.R) <= tol && d(ca.G, cb.G) <= tol && d(ca.B, cb.B) <= tol && d(ca.A, cb.A) <= tol
}

func TestViridisEndpoints(t *testing.T) {
	cm, err := ColorMap("viridis", -3, 5)
	if err != nil {
		t.Fatal(err)
	}
	lo, err := cm.At(-3)
	if err != nil {
		t.Fatal(err)
	}
	hi, err := cm.At(5)
	if err != nil {
		t.Fatal(err)
	}
	if !nearColor(lo, viridisControls[0], 3) {
		t.Errorf("low end %v, want %v", lo, viridisControls[0])
	}
	if !nearColor(hi, viridisControls[len(viridisControls)-1], 3) {
		t.Errorf("high end %v, want %v", hi, viridisControls[len(viridisControls)-1])
	}
}

func TestColorMapNames(t *testing.T) {
	for _, name := range ColorMaps() {
		if !IsColorMap(name) {
			t.Errorf("%q listed but not available", name)
		}
		if _, err := ColorMap(name, 0, 1); err != nil {
			t.Errorf("%s: %v", name, err)
		}
	}
	if !IsColorMap("Viridis") {
		t.Error("color map names should be case insensitive")
	}
	if _, err := ColorMap("jet", 0, 1); err == nil {
		t.Error("expected error for unknown color map")
	}
	if _, err := ColorMap("viridis", 1, 0); err == nil {
		t.Error("expected error for inverted range")
	}
}

func TestColorMapFlatRange(t *testing.T) {
	cm, err := ColorMap("viridis", 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	if cm.Min() >= 2 || cm.Max() <= 2 {
		t.Fatalf("range [%g,%g] not widened about 2", cm.Min(), cm.Max())
	}
	if _, err := colorAt(cm, 2); err != nil {
		t.Error(err)
	}
	// Values off the scale are clamped.
	c, err := colorAt(cm, 100)
	if err != nil {
		t.Fatal(err)
	}
	top, _ := cm.At(cm.Max())
	if !nearColor(c, top, 0) {
		t.Errorf("clamped color %v, want %v", c, top)
	}
}

func TestParseHex(t *testing.T) {
	for _, test := range []struct {
		in   string
		want color.NRGBA
	}{
		{"#f2f2f2", color.NRGBA{R: 0xf2, G: 0xf2, B: 0xf2, A: 0xff}},
		{"ff0000", color.NRGBA{R: 0xff, A: 0xff}},
		{"#fff", color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}},
		{"#00ff0080", color.NRGBA{G: 0xff, A: 0x80}},
	} {
		got, err := parseHex(test.in)
		if err != nil {
			t.Errorf("%s: %v", test.in, err)
			continue
		}
		if got != test.want {
			t.Errorf("%s: got %v, want %v", test.in, got, test.want)
		}
	}
	for _, bad := range []string{"", "#", "#ff", "#fffff", "#zzzzzz"} {
		if _, err := parseHex(bad); err == nil {
			t.Errorf("%q: expected error", bad)
		}
	}
}
