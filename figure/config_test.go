package figure

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	if cfg.Title != "Surface Plot" {
		t.Errorf("got title %q", cfg.Title)
	}
	if cfg.Labels != (LabelConfig{X: "X", Y: "Y", Z: "Z"}) {
		t.Errorf("got labels %+v", cfg.Labels)
	}
	if cfg.ColorMap != "viridis" {
		t.Errorf("got colormap %q", cfg.ColorMap)
	}
}

func TestConfigValidate(t *testing.T) {
	for _, test := range []struct {
		name string
		mod  func(*Config)
	}{
		{"zero width", func(c *Config) { c.Width = 0 }},
		{"negative height", func(c *Config) { c.Height = -1 }},
		{"zero dpi", func(c *Config) { c.DPI = 0 }},
		{"supersample", func(c *Config) { c.Supersample = 9 }},
		{"elevation", func(c *Config) { c.Elevation = 91 }},
		{"fov", func(c *Config) { c.FieldOfView = 180 }},
		{"distance", func(c *Config) { c.Distance = 1 }},
		{"colormap", func(c *Config) { c.ColorMap = "jet" }},
		{"pane color", func(c *Config) { c.PaneColor = "#12345" }},
		{"pane color not hex", func(c *Config) { c.PaneColor = "#gggggg" }},
	} {
		t.Run(test.name, func(t *testing.T) {
			cfg := DefaultConfig()
			test.mod(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "figure.yaml")
	const data = `
width: 320
colormap: Kindlmann
elevation: 45
labels:
  x: East
grid: false
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	want := DefaultConfig()
	if cfg.Width != 320 || cfg.Height != want.Height {
		t.Errorf("got size %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.Elevation != 45 || cfg.Azimuth != want.Azimuth {
		t.Errorf("got view %g/%g", cfg.Elevation, cfg.Azimuth)
	}
	if cfg.Labels.X != "East" {
		t.Errorf("got x label %q", cfg.Labels.X)
	}
	if cfg.Grid {
		t.Error("grid not disabled")
	}
	if cfg.Title != want.Title {
		t.Errorf("title not defaulted: %q", cfg.Title)
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("width: -3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(bad); err == nil {
		t.Error("expected validation error")
	}
	if err := os.WriteFile(bad, []byte("width: [1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(bad); err == nil {
		t.Error("expected parse error")
	}
	if _, err := LoadConfig(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
