package figure

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultWidth       = 640
	DefaultHeight      = 480
	DefaultDPI         = 100
	DefaultElevation   = 30.
	DefaultAzimuth     = -60.
	DefaultFieldOfView = 30.
	DefaultDistance    = 6.5
	DefaultSupersample = 2
	DefaultColorMap    = "viridis"
	DefaultTitle       = "Surface Plot"
)

// Config describes how a surface figure is built.
type Config struct {
	// Width and Height of the figure in pixels.
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	DPI    int `yaml:"dpi"`
	// Elevation and Azimuth of the camera in degrees.
	Elevation float64 `yaml:"elevation"`
	Azimuth   float64 `yaml:"azimuth"`
	// FieldOfView is the vertical field of view in degrees.
	FieldOfView float64 `yaml:"fov"`
	// Distance from the camera to the center of the normalized
	// axes box, whose largest half size is 1.
	Distance    float64     `yaml:"distance"`
	Supersample int         `yaml:"supersample"`
	ColorMap    string      `yaml:"colormap"`
	Title       string      `yaml:"title"`
	Labels      LabelConfig `yaml:"labels"`
	// PaneColor is the hex color of the back panes of the axes box.
	PaneColor string `yaml:"pane_color"`
	Grid      bool   `yaml:"grid"`
	// Shade darkens faces turned away from the light.
	Shade bool `yaml:"shade"`
}

type LabelConfig struct {
	X string `yaml:"x"`
	Y string `yaml:"y"`
	Z string `yaml:"z"`
}

func DefaultConfig() Config {
	return Config{
		Width:       DefaultWidth,
		Height:      DefaultHeight,
		DPI:         DefaultDPI,
		Elevation:   DefaultElevation,
		Azimuth:     DefaultAzimuth,
		FieldOfView: DefaultFieldOfView,
		Distance:    DefaultDistance,
		Supersample: DefaultSupersample,
		ColorMap:    DefaultColorMap,
		Title:       DefaultTitle,
		Labels:      LabelConfig{X: "X", Y: "Y", Z: "Z"},
		PaneColor:   "#f2f2f2",
		Grid:        true,
		Shade:       true,
	}
}

// LoadConfig reads a YAML file over the default configuration.
// Fields missing from the file keep their default value.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate returns an error if the configuration cannot produce a figure.
func (cfg Config) Validate() error {
	switch {
	case cfg.Width <= 0 || cfg.Height <= 0:
		return fmt.Errorf("figure size must be positive, got %dx%d", cfg.Width, cfg.Height)
	case cfg.DPI <= 0:
		return fmt.Errorf("dpi must be positive, got %d", cfg.DPI)
	case cfg.Supersample < 1 || cfg.Supersample > 8:
		return fmt.Errorf("supersample must be in [1, 8], got %d", cfg.Supersample)
	case cfg.Elevation < -90 || cfg.Elevation > 90:
		return fmt.Errorf("elevation must be in [-90, 90], got %g", cfg.Elevation)
	case cfg.FieldOfView <= 0 || cfg.FieldOfView >= 180:
		return fmt.Errorf("field of view must be in (0, 180), got %g", cfg.FieldOfView)
	case cfg.Distance < minDistance:
		return fmt.Errorf("camera distance must be at least %g, got %g", minDistance, cfg.Distance)
	}
	if !IsColorMap(cfg.ColorMap) {
		return fmt.Errorf("unknown colormap %q, available: %v", cfg.ColorMap, ColorMaps())
	}
	if _, err := parseHex(cfg.PaneColor); err != nil {
		return fmt.Errorf("pane color: %w", err)
	}
	return nil
}
