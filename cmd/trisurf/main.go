package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/guptarohit/asciigraph"
	"github.com/soypat/trisurf"
	"github.com/soypat/trisurf/figure"
	"github.com/soypat/trisurf/render"
	"github.com/soypat/trisurf/viewer"
	"github.com/spf13/cobra"
)

type options struct {
	input      string
	output     string
	stl        string
	configFile string
	colormap   string
	elev       float64
	azim       float64
	width      int
	height     int
	ascii      bool
	verbose    bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "trisurf:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   "trisurf",
		Short: "plot a triangulated surface from headerless x,y,z CSV",
		Long: `trisurf reads headerless CSV from standard input, uses the first three
columns as X, Y and Z, triangulates the X-Y plane and shows the surface
colored by Z in a window until it is closed.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts)
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&opts.input, "input", "", "read CSV from file instead of stdin")
	flags.StringVarP(&opts.output, "output", "o", "", "save the figure to file (png, jpg, tiff, svg, pdf) instead of showing it")
	flags.StringVar(&opts.stl, "stl", "", "also write the triangulated surface as binary STL")
	flags.StringVar(&opts.configFile, "config", "", "figure config file path (yaml)")
	flags.StringVar(&opts.colormap, "colormap", figure.DefaultColorMap, "Z color map")
	flags.Float64Var(&opts.elev, "elev", figure.DefaultElevation, "camera elevation in degrees")
	flags.Float64Var(&opts.azim, "azim", figure.DefaultAzimuth, "camera azimuth in degrees")
	flags.IntVar(&opts.width, "width", figure.DefaultWidth, "figure width in pixels")
	flags.IntVar(&opts.height, "height", figure.DefaultHeight, "figure height in pixels")
	flags.BoolVar(&opts.ascii, "ascii", false, "print a terminal graph of the Z column to stderr")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log progress to stderr")
	return cmd
}

// loadConfig layers flags the user set over the config file over defaults.
func loadConfig(cmd *cobra.Command, opts options) (figure.Config, error) {
	cfg := figure.DefaultConfig()
	if opts.configFile != "" {
		var err error
		cfg, err = figure.LoadConfig(opts.configFile)
		if err != nil {
			return cfg, err
		}
	}
	flags := cmd.Flags()
	if flags.Changed("colormap") {
		cfg.ColorMap = opts.colormap
	}
	if flags.Changed("elev") {
		cfg.Elevation = opts.elev
	}
	if flags.Changed("azim") {
		cfg.Azimuth = opts.azim
	}
	if flags.Changed("width") {
		cfg.Width = opts.width
	}
	if flags.Changed("height") {
		cfg.Height = opts.height
	}
	return cfg, cfg.Validate()
}

func run(cmd *cobra.Command, opts options) error {
	logger := log.New(io.Discard, "trisurf: ", log.Ltime|log.Lmicroseconds)
	if opts.verbose {
		logger.SetOutput(cmd.ErrOrStderr())
	}
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	in := cmd.InOrStdin()
	if opts.input != "" {
		fp, err := os.Open(opts.input)
		if err != nil {
			return err
		}
		defer fp.Close()
		in = fp
	}
	tbl, err := trisurf.ReadTable(in)
	if err != nil {
		return err
	}
	logger.Printf("read %d rows of %d columns", tbl.Len(), tbl.Width())
	ps := tbl.Points()
	if opts.ascii {
		graph := asciigraph.Plot(ps.Z,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("Z by row"),
		)
		fmt.Fprintln(cmd.ErrOrStderr(), graph)
	}

	surf, err := trisurf.Triangulate(ps)
	if err != nil {
		return err
	}
	zmin, zmax := surf.ZRange()
	logger.Printf("triangulated %d points into %d triangles, z in [%g, %g]", ps.Len(), surf.Len(), zmin, zmax)
	if opts.stl != "" {
		if err := render.CreateSTL(opts.stl, surf.Renderer()); err != nil {
			return err
		}
		logger.Printf("wrote %s", opts.stl)
	}

	fig, err := figure.New(surf, cfg)
	if err != nil {
		return err
	}
	if opts.output != "" {
		if err := fig.Save(opts.output); err != nil {
			return err
		}
		logger.Printf("saved figure to %s", opts.output)
		return nil
	}
	logger.Printf("showing %dx%d figure", cfg.Width, cfg.Height)
	return viewer.Show(fig, cfg.Title)
}
