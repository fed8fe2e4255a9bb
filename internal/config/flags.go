package config

import (
	"flag"
	"os"
)

var (
	flagConfig    = flag.String("config", "", "Path to config file")
	flagDebug     = flag.Bool("debug", false, "Enable debug logging")
	flagWidth     = flag.Float64("width", 0, "Road half width")
	flagThickness = flag.Float64("thickness", -1, "Road thickness, 0 to 0.5")
	flagFlatten   = flag.Bool("flatten", false, "Keep the road surface level")
	flagClosed    = flag.Bool("closed", false, "Close the path into a loop")
	flagSpace     = flag.String("space", "", "Path space: xyz or xz")
	flagOut       = flag.String("out", "", "OBJ output path")
	flagGeoJSON   = flag.String("geojson", "", "Boundary GeoJSON output path")
	flagDXF       = flag.String("dxf", "", "Boundary DXF output path")
	flagSketch    = flag.String("sketch", "", "Boundary sketch PNG output path")
	flagSimplify  = flag.Bool("simplify", false, "Run boundary simplification")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ParseArgs parses flags from args instead of os.Args, for subcommands.
func ParseArgs(args []string) error {
	return flag.CommandLine.Parse(args)
}

// Args returns the positional arguments left after flag parsing.
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// Usage prints the flag defaults.
func Usage() {
	flag.CommandLine.SetOutput(os.Stdout)
	flag.PrintDefaults()
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagWidth != 0 {
		cfg.Road.Width = float32(*flagWidth)
	}
	if *flagThickness >= 0 {
		cfg.Road.Thickness = float32(*flagThickness)
	}
	if *flagFlatten {
		cfg.Road.FlattenSurface = true
	}
	if *flagClosed {
		cfg.Path.ClosedLoop = true
	}
	if *flagSpace != "" {
		cfg.Path.Space = *flagSpace
	}
	if *flagOut != "" {
		cfg.Output.OBJPath = *flagOut
	}
	if *flagGeoJSON != "" {
		cfg.Output.GeoJSONPath = *flagGeoJSON
	}
	if *flagDXF != "" {
		cfg.Output.DXFPath = *flagDXF
	}
	if *flagSketch != "" {
		cfg.Output.SketchPath = *flagSketch
	}
	if *flagSimplify {
		cfg.Boundary.Simplify = true
	}
}
