// roadgen builds road meshes from a config file and inspects their boundary.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-road/internal/config"
	"github.com/Faultbox/midgard-road/internal/export"
	"github.com/Faultbox/midgard-road/internal/host"
	"github.com/Faultbox/midgard-road/internal/logger"
)

var (
	flagPreview = flag.Bool("preview", false, "Show the boundary sketch in the terminal (iTerm2)")
	flagNoColor = flag.Bool("no-color", false, "Disable colored output")
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "build", "b":
		err = cmdBuild(args)
	case "angles", "a":
		err = cmdAngles(args)
	case "config":
		err = cmdConfig(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	logger.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`roadgen - road ribbon mesh generator

Usage:
  roadgen <command> [options]

Commands:
  build   [options]          Build the road and write OBJ/MTL (plus -geojson, -dxf, -sketch outlines)
  angles  [options]          Print boundary polygon corners and their angles
  config  [path]             Write the default config (default ./road.yaml)
  help                       Show this help

Examples:
  roadgen build -config road.yaml -out out/road.obj -sketch out/road.png
  roadgen build -simplify -geojson out/road.geojson -dxf out/road.dxf
  roadgen angles -closed -simplify
  roadgen config ~/.config/midgard-road/road.yaml

Options:`)
	config.Usage()
}

// setup parses flags, loads the config and starts logging.
func setup(args []string) (*config.Config, error) {
	if err := config.ParseArgs(args); err != nil {
		return nil, err
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		return nil, err
	}
	logger.Debug("config loaded", zap.String("path", config.ConfigPath()))
	return cfg, nil
}

func cmdBuild(args []string) error {
	cfg, err := setup(args)
	if err != nil {
		return err
	}

	snap, err := host.Generate(cfg, logger.Named("generate"))
	if err != nil {
		return err
	}

	written, err := export.SaveSnapshot(cfg.Output, snap)
	if err != nil {
		return err
	}
	for _, path := range written {
		fmt.Printf("wrote %s\n", path)
	}

	m := snap.Mesh
	fmt.Printf("samples: %d  vertices: %d  triangles: %d  closed: %v\n",
		m.SampleCount, len(m.Vertices), m.Triangles(), m.Closed)
	fmt.Printf("boundary: %d corners, %d above %.0f°\n",
		len(snap.Boundary), len(snap.Flagged), cfg.Boundary.AngleThreshold)

	if cfg.Output.SketchPath != "" {
		if err := writeSketch(snap, cfg.Output.SketchPath, cfg.Output.SketchScale); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", cfg.Output.SketchPath)
		if *flagPreview {
			preview(cfg.Output.SketchPath)
		}
	}
	return nil
}

func cmdConfig(args []string) error {
	path := "road.yaml"
	if len(args) > 0 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}
	if err := config.Default().SaveTo(path); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}
