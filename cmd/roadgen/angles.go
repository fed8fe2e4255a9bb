package main

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/logrusorgru/aurora"
	imgcat "github.com/martinlindhe/imgcat/lib"

	"github.com/Faultbox/midgard-road/internal/boundary"
	"github.com/Faultbox/midgard-road/internal/config"
	"github.com/Faultbox/midgard-road/internal/host"
	"github.com/Faultbox/midgard-road/internal/logger"
)

func cmdAngles(args []string) error {
	cfg, err := setup(args)
	if err != nil {
		return err
	}

	snap, err := host.Generate(cfg, logger.Named("generate"))
	if err != nil {
		return err
	}

	au := aurora.NewAurora(!*flagNoColor)
	poly := snap.Boundary
	sentinels := len(cfg.Boundary.Sentinels)

	fmt.Printf("%5s  %10s  %10s  %8s  %8s  %s\n", "index", "x", "z", "angle", "interior", "")
	for i, v := range poly {
		interior, err := boundary.InteriorAngle(poly, i)
		if err != nil {
			return err
		}

		var notes []string
		if i < sentinels {
			notes = append(notes, au.Cyan("sentinel").String())
		}
		if !boundary.IsConvex(poly, i) {
			notes = append(notes, au.Yellow("reflex").String())
		}
		if slices.Contains(snap.Flagged, i) {
			notes = append(notes, au.Red("flagged").String())
		}

		fmt.Printf("%5d  %10.3f  %10.3f  %8.2f  %8.2f  %v\n", i, v.Point.X, v.Point.Y, v.Angle, interior, notes)
	}

	fmt.Printf("\n%d corners, %s above %.0f°\n",
		len(poly), au.Red(len(snap.Flagged)), cfg.Boundary.AngleThreshold)

	if res := snap.Simplified; res != nil {
		fmt.Printf("simplified: %d ears clipped in %d steps, %d corners left\n",
			len(res.Ears), res.Steps, len(res.Polygon))
	}

	if *flagPreview {
		if _, err := previewSketch(snap, cfg.Output, preview); err != nil {
			return err
		}
	}
	return nil
}

// previewSketch renders the boundary sketch and passes its path to show.
// Without a configured sketch path the image goes to a temporary file that
// is removed once shown.
func previewSketch(snap *host.Snapshot, out config.OutputConfig, show func(string)) (string, error) {
	path := out.SketchPath
	if path == "" {
		f, err := os.CreateTemp("", "roadgen-*.png")
		if err != nil {
			return "", fmt.Errorf("creating sketch file: %w", err)
		}
		path = f.Name()
		f.Close()
		defer os.Remove(path)
	}
	if err := writeSketch(snap, path, out.SketchScale); err != nil {
		return "", err
	}
	show(path)
	return path, nil
}

func writeSketch(snap *host.Snapshot, path string, scale float64) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return snap.Sketch().SavePNG(path, scale)
}

// preview prints the image inline on terminals that support it.
func preview(path string) {
	imgcat.CatFile(path, os.Stdout)
}
