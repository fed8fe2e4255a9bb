package main

import (
	"fmt"
	"path/filepath"

	"github.com/AllenDang/cimgui-go/imgui"
	petname "github.com/dustinkirkland/golang-petname"
	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-road/internal/config"
	"github.com/Faultbox/midgard-road/internal/export"
	"github.com/Faultbox/midgard-road/internal/host"
	"github.com/Faultbox/midgard-road/internal/road"
)

// Slider ranges.
const (
	minWidth    = 0.1
	maxWidth    = 20
	minTiling   = 0.1
	maxTiling   = 50
	minAngle    = 1
	maxAngle    = 180
	maxSimplify = 200
)

const defaultSketchPath = "road.png"

// renderPanel draws the settings panel. Edits mark the road dirty.
func (app *App) renderPanel() {
	cfg := app.cfg

	if imgui.TreeNodeExStrV("Road", imgui.TreeNodeFlagsDefaultOpen) {
		imgui.Text("Width")
		app.edited(imgui.SliderFloatV("##width", &cfg.Road.Width, minWidth, maxWidth, "%.2f", imgui.SliderFlagsNone))
		imgui.Text("Thickness")
		app.edited(imgui.SliderFloatV("##thickness", &cfg.Road.Thickness, 0, road.MaxThickness, "%.2f", imgui.SliderFlagsNone))
		app.edited(imgui.Checkbox("Flatten surface", &cfg.Road.FlattenSurface))
		if imgui.IsItemHovered() {
			imgui.SetTooltip("Keep the top level across the road instead of following the banking")
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeExStrV("Path", imgui.TreeNodeFlagsDefaultOpen) {
		app.edited(imgui.Checkbox("Closed loop", &cfg.Path.ClosedLoop))
		flat := cfg.Path.Space == "xz"
		if imgui.Checkbox("Planar (XZ)", &flat) {
			cfg.Path.Space = "xyz"
			if flat {
				cfg.Path.Space = "xz"
			}
			app.dirty = true
		}
		imgui.Text(fmt.Sprintf("%d control points", len(cfg.Path.ControlPoints)))
		imgui.TreePop()
	}

	if imgui.TreeNodeExStrV("Material", imgui.TreeNodeFlagsNone) {
		imgui.Text("Texture tiling")
		app.edited(imgui.SliderFloatV("##tiling", &cfg.Material.TextureTiling, minTiling, maxTiling, "%.1f", imgui.SliderFlagsNone))
		if cfg.Material.Road == "" || cfg.Material.Underside == "" {
			imgui.TextDisabled("No materials: both textures must be set")
		} else {
			imgui.Text("Road: " + cfg.Material.Road)
			imgui.Text("Underside: " + cfg.Material.Underside)
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeExStrV("Boundary", imgui.TreeNodeFlagsDefaultOpen) {
		imgui.Text("Angle threshold")
		app.edited(imgui.SliderFloatV("##threshold", &cfg.Boundary.AngleThreshold, minAngle, maxAngle, "%.0f deg", imgui.SliderFlagsNone))
		app.edited(imgui.Checkbox("Simplify", &cfg.Boundary.Simplify))
		if cfg.Boundary.Simplify {
			steps := int32(cfg.Boundary.MaxSteps)
			imgui.Text("Max steps")
			if imgui.SliderIntV("##steps", &steps, 0, maxSimplify, "%d", imgui.SliderFlagsNone) {
				cfg.Boundary.MaxSteps = int(steps)
				app.dirty = true
			}
		}

		grid, lines := app.scene.ShowGrid, app.scene.ShowDebug
		gridChanged := imgui.Checkbox("Grid", &grid)
		linesChanged := imgui.Checkbox("Boundary lines", &lines)
		if gridChanged || linesChanged {
			app.scene.SetOverlay(grid, lines)
		}
		imgui.TreePop()
	}

	imgui.Separator()

	if imgui.Button("Open...") {
		app.openConfigDialog()
	}
	imgui.SameLine()
	if imgui.Button("Save as") {
		app.saveAs()
	}
	imgui.SameLine()
	if imgui.Button("Reset view") {
		app.fit()
	}
	imgui.SameLine()
	imgui.Checkbox("Top view", &app.camera.TopDown)

	if imgui.Button("Export OBJ") {
		app.export()
	}
	imgui.SameLine()
	if imgui.Button("Save sketch") {
		app.saveSketch()
	}
	imgui.SameLine()
	if imgui.Button("Screenshot") {
		app.screenshotRequested = true
	}

	imgui.Separator()
	app.renderAngles()
}

func (app *App) edited(changed bool) {
	if changed {
		app.dirty = true
	}
}

// renderAngles lists the flagged boundary vertices.
func (app *App) renderAngles() {
	if app.snap == nil {
		return
	}
	label := fmt.Sprintf("Flagged vertices (%d)###flagged", len(app.snap.Flagged))
	if !imgui.TreeNodeExStrV(label, imgui.TreeNodeFlagsNone) {
		return
	}
	for _, i := range app.snap.Flagged {
		v := app.snap.Boundary[i]
		imgui.Text(fmt.Sprintf("%4d  (%7.2f, %7.2f)  %6.1f deg", i, v.Point.X, v.Point.Y, v.Angle))
	}
	imgui.TreePop()
}

// applyEdits rebuilds after panel edits. A rejected edit restores the last
// config that built.
func (app *App) applyEdits() {
	if err := app.cfg.Validate(); err != nil {
		*app.cfg = app.good
		app.setStatus("edit rejected", zap.Error(err))
		return
	}
	if err := app.rebuild(); err != nil {
		*app.cfg = app.good
		app.setStatus("edit rejected", zap.Error(err))
	}
}

// openConfigDialog shows a native file dialog. The dialog blocks, so it runs
// in a goroutine and hands the path back to the render loop.
func (app *App) openConfigDialog() {
	go func() {
		filename, err := dialog.File().
			Filter("Road config", "yaml", "yml").
			Filter("All Files", "*").
			Title("Open road config").
			Load()
		if err != nil {
			if err != dialog.ErrCancelled {
				app.log.Warn("file dialog failed", zap.Error(err))
			}
			return
		}
		select {
		case app.pendingConfig <- filename:
		default:
		}
	}()
}

// load replaces the config from path. The current road stays if the file
// is invalid or does not build.
func (app *App) load(path string) {
	cfg, err := config.LoadFile(path)
	if err != nil {
		app.setStatus("config not loaded", zap.String("path", path), zap.Error(err))
		return
	}

	prev := app.cfg
	app.cfg = cfg
	if err := app.rebuild(); err != nil {
		app.cfg = prev
		app.setStatus("config does not build", zap.String("path", path), zap.Error(err))
		return
	}
	app.configPath = path
	app.backend.SetWindowTitle(windowTitle(path))
	app.scene.SetTextureDir(filepath.Dir(path))
	app.fit()
	app.setStatus("config loaded", zap.String("path", path))
}

// saveAs writes the current settings next to the open config under a
// generated name.
func (app *App) saveAs() {
	dir := "."
	if app.configPath != "" {
		dir = filepath.Dir(app.configPath)
	}
	path := filepath.Join(dir, presetName()+".yaml")
	if err := app.cfg.SaveTo(path); err != nil {
		app.setStatus("save failed", zap.Error(err))
		return
	}
	app.setStatus("saved "+filepath.Base(path), zap.String("path", path))
}

func presetName() string {
	return "road-" + petname.Generate(2, "-")
}

func (app *App) export() {
	if app.snap == nil {
		return
	}
	written, err := export.SaveSnapshot(app.cfg.Output, app.snap)
	if err != nil {
		app.setStatus("export failed", zap.Error(err))
		return
	}
	app.setStatus("exported "+app.cfg.Output.OBJPath, zap.Strings("files", written))
}

func (app *App) saveSketch() {
	if app.snap == nil {
		return
	}
	path := app.cfg.Output.SketchPath
	if path == "" {
		path = defaultSketchPath
	}
	if err := app.snap.Sketch().SavePNG(path, app.cfg.Output.SketchScale); err != nil {
		app.setStatus("sketch failed", zap.Error(err))
		return
	}
	app.setStatus("sketch saved", zap.String("path", path))
}

// summary is the status bar line for a built road.
func summary(cfg *config.Config, snap *host.Snapshot) string {
	shape := "open"
	if cfg.Path.ClosedLoop {
		shape = "closed"
	}
	s := fmt.Sprintf("%d samples (%s, %s) | %d triangles | boundary %d vertices, %d flagged > %.0f deg | %s",
		snap.Mesh.SampleCount, shape, cfg.Path.Space, snap.Mesh.Triangles(),
		len(snap.Boundary), len(snap.Flagged), cfg.Boundary.AngleThreshold, snap.Duration)
	if snap.Simplified != nil {
		s += fmt.Sprintf(" | simplified to %d in %d steps", len(snap.Simplified.Polygon), snap.Simplified.Steps)
	}
	return s
}
