// Package main is the entry point for the road editor: an ImGui panel over
// the generator settings with a live 3D preview.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-road/internal/config"
	"github.com/Faultbox/midgard-road/internal/engine/camera"
	"github.com/Faultbox/midgard-road/internal/engine/debug"
	"github.com/Faultbox/midgard-road/internal/engine/scene"
	"github.com/Faultbox/midgard-road/internal/engine/ui"
	"github.com/Faultbox/midgard-road/internal/host"
	"github.com/Faultbox/midgard-road/internal/logger"
)

// Preview framebuffer size. The image is scaled to the panel.
const (
	previewWidth  = 1024
	previewHeight = 768
)

func main() {
	// SDL and OpenGL must stay on the main thread.
	runtime.LockOSThread()

	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	app, err := NewApp(cfg, config.ConfigPath(), logger.Log)
	if err != nil {
		logger.Error("failed to start editor", zap.Error(err))
		os.Exit(1)
	}
	defer app.Close()

	app.Run()
}

// App holds the editor state.
type App struct {
	backend *ui.Backend
	log     *zap.Logger

	cfg        *config.Config
	configPath string
	// good is the last config that built; edits that fail roll back to it.
	good config.Config

	scene     *scene.Scene
	camera    *camera.OrbitCamera
	rebuilder *host.Rebuilder
	snap      *host.Snapshot
	shots     *debug.Screenshots

	// dirty is set by panel edits; the rebuild runs once per frame.
	dirty bool

	// Paths picked in the file dialog, applied on the main thread.
	pendingConfig chan string

	// Screenshot is captured at the start of the next frame.
	screenshotRequested bool

	mouse      ui.Mouse
	status     string
	statusTime time.Time
}

// NewApp creates the window, the preview scene and the first road.
func NewApp(cfg *config.Config, configPath string, log *zap.Logger) (*App, error) {
	log = logger.OrNop(log)
	app := &App{
		log:        log,
		cfg:        cfg,
		configPath: configPath,
		camera:     camera.NewOrbitCamera(),
		shots:      debug.NewScreenshots(cfg.Output.ScreenshotDir, "roadedit"),

		pendingConfig: make(chan string, 1),
	}

	var err error
	app.backend, err = ui.NewBackend(windowTitle(configPath), cfg.Viewer.Width, cfg.Viewer.Height, log.Named("ui"))
	if err != nil {
		return nil, err
	}

	app.scene, err = scene.New(scene.Config{
		Width:     previewWidth,
		Height:    previewHeight,
		Offscreen: true,
	}, log.Named("scene"))
	if err != nil {
		return nil, fmt.Errorf("creating scene: %w", err)
	}
	app.scene.ShowDebug = cfg.Viewer.ShowBoundary
	if configPath != "" {
		app.scene.SetTextureDir(filepath.Dir(configPath))
	}

	app.rebuilder = host.NewRebuilder(app.scene, nil, log.Named("rebuild"))
	if err := app.rebuild(); err != nil {
		app.Close()
		return nil, err
	}
	app.fit()

	return app, nil
}

// Run starts the main loop.
func (app *App) Run() {
	app.backend.Run(app.render)
}

// Close releases the scene.
func (app *App) Close() {
	if app.scene != nil {
		app.scene.Destroy()
		app.scene = nil
	}
}

func (app *App) rebuild() error {
	snap, err := app.rebuilder.Rebuild(app.cfg)
	if err != nil {
		return err
	}
	app.snap = snap
	app.good = *app.cfg
	app.scene.SetDebug(snap.Debug)
	return nil
}

func (app *App) fit() {
	if b, ok := app.scene.Bounds(); ok {
		app.camera.FitToBounds(b)
	}
}

// setStatus shows msg in the status bar and logs it.
func (app *App) setStatus(msg string, fields ...zap.Field) {
	app.status = msg
	app.statusTime = time.Now()
	app.log.Info(msg, fields...)
}

// render is called each frame to draw the UI.
func (app *App) render() {
	// Capture at the start of the frame so the preview texture is complete.
	if app.screenshotRequested {
		app.screenshotRequested = false
		app.screenshot()
	}

	select {
	case path := <-app.pendingConfig:
		app.load(path)
	default:
	}

	if ui.IsKeyPressed(imgui.KeyF12) {
		app.screenshotRequested = true
	}

	workPos, workSize := ui.Viewport()

	panelWidth := float32(320)
	statusBarHeight := float32(30)
	contentHeight := workSize.Y - statusBarHeight

	flags := imgui.WindowFlagsNoMove | imgui.WindowFlagsNoResize | imgui.WindowFlagsNoCollapse

	imgui.SetNextWindowPos(workPos)
	imgui.SetNextWindowSize(imgui.NewVec2(panelWidth, contentHeight))
	if imgui.BeginV("Road", nil, flags) {
		app.renderPanel()
	}
	imgui.End()

	// Apply panel edits before drawing the preview.
	if app.dirty {
		app.dirty = false
		app.applyEdits()
	}

	imgui.SetNextWindowPos(imgui.NewVec2(workPos.X+panelWidth, workPos.Y))
	imgui.SetNextWindowSize(imgui.NewVec2(workSize.X-panelWidth, contentHeight))
	if imgui.BeginV("Preview", nil, flags) {
		app.renderPreview()
	}
	imgui.End()

	imgui.SetNextWindowPos(imgui.NewVec2(workPos.X, workPos.Y+contentHeight))
	imgui.SetNextWindowSize(imgui.NewVec2(workSize.X, statusBarHeight))
	statusFlags := flags | imgui.WindowFlagsNoTitleBar | imgui.WindowFlagsNoScrollbar
	if imgui.BeginV("##StatusBar", nil, statusFlags) {
		app.renderStatusBar()
	}
	imgui.End()
}

// renderPreview draws the scene texture and routes mouse input to the camera.
func (app *App) renderPreview() {
	avail := imgui.ContentRegionAvail()
	if avail.X < 1 || avail.Y < 1 {
		return
	}
	app.scene.Resize(int32(avail.X), int32(avail.Y))

	ui.GLImage(app.scene.Render(app.camera), avail)

	dx, dy, wheel := app.mouse.Hovered()
	if dx != 0 || dy != 0 {
		app.camera.HandleDrag(dx, dy)
	}
	if wheel != 0 {
		app.camera.HandleZoom(wheel)
	}
}

func windowTitle(configPath string) string {
	if configPath == "" {
		return "Midgard Road Editor"
	}
	return "Midgard Road Editor - " + filepath.Base(configPath)
}

func (app *App) renderStatusBar() {
	if app.snap != nil {
		imgui.Text(summary(app.cfg, app.snap))
	}
	if app.status != "" && time.Since(app.statusTime) < 4*time.Second {
		imgui.SameLine()
		imgui.TextDisabled("| " + app.status)
	}
}

func (app *App) screenshot() {
	pixels, w, h := app.scene.ReadPixels()
	name, err := app.shots.FromPixels(pixels, w, h)
	if err != nil {
		app.log.Error("screenshot failed", zap.Error(err))
		return
	}
	app.setStatus("screenshot saved", zap.String("path", name))
}
