// Package viewer implements the interactive road viewer loop.
package viewer

import (
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-road/internal/config"
	"github.com/Faultbox/midgard-road/internal/engine/camera"
	"github.com/Faultbox/midgard-road/internal/engine/debug"
	"github.com/Faultbox/midgard-road/internal/engine/input"
	"github.com/Faultbox/midgard-road/internal/engine/scene"
	"github.com/Faultbox/midgard-road/internal/engine/window"
	"github.com/Faultbox/midgard-road/internal/export"
	"github.com/Faultbox/midgard-road/internal/host"
	"github.com/Faultbox/midgard-road/internal/logger"
)

// keyBindings maps scancodes to actions.
var keyBindings = map[sdl.Scancode]Action{
	sdl.SCANCODE_ESCAPE:       ActionQuit,
	sdl.SCANCODE_F:            ActionFit,
	sdl.SCANCODE_R:            ActionReload,
	sdl.SCANCODE_F12:          ActionScreenshot,
	sdl.SCANCODE_O:            ActionExport,
	sdl.SCANCODE_G:            ActionToggleGrid,
	sdl.SCANCODE_B:            ActionToggleDebug,
	sdl.SCANCODE_T:            ActionToggleTopView,
	sdl.SCANCODE_C:            ActionToggleClosed,
	sdl.SCANCODE_X:            ActionToggleFlatten,
	sdl.SCANCODE_P:            ActionToggleSimplify,
	sdl.SCANCODE_Z:            ActionToggleSpace,
	sdl.SCANCODE_EQUALS:       ActionWiderRoad,
	sdl.SCANCODE_MINUS:        ActionNarrowerRoad,
	sdl.SCANCODE_RIGHTBRACKET: ActionThickerRoad,
	sdl.SCANCODE_LEFTBRACKET:  ActionThinnerRoad,
}

// Viewer shows a road in an SDL window and rebuilds it on edits.
type Viewer struct {
	cfg        *config.Config
	configPath string
	log        *zap.Logger
	running    bool

	window    *window.Window
	scene     *scene.Scene
	input     *input.Input
	camera    *camera.OrbitCamera
	rebuilder *host.Rebuilder
	shots     *debug.Screenshots
}

// New opens the window and builds the first road. configPath is reread on
// reload; when empty, reload goes through config.Load again.
func New(cfg *config.Config, configPath string, log *zap.Logger) (*Viewer, error) {
	log = logger.OrNop(log)
	v := &Viewer{
		cfg:        cfg,
		configPath: configPath,
		log:        log,
		input:      input.New(),
		camera:     camera.NewOrbitCamera(),
		shots:      debug.NewScreenshots(cfg.Output.ScreenshotDir, "road"),
	}

	var err error
	v.window, err = window.New(window.FromViewer("Midgard Road", cfg.Viewer), log.Named("window"))
	if err != nil {
		return nil, errors.Wrap(err, "creating window")
	}

	w, h := v.window.DrawableSize()
	v.scene, err = scene.New(scene.Config{Width: w, Height: h}, log.Named("scene"))
	if err != nil {
		v.window.Close()
		return nil, errors.Wrap(err, "creating scene")
	}
	v.scene.ShowDebug = cfg.Viewer.ShowBoundary
	if configPath != "" {
		v.scene.SetTextureDir(filepath.Dir(configPath))
	}

	v.rebuilder = host.NewRebuilder(v.scene, nil, log.Named("rebuild"))
	if err := v.rebuild(); err != nil {
		v.Close()
		return nil, err
	}
	v.fit()

	return v, nil
}

func (v *Viewer) rebuild() error {
	snap, err := v.rebuilder.Rebuild(v.cfg)
	if err != nil {
		return err
	}
	v.scene.SetDebug(snap.Debug)
	v.window.SetTitle(title(v.cfg, snap))
	return nil
}

func (v *Viewer) fit() {
	if b, ok := v.scene.Bounds(); ok {
		v.camera.FitToBounds(b)
	}
}

// Run starts the main loop.
func (v *Viewer) Run() error {
	v.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	v.log.Info("starting viewer loop")

	for v.running {
		now := time.Now()
		dt := float32(now.Sub(lastTime).Seconds())
		lastTime = now

		if v.input.Update() {
			break
		}
		v.handleEvents()
		v.updateCamera(dt)

		v.scene.Render(v.camera)
		v.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			v.log.Debug("fps", zap.Int("count", frameCount))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

func (v *Viewer) handleEvents() {
	for _, event := range v.input.Events() {
		switch event.Type {
		case input.EventWindowResize:
			w, h := v.window.DrawableSize()
			v.scene.Resize(w, h)
		case input.EventDropFile:
			v.load(event.File)
		case input.EventKeyDown:
			if a, ok := keyBindings[event.Key]; ok {
				v.do(a)
			}
		}
	}
}

func (v *Viewer) updateCamera(dt float32) {
	if dx, dy := v.input.Drag(sdl.BUTTON_LEFT); dx != 0 || dy != 0 {
		v.camera.HandleDrag(dx, dy)
	}
	if wheel := v.input.Wheel(); wheel != 0 {
		v.camera.HandleZoom(wheel)
	}

	var forward, right, up float32
	if v.input.IsKeyHeld(sdl.SCANCODE_W) || v.input.IsKeyHeld(sdl.SCANCODE_UP) {
		forward++
	}
	if v.input.IsKeyHeld(sdl.SCANCODE_S) || v.input.IsKeyHeld(sdl.SCANCODE_DOWN) {
		forward--
	}
	if v.input.IsKeyHeld(sdl.SCANCODE_D) || v.input.IsKeyHeld(sdl.SCANCODE_RIGHT) {
		right++
	}
	if v.input.IsKeyHeld(sdl.SCANCODE_A) || v.input.IsKeyHeld(sdl.SCANCODE_LEFT) {
		right--
	}
	if v.input.IsKeyHeld(sdl.SCANCODE_E) {
		up++
	}
	if v.input.IsKeyHeld(sdl.SCANCODE_Q) {
		up--
	}
	if forward != 0 || right != 0 || up != 0 {
		// Movement is tuned for 60 frames per second.
		scale := dt * 60
		v.camera.HandleMovement(forward*scale, right*scale, up*scale)
	}
}

func (v *Viewer) do(a Action) {
	switch a {
	case ActionQuit:
		v.running = false
	case ActionFit:
		v.fit()
	case ActionReload:
		v.load(v.configPath)
	case ActionScreenshot:
		pixels, w, h := v.scene.ReadPixels()
		if name, err := v.shots.FromPixels(pixels, w, h); err != nil {
			v.log.Error("screenshot failed", zap.Error(err))
		} else {
			v.log.Info("screenshot saved", zap.String("path", name))
		}
	case ActionExport:
		v.export()
	case ActionToggleGrid:
		v.scene.SetOverlay(!v.scene.ShowGrid, v.scene.ShowDebug)
	case ActionToggleDebug:
		v.scene.SetOverlay(v.scene.ShowGrid, !v.scene.ShowDebug)
	case ActionToggleTopView:
		v.camera.TopDown = !v.camera.TopDown
	default:
		prev := *v.cfg
		if !applyEdit(v.cfg, a) {
			return
		}
		if err := v.rebuild(); err != nil {
			*v.cfg = prev
			v.log.Warn("edit rejected", zap.Error(err))
		}
	}
}

// load replaces the config from path and rebuilds. The current road stays
// if the file is invalid.
func (v *Viewer) load(path string) {
	var (
		cfg *config.Config
		err error
	)
	if path == "" {
		cfg, err = config.Load()
	} else {
		cfg, err = config.LoadFile(path)
	}
	if err != nil {
		v.log.Warn("config not loaded", zap.String("path", path), zap.Error(err))
		return
	}

	prev := v.cfg
	v.cfg = cfg
	if err := v.rebuild(); err != nil {
		v.cfg = prev
		v.log.Warn("reload failed, keeping previous road", zap.Error(err))
		return
	}
	if path != "" {
		v.configPath = path
		v.scene.SetTextureDir(filepath.Dir(path))
	}
	v.log.Info("config loaded", zap.String("path", path))
}

func (v *Viewer) export() {
	snap := v.rebuilder.Last()
	if snap == nil {
		return
	}
	written, err := export.SaveSnapshot(v.cfg.Output, snap)
	if err != nil {
		v.log.Error("export failed", zap.Error(err))
		return
	}
	v.log.Info("road exported", zap.Strings("files", written))
}

// Close releases the scene and the window.
func (v *Viewer) Close() {
	v.log.Info("closing viewer")
	if v.scene != nil {
		v.scene.Destroy()
	}
	if v.window != nil {
		v.window.Close()
	}
}
