// Package scene renders a road with its debug overlay, either straight to
// the window or into an offscreen framebuffer for embedding in a UI.
package scene

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-road/internal/engine/camera"
	"github.com/Faultbox/midgard-road/internal/engine/debug"
	"github.com/Faultbox/midgard-road/internal/engine/framebuffer"
	"github.com/Faultbox/midgard-road/internal/engine/lighting"
	"github.com/Faultbox/midgard-road/internal/host"
	"github.com/Faultbox/midgard-road/internal/road"
	"github.com/Faultbox/midgard-road/pkg/math"
)

// Grid spacing and margin around the road, in world units.
const (
	gridCell   = 10
	gridMargin = 20
)

// Config contains scene configuration options.
type Config struct {
	Width  int32
	Height int32
	// Offscreen renders into a framebuffer whose color texture Render returns.
	Offscreen bool
}

// DefaultConfig returns a default scene configuration.
func DefaultConfig() Config {
	return Config{
		Width:  1280,
		Height: 720,
	}
}

// Scene holds the road, its debug lines and the ground grid.
type Scene struct {
	config Config

	framebuffer *framebuffer.Framebuffer

	road  *RoadRenderer
	lines *LineRenderer

	grid       []debug.LineVertex
	debugLines []debug.LineVertex

	// Lighting
	LightDir math.Vec3
	Ambient  math.Vec3

	ShowDebug  bool
	ShowGrid   bool
	Background [4]float32
}

// New creates a scene. Requires a current OpenGL context.
func New(cfg Config, log *zap.Logger) (*Scene, error) {
	s := &Scene{
		config:     cfg,
		LightDir:   lighting.SunDirection(lighting.DefaultLongitude, lighting.DefaultLatitude),
		Ambient:    lighting.Ambient(0.35),
		ShowDebug:  true,
		ShowGrid:   true,
		Background: [4]float32{0.15, 0.15, 0.2, 1.0},
	}

	var err error
	if cfg.Offscreen {
		s.framebuffer, err = framebuffer.New(cfg.Width, cfg.Height)
		if err != nil {
			return nil, errors.Wrap(err, "creating framebuffer")
		}
	}

	s.road, err = NewRoadRenderer(log)
	if err != nil {
		s.Destroy()
		return nil, errors.Wrap(err, "creating road renderer")
	}

	s.lines, err = NewLineRenderer()
	if err != nil {
		s.Destroy()
		return nil, errors.Wrap(err, "creating line renderer")
	}

	return s, nil
}

// SetTextureDir sets where relative material textures are looked up.
func (s *Scene) SetTextureDir(dir string) {
	s.road.TextureDir = dir
}

// SetMesh implements host.Target. The ground grid is resized to the road.
func (s *Scene) SetMesh(mesh *road.Mesh, materials []host.Material) error {
	if err := s.road.SetMesh(mesh, materials); err != nil {
		return err
	}
	b := mesh.Bounds
	s.grid = debug.GroundGrid(
		snap(b.Min.X-gridMargin), snap(b.Min.Z-gridMargin),
		snap(b.Max.X+gridMargin), snap(b.Max.Z+gridMargin),
		gridCell, b.Min.Y-0.01,
	)
	s.uploadLines()
	return nil
}

// SetDebug replaces the debug overlay with what rec recorded.
func (s *Scene) SetDebug(rec *debug.Recorder) {
	s.debugLines = nil
	if rec != nil {
		s.debugLines = rec.LineVertices()
	}
	s.uploadLines()
}

// Bounds returns the bounds of the current road and whether one is loaded.
func (s *Scene) Bounds() (road.Bounds, bool) {
	return s.road.Bounds()
}

// snap rounds v down to the grid.
func snap(v float32) float32 {
	n := int(v / gridCell)
	if float32(n)*gridCell > v {
		n--
	}
	return float32(n) * gridCell
}

func (s *Scene) uploadLines() {
	var all []debug.LineVertex
	if s.ShowGrid {
		all = append(all, s.grid...)
	}
	if s.ShowDebug {
		all = append(all, s.debugLines...)
	}
	s.lines.SetLines(all)
}

// SetOverlay toggles the grid and debug lines.
func (s *Scene) SetOverlay(grid, debugLines bool) {
	if grid == s.ShowGrid && debugLines == s.ShowDebug {
		return
	}
	s.ShowGrid = grid
	s.ShowDebug = debugLines
	s.uploadLines()
}

func (s *Scene) viewProj(cam *camera.OrbitCamera) math.Mat4 {
	aspect := float32(s.config.Width) / float32(max(s.config.Height, 1))
	return cam.ViewProj(aspect)
}

func (s *Scene) draw(cam *camera.OrbitCamera) {
	gl.ClearColor(s.Background[0], s.Background[1], s.Background[2], s.Background[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)

	viewProj := s.viewProj(cam)
	s.road.Render(viewProj, s.LightDir, s.Ambient)

	s.lines.Render(viewProj)
}

// Render draws the scene. Offscreen scenes return the color texture;
// window scenes draw to the default framebuffer and return 0.
func (s *Scene) Render(cam *camera.OrbitCamera) uint32 {
	if s.framebuffer == nil {
		gl.Viewport(0, 0, s.config.Width, s.config.Height)
		s.draw(cam)
		return 0
	}

	restore := s.framebuffer.BindWithViewport()
	defer restore()
	s.draw(cam)
	return s.framebuffer.ColorTexture()
}

// Resize updates the scene dimensions.
func (s *Scene) Resize(width, height int32) {
	if width == s.config.Width && height == s.config.Height {
		return
	}
	s.config.Width = width
	s.config.Height = height
	if s.framebuffer != nil {
		s.framebuffer.Resize(width, height)
	}
}

// Size returns the scene dimensions.
func (s *Scene) Size() (width, height int32) {
	return s.config.Width, s.config.Height
}

// ReadPixels returns the last rendered frame as bottom-up RGBA rows.
func (s *Scene) ReadPixels() ([]byte, int, int) {
	if s.framebuffer != nil {
		w, h := s.framebuffer.Size()
		return s.framebuffer.ReadPixels(), int(w), int(h)
	}
	w, h := s.config.Width, s.config.Height
	pixels := make([]byte, int(w)*int(h)*4)
	gl.ReadPixels(0, 0, w, h, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, int(w), int(h)
}

// Destroy releases all resources.
func (s *Scene) Destroy() {
	if s.road != nil {
		s.road.Destroy()
	}
	if s.lines != nil {
		s.lines.Destroy()
	}
	if s.framebuffer != nil {
		s.framebuffer.Destroy()
	}
}
