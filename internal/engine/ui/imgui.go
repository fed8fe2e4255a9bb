// Package ui wraps the ImGui SDL backend used by the road editor.
package ui

import (
	"os"

	"github.com/AllenDang/cimgui-go/backend"
	"github.com/AllenDang/cimgui-go/backend/sdlbackend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-road/internal/logger"
)

const fontSize = 15.0

// fontPaths are tried in order; the ImGui default font is used if none exist.
var fontPaths = []string{
	"/System/Library/Fonts/Supplemental/Arial.ttf",        // macOS
	"C:\\Windows\\Fonts\\segoeui.ttf",                     // Windows
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",     // Debian, Ubuntu
	"/usr/share/fonts/dejavu-sans-fonts/DejaVuSans.ttf",   // Fedora
	"/usr/share/fonts/TTF/DejaVuSans.ttf",                 // Arch
	"/usr/share/fonts/truetype/noto/NotoSans-Regular.ttf", // Linux alt
}

// Backend wraps the ImGui SDL backend.
type Backend struct {
	backend backend.Backend[sdlbackend.SDLWindowFlags]
	log     *zap.Logger
}

// NewBackend creates the window and its OpenGL context.
func NewBackend(title string, width, height int, log *zap.Logger) (*Backend, error) {
	b := &Backend{log: logger.OrNop(log)}

	var err error
	b.backend, err = backend.CreateBackend(sdlbackend.NewSDLBackend())
	if err != nil {
		return nil, errors.Wrap(err, "creating backend")
	}

	// Fonts must be added once the context exists and before the first frame.
	b.backend.SetAfterCreateContextHook(b.loadFont)

	b.backend.SetBgColor(imgui.NewVec4(0.1, 0.1, 0.12, 1.0))
	b.backend.CreateWindow(title, width, height)

	if err := gl.Init(); err != nil {
		return nil, errors.Wrap(err, "initializing OpenGL")
	}

	return b, nil
}

func (b *Backend) loadFont() {
	for _, path := range fontPaths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		fontCfg := imgui.NewFontConfig()
		defer fontCfg.Destroy()
		if imgui.CurrentIO().Fonts().AddFontFromFileTTFV(path, fontSize, fontCfg, nil) != nil {
			b.log.Debug("loaded font", zap.String("path", path))
		}
		return
	}
	b.log.Debug("no system font found, using default")
}

// Run starts the main render loop.
func (b *Backend) Run(renderFunc func()) {
	b.backend.Run(renderFunc)
}

// SetWindowTitle updates the window title.
func (b *Backend) SetWindowTitle(title string) {
	b.backend.SetWindowTitle(title)
}

// Viewport returns the main viewport work area.
func Viewport() (pos, size imgui.Vec2) {
	viewport := imgui.MainViewport()
	return viewport.WorkPos(), viewport.WorkSize()
}

// GLImage draws an OpenGL color texture. V is flipped because OpenGL rows
// start at the bottom.
func GLImage(tex uint32, size imgui.Vec2) {
	texRef := imgui.NewTextureRefTextureID(imgui.TextureID(tex))
	imgui.ImageWithBgV(
		*texRef,
		size,
		imgui.NewVec2(0, 1),
		imgui.NewVec2(1, 0),
		imgui.NewVec4(0.15, 0.15, 0.15, 1.0),
		imgui.NewVec4(1, 1, 1, 1),
	)
}

// Mouse tracks drag deltas over the last drawn item.
type Mouse struct {
	last imgui.Vec2
}

// Hovered returns the left-drag delta and wheel movement if the last item
// is hovered, zeros otherwise.
func (m *Mouse) Hovered() (dx, dy, wheel float32) {
	if !imgui.IsItemHovered() {
		return 0, 0, 0
	}
	pos := imgui.MousePos()
	if imgui.IsMouseDragging(imgui.MouseButtonLeft) {
		dx, dy = pos.X-m.last.X, pos.Y-m.last.Y
	}
	m.last = pos
	return dx, dy, imgui.CurrentIO().MouseWheel()
}

// IsKeyPressed checks if a key was pressed this frame.
func IsKeyPressed(key imgui.Key) bool {
	return imgui.IsKeyChordPressed(imgui.KeyChord(key))
}
