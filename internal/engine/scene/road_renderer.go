package scene

import (
	"image"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-road/internal/engine/scene/shaders"
	"github.com/Faultbox/midgard-road/internal/engine/shader"
	"github.com/Faultbox/midgard-road/internal/engine/texture"
	"github.com/Faultbox/midgard-road/internal/host"
	"github.com/Faultbox/midgard-road/internal/logger"
	"github.com/Faultbox/midgard-road/internal/road"
	"github.com/Faultbox/midgard-road/pkg/math"
)

// surfaceDraw is one index range drawn with one texture.
type surfaceDraw struct {
	group road.SurfaceGroup
	tex   uint32
	scale math.Vec2
	tint  math.Vec3
}

// RoadRenderer draws a road mesh. It implements host.Target.
type RoadRenderer struct {
	program *shader.Program
	log     *zap.Logger

	// TextureDir resolves relative material texture names.
	TextureDir string

	vao   uint32
	vbo   uint32
	ebo   uint32
	draws []surfaceDraw

	textures     map[string]uint32
	fallback     [road.NumSurfaces]uint32
	fallbackTexs []uint32

	bounds road.Bounds
	loaded bool
}

// Untextured surfaces get a checkerboard tinted per surface.
var surfaceTints = [road.NumSurfaces]math.Vec3{
	road.SurfaceTop:    {X: 1, Y: 1, Z: 1},
	road.SurfaceBottom: {X: 0.8, Y: 0.8, Z: 0.8},
	road.SurfaceSide:   {X: 0.9, Y: 0.9, Z: 0.9},
}

// NewRoadRenderer compiles the road shader and creates fallback textures.
func NewRoadRenderer(log *zap.Logger) (*RoadRenderer, error) {
	program, err := shader.NewProgram(shaders.RoadVertexShader, shaders.RoadFragmentShader)
	if err != nil {
		return nil, errors.Wrap(err, "road shader")
	}

	rr := &RoadRenderer{
		program:  program,
		log:      logger.OrNop(log),
		textures: make(map[string]uint32),
	}
	asphalt := uploadTexture(texture.Checker(64, 8, texture.AsphaltDark, texture.AsphaltLight))
	dirt := uploadTexture(texture.Checker(64, 8, texture.DirtDark, texture.DirtLight))
	rr.fallback[road.SurfaceTop] = asphalt
	rr.fallback[road.SurfaceBottom] = dirt
	rr.fallback[road.SurfaceSide] = dirt
	rr.fallbackTexs = []uint32{asphalt, dirt}
	return rr, nil
}

// SetMesh replaces the drawn road. Textures that fail to load fall back to
// a checkerboard; only a nil or empty mesh is an error.
func (rr *RoadRenderer) SetMesh(mesh *road.Mesh, materials []host.Material) error {
	if mesh == nil || len(mesh.Vertices) == 0 {
		return errors.New("empty road mesh")
	}

	vertices, indices, groups := mesh.Buffers()
	rr.clearMesh()
	rr.uploadMesh(vertices, indices)

	rr.draws = rr.draws[:0]
	for _, g := range groups {
		if g.IndexCount == 0 {
			continue
		}
		d := surfaceDraw{
			group: g,
			tex:   rr.fallback[g.Surface],
			scale: math.Vec2{X: 1, Y: 1},
			tint:  surfaceTints[g.Surface],
		}
		if int(g.Surface) < len(materials) {
			mat := materials[g.Surface]
			d.scale = mat.TextureScale
			if tex, ok := rr.loadTexture(mat.Texture); ok {
				d.tex = tex
				d.tint = math.Vec3{X: 1, Y: 1, Z: 1}
			}
		}
		rr.draws = append(rr.draws, d)
	}

	rr.bounds = mesh.Bounds
	rr.loaded = true
	return nil
}

func (rr *RoadRenderer) loadTexture(name string) (uint32, bool) {
	if name == "" {
		return 0, false
	}
	if tex, ok := rr.textures[name]; ok {
		return tex, true
	}
	img, err := texture.Load(texture.Resolve(rr.TextureDir, name))
	if err != nil {
		rr.log.Warn("texture unavailable, using fallback", zap.String("texture", name), zap.Error(err))
		return 0, false
	}
	tex := uploadTexture(img)
	rr.textures[name] = tex
	return tex, true
}

func uploadTexture(img *image.RGBA) uint32 {
	var texID uint32
	gl.GenTextures(1, &texID)
	gl.BindTexture(gl.TEXTURE_2D, texID)

	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA,
		int32(img.Bounds().Dx()), int32(img.Bounds().Dy()),
		0, gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&img.Pix[0]))

	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameterf(gl.TEXTURE_2D, gl.TEXTURE_MAX_ANISOTROPY, 8.0)

	return texID
}

func (rr *RoadRenderer) uploadMesh(vertices []road.Vertex, indices []uint32) {
	gl.GenVertexArrays(1, &rr.vao)
	gl.BindVertexArray(rr.vao)

	// VBO
	gl.GenBuffers(1, &rr.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, rr.vbo)
	vertexSize := int(unsafe.Sizeof(road.Vertex{}))
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*vertexSize, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)

	// Position (location 0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, int32(vertexSize), 0)
	gl.EnableVertexAttribArray(0)

	// Normal (location 1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, int32(vertexSize), 3*4)
	gl.EnableVertexAttribArray(1)

	// TexCoord (location 2)
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, int32(vertexSize), 6*4)
	gl.EnableVertexAttribArray(2)

	// EBO
	if len(indices) > 0 {
		gl.GenBuffers(1, &rr.ebo)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, rr.ebo)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, unsafe.Pointer(&indices[0]), gl.STATIC_DRAW)
	}

	gl.BindVertexArray(0)
}

// Render draws every surface group with its texture.
func (rr *RoadRenderer) Render(viewProj math.Mat4, lightDir, ambient math.Vec3) {
	if !rr.loaded {
		return
	}

	rr.program.Use()
	rr.program.SetMat4("uViewProj", viewProj)
	rr.program.SetVec3("uLightDir", lightDir)
	rr.program.SetVec3("uAmbient", ambient)
	rr.program.SetInt("uTexture", 0)

	gl.BindVertexArray(rr.vao)
	gl.ActiveTexture(gl.TEXTURE0)
	for _, d := range rr.draws {
		gl.BindTexture(gl.TEXTURE_2D, d.tex)
		rr.program.SetVec2("uTextureScale", d.scale)
		rr.program.SetVec3("uTint", d.tint)
		gl.DrawElementsWithOffset(gl.TRIANGLES, d.group.IndexCount, gl.UNSIGNED_INT, uintptr(d.group.StartIndex*4))
	}
	gl.BindVertexArray(0)
}

// Bounds returns the bounds of the current mesh and whether one is loaded.
func (rr *RoadRenderer) Bounds() (road.Bounds, bool) {
	return rr.bounds, rr.loaded
}

func (rr *RoadRenderer) clearMesh() {
	if rr.vao != 0 {
		gl.DeleteVertexArrays(1, &rr.vao)
		rr.vao = 0
	}
	if rr.vbo != 0 {
		gl.DeleteBuffers(1, &rr.vbo)
		rr.vbo = 0
	}
	if rr.ebo != 0 {
		gl.DeleteBuffers(1, &rr.ebo)
		rr.ebo = 0
	}
	rr.loaded = false
}

// Destroy releases all resources.
func (rr *RoadRenderer) Destroy() {
	rr.clearMesh()
	for name, tex := range rr.textures {
		gl.DeleteTextures(1, &tex)
		delete(rr.textures, name)
	}
	for _, tex := range rr.fallbackTexs {
		gl.DeleteTextures(1, &tex)
	}
	rr.fallbackTexs = nil
	rr.fallback = [road.NumSurfaces]uint32{}
	if rr.program != nil {
		rr.program.Delete()
	}
}
