package scene

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/pkg/errors"

	"github.com/Faultbox/midgard-road/internal/engine/debug"
	"github.com/Faultbox/midgard-road/internal/engine/scene/shaders"
	"github.com/Faultbox/midgard-road/internal/engine/shader"
	"github.com/Faultbox/midgard-road/pkg/math"
)

// LineRenderer draws colored line segments: debug output and the ground grid.
type LineRenderer struct {
	program *shader.Program

	vao      uint32
	vbo      uint32
	count    int32
	capacity int
}

// NewLineRenderer creates a new line renderer.
func NewLineRenderer() (*LineRenderer, error) {
	program, err := shader.NewProgram(shaders.LineVertexShader, shaders.LineFragmentShader)
	if err != nil {
		return nil, errors.Wrap(err, "line shader")
	}
	lr := &LineRenderer{program: program}

	gl.GenVertexArrays(1, &lr.vao)
	gl.BindVertexArray(lr.vao)

	gl.GenBuffers(1, &lr.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, lr.vbo)

	stride := int32(unsafe.Sizeof(debug.LineVertex{}))
	// Position attribute (location 0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	// Color attribute (location 1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(1)

	gl.BindVertexArray(0)
	return lr, nil
}

// SetLines replaces the drawn segments. vertices holds pairs of endpoints.
func (lr *LineRenderer) SetLines(vertices []debug.LineVertex) {
	lr.count = int32(len(vertices))
	if len(vertices) == 0 {
		return
	}

	size := len(vertices) * int(unsafe.Sizeof(debug.LineVertex{}))
	gl.BindBuffer(gl.ARRAY_BUFFER, lr.vbo)
	if size > lr.capacity {
		gl.BufferData(gl.ARRAY_BUFFER, size, unsafe.Pointer(&vertices[0]), gl.DYNAMIC_DRAW)
		lr.capacity = size
	} else {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, size, unsafe.Pointer(&vertices[0]))
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

// Render draws all segments.
func (lr *LineRenderer) Render(viewProj math.Mat4) {
	if lr.count == 0 {
		return
	}
	lr.program.Use()
	lr.program.SetMat4("uViewProj", viewProj)

	gl.BindVertexArray(lr.vao)
	gl.DrawArrays(gl.LINES, 0, lr.count)
	gl.BindVertexArray(0)
}

// Destroy releases all resources.
func (lr *LineRenderer) Destroy() {
	if lr.vao != 0 {
		gl.DeleteVertexArrays(1, &lr.vao)
		lr.vao = 0
	}
	if lr.vbo != 0 {
		gl.DeleteBuffers(1, &lr.vbo)
		lr.vbo = 0
	}
	if lr.program != nil {
		lr.program.Delete()
	}
}
