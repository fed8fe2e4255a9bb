package debug

import (
	"image/color"

	"github.com/Faultbox/midgard-road/pkg/math"
)

// LineVertex is a colored vertex for line rendering.
type LineVertex struct {
	X, Y, Z float32 // Position
	R, G, B float32 // Color
}

func lineVertex(p math.Vec3, c color.RGBA) LineVertex {
	return LineVertex{
		p.X, p.Y, p.Z,
		float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255,
	}
}

// LineVertices returns the recorded lines as vertex pairs. Markers become
// a small cross of three axis-aligned segments.
func (r *Recorder) LineVertices() []LineVertex {
	vertices := make([]LineVertex, 0, 2*len(r.Lines)+6*len(r.Markers))
	for _, l := range r.Lines {
		vertices = append(vertices, lineVertex(l.From, l.Color), lineVertex(l.To, l.Color))
	}
	for _, m := range r.Markers {
		half := m.Scale / 2
		for _, axis := range []math.Vec3{{X: half}, {Y: half}, {Z: half}} {
			vertices = append(vertices,
				lineVertex(m.At.Sub(axis), Red),
				lineVertex(m.At.Add(axis), Red),
			)
		}
	}
	return vertices
}

// GroundGrid generates grid lines on the plane y=height covering
// [minX,maxX]×[minZ,maxZ] with the given cell size.
func GroundGrid(minX, minZ, maxX, maxZ, cell, height float32) []LineVertex {
	if cell <= 0 || maxX < minX || maxZ < minZ {
		return nil
	}

	var vertices []LineVertex
	// Lines along Z
	for x := minX; x <= maxX; x += cell {
		vertices = append(vertices,
			lineVertex(math.Vec3{X: x, Y: height, Z: minZ}, Gray),
			lineVertex(math.Vec3{X: x, Y: height, Z: maxZ}, Gray),
		)
	}
	// Lines along X
	for z := minZ; z <= maxZ; z += cell {
		vertices = append(vertices,
			lineVertex(math.Vec3{X: minX, Y: height, Z: z}, Gray),
			lineVertex(math.Vec3{X: maxX, Y: height, Z: z}, Gray),
		)
	}
	return vertices
}
