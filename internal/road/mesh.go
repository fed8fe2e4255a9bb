package road

import "github.com/Faultbox/midgard-road/pkg/math"

// LeftEdge returns the top-left corner of every sample projected onto the
// ground plane, in path order.
func (m *Mesh) LeftEdge() []math.Vec2 {
	return m.edge(SlotTopLeft)
}

// RightEdge returns the top-right corner of every sample projected onto the
// ground plane, in path order.
func (m *Mesh) RightEdge() []math.Vec2 {
	return m.edge(SlotTopRight)
}

func (m *Mesh) edge(slot Slot) []math.Vec2 {
	points := make([]math.Vec2, m.SampleCount)
	for i := range points {
		points[i] = m.At(i, slot).XZ()
	}
	return points
}

// Indices returns the index group of a surface.
func (m *Mesh) Indices(s Surface) []uint32 {
	switch s {
	case SurfaceTop:
		return m.Top
	case SurfaceBottom:
		return m.Bottom
	case SurfaceSide:
		return m.Side
	default:
		return nil
	}
}

// TriangleCount returns the number of triangles in a surface group.
func (m *Mesh) TriangleCount(s Surface) int {
	return len(m.Indices(s)) / 3
}

// Buffers interleaves the vertex attributes and concatenates the three
// index groups into one buffer, in surface order.
func (m *Mesh) Buffers() ([]Vertex, []uint32, []SurfaceGroup) {
	vertices := make([]Vertex, len(m.Vertices))
	for i := range vertices {
		vertices[i] = Vertex{
			Position: m.Vertices[i].Array(),
			Normal:   m.Normals[i].Array(),
			TexCoord: [2]float32{m.UVs[i].X, m.UVs[i].Y},
		}
	}

	indices := make([]uint32, 0, len(m.Top)+len(m.Bottom)+len(m.Side))
	var groups []SurfaceGroup
	for s := SurfaceTop; s < NumSurfaces; s++ {
		idx := m.Indices(s)
		if len(idx) == 0 {
			continue
		}
		groups = append(groups, SurfaceGroup{
			Surface:    s,
			StartIndex: int32(len(indices)),
			IndexCount: int32(len(idx)),
		})
		indices = append(indices, idx...)
	}
	return vertices, indices, groups
}

// Center returns the middle of the bounding box.
func (b Bounds) Center() math.Vec3 {
	return b.Min.Lerp(b.Max, 0.5)
}

// Size returns the extent of the bounding box.
func (b Bounds) Size() math.Vec3 {
	return b.Max.Sub(b.Min)
}

// Triangles returns the number of triangles over all surfaces.
func (m *Mesh) Triangles() int {
	n := 0
	for s := Surface(0); s < NumSurfaces; s++ {
		n += m.TriangleCount(s)
	}
	return n
}
