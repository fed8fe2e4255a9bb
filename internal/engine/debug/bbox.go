package debug

import (
	"github.com/Faultbox/midgard-road/internal/road"
	"github.com/Faultbox/midgard-road/pkg/math"
)

// BBoxWireframeVertexCount is the number of vertices for a bbox wireframe (12 edges × 2).
const BBoxWireframeVertexCount = 24

// BBoxWireframe returns the 12 edges of an axis-aligned box as endpoint pairs.
func BBoxWireframe(lo, hi math.Vec3) [BBoxWireframeVertexCount]math.Vec3 {
	c := func(x, y, z bool) math.Vec3 {
		p := lo
		if x {
			p.X = hi.X
		}
		if y {
			p.Y = hi.Y
		}
		if z {
			p.Z = hi.Z
		}
		return p
	}
	return [BBoxWireframeVertexCount]math.Vec3{
		// Bottom face
		c(false, false, false), c(true, false, false),
		c(true, false, false), c(true, false, true),
		c(true, false, true), c(false, false, true),
		c(false, false, true), c(false, false, false),
		// Top face
		c(false, true, false), c(true, true, false),
		c(true, true, false), c(true, true, true),
		c(true, true, true), c(false, true, true),
		c(false, true, true), c(false, true, false),
		// Vertical edges
		c(false, false, false), c(false, true, false),
		c(true, false, false), c(true, true, false),
		c(true, false, true), c(true, true, true),
		c(false, false, true), c(false, true, true),
	}
}

// Bounds draws the wireframe of a mesh bounding box, grown by padding on
// every side.
func Bounds(o Observer, b road.Bounds, padding float32) {
	pad := math.Vec3{X: padding, Y: padding, Z: padding}
	edges := BBoxWireframe(b.Min.Sub(pad), b.Max.Add(pad))
	for i := 0; i < len(edges); i += 2 {
		o.Line(edges[i], edges[i+1], Yellow, DefaultLineDuration)
	}
}
